package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"

	"github.com/careerflow-ai/careerflow/config"
	"github.com/careerflow-ai/careerflow/internal/agents"
	"github.com/careerflow-ai/careerflow/internal/audit"
	"github.com/careerflow-ai/careerflow/internal/interview"
	"github.com/careerflow-ai/careerflow/internal/store"
	"github.com/careerflow-ai/careerflow/provider"
)

// newEcho builds the echo instance with the unified JSON error handler.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: msg})
		}
	}
	return e
}

// Run wires every dependency and serves the API until the listener fails.
func Run(cfg *config.Config, addr string) error {
	e := newEcho()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.General.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	dsn, err := cfg.Databases.Postgres.DSN()
	if err != nil {
		return err
	}
	if err := store.Migrate("file://migrations", dsn, "up", 0); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	prov, err := provider.New(cfg.Providers)
	if err != nil {
		return err
	}

	// Session store for interviews: volatile by default, redis when the
	// deployment needs sessions to survive restarts.
	var sessions interview.Store
	switch cfg.Interview.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Databases.Redis.Addr(),
			Password: cfg.Databases.Redis.Password,
			DB:       cfg.Databases.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed (%s): %w", cfg.Databases.Redis.Addr(), err)
		}
		sessions = interview.NewRedisStore(rdb, cfg.Interview.SessionTTL)
	default:
		sessions = interview.NewMemoryStore(cfg.Interview.SessionTTL)
	}

	orchLogger := log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	workflows := interview.DefaultWorkflows(prov, cfg.Interview.HumanTurnLimit, cfg.Interview.HRTurnLimit)
	orch := interview.NewOrchestrator(sessions, workflows, orchLogger)

	// Audit: Postgres + search index, plus rabbit fan-out when configured.
	index := store.NewHistoryIndex()
	var amqpConn *amqp.Connection
	if cfg.History.AMQPURL != "" {
		amqpConn, err = amqp.Dial(cfg.History.AMQPURL)
		if err != nil {
			return fmt.Errorf("amqp connection failed: %w", err)
		}
	}
	recorder := audit.New(st, index, amqpConn, cfg.History.Exchange, nil)
	if err := recorder.Rebuild(ctx); err != nil {
		return err
	}

	secret := cfg.General.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (general.jwt_secret)")
	}

	api := e.Group("/api")
	auth := &AuthHandler{Store: st, Secret: []byte(secret)}
	auth.Register(api.Group("/auth"))

	ih := &InterviewHandler{Orch: orch, Audit: recorder}
	ih.Register(e)

	ah := &AgentsHandler{Router: agents.NewRouter(prov, nil), Audit: recorder}
	ah.Register(e)

	hh := &HistoryHandler{Store: st, Index: index}
	hh.Register(api.Group("/history"), []byte(secret))

	cleaner := &Cleaner{Store: st, Cron: cfg.History.RetentionCron, MaxAge: cfg.History.RetentionAge}
	cleaner.Start()

	if addr == "" {
		addr = cfg.General.Listen
		if addr != "" && addr[0] != ':' {
			addr = ":" + addr
		}
		if addr == "" {
			addr = ":8001"
		}
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
