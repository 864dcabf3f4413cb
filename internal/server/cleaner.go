package server

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/careerflow-ai/careerflow/internal/store"
)

// Cleaner prunes history records past the retention age on the configured
// cron cadence. It runs in-process; with multiple replicas the prune is
// idempotent, the worst case is duplicate DELETEs.
type Cleaner struct {
	Store  *store.Store
	Cron   string
	MaxAge time.Duration
	Logger *log.Logger

	Stop chan struct{}
}

func (cl *Cleaner) Start() {
	if cl.Logger == nil {
		cl.Logger = log.New(log.Writer(), "[CLEANER] ", log.LstdFlags)
	}
	if cl.Stop == nil {
		cl.Stop = make(chan struct{})
	}
	ticker := time.NewTicker(time.Hour)
	last := time.Now()
	go func() {
		for {
			select {
			case <-cl.Stop:
				ticker.Stop()
				return
			case <-ticker.C:
				if !isDue(cl.Cron, last) {
					continue
				}
				last = time.Now()
				cl.prune()
			}
		}
	}()
}

func (cl *Cleaner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := cl.Store.PruneHistory(ctx, time.Now().Add(-cl.MaxAge))
	if err != nil {
		cl.Logger.Printf("prune history: %v", err)
		return
	}
	if n > 0 {
		cl.Logger.Printf("pruned %d history records older than %s", n, cl.MaxAge)
	}
}

// isDue determines if a cron spec is due to fire, given the last fire time.
// Supports "@daily", "@hourly", and standard 5-field cron expressions.
func isDue(cronSpec string, last time.Time) bool {
	now := time.Now()
	switch cronSpec {
	case "@daily":
		return now.Sub(last) >= 24*time.Hour
	case "@hourly":
		return now.Sub(last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(cronSpec)
		if err != nil {
			// Invalid specs degrade to @daily rather than never firing.
			return now.Sub(last) >= 24*time.Hour
		}
		return !expr.Next(last).After(now)
	}
}
