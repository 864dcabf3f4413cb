package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"

	"github.com/careerflow-ai/careerflow/internal/store"
	"github.com/careerflow-ai/careerflow/internal/telemetry"
)

// Recorder fans each agent result out to the durable history table, the
// in-process search index and, when configured, a rabbit exchange so other
// services can follow a user's activity. Recording is strictly best-effort:
// an audit failure is logged and counted but never surfaces to the request
// that produced the result.
type Recorder struct {
	store    *store.Store
	index    *store.HistoryIndex
	amqpConn *amqp.Connection
	exchange string
	logger   *log.Logger
}

// New builds a Recorder. amqpConn may be nil, in which case fan-out is
// skipped and only Postgres and the search index are written.
func New(st *store.Store, index *store.HistoryIndex, amqpConn *amqp.Connection, exchange string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(log.Writer(), "[AUDIT] ", log.LstdFlags)
	}
	return &Recorder{store: st, index: index, amqpConn: amqpConn, exchange: exchange, logger: logger}
}

// Record persists one history record and propagates it to the index and the
// exchange. Never returns an error.
func (r *Recorder) Record(ctx context.Context, rec store.HistoryRecord) {
	id, err := r.store.SaveHistory(ctx, rec)
	if err != nil {
		telemetry.HistoryWrites.WithLabelValues("error").Inc()
		r.logger.Printf("save history for user %s: %v", rec.UserID, err)
		return
	}
	telemetry.HistoryWrites.WithLabelValues("ok").Inc()
	rec.ID = id

	if err := r.index.Add(rec); err != nil {
		r.logger.Printf("index history %s: %v", rec.ID, err)
	}
	if err := r.publish(rec); err != nil {
		r.logger.Printf("publish history %s: %v", rec.ID, err)
	}
}

// Rebuild reloads the search index from Postgres. Called once at startup.
func (r *Recorder) Rebuild(ctx context.Context) error {
	records, err := r.store.AllHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for _, rec := range records {
		if err := r.index.Add(rec); err != nil {
			return fmt.Errorf("index history %s: %w", rec.ID, err)
		}
	}
	r.logger.Printf("search index rebuilt with %d records", len(records))
	return nil
}

func (r *Recorder) publish(rec store.HistoryRecord) error {
	if r.amqpConn == nil {
		return nil
	}
	ch, err := r.amqpConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(r.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]interface{}{
		"id":          rec.ID,
		"user_id":     rec.UserID,
		"session_id":  rec.SessionID,
		"agent_name":  rec.AgentName,
		"action_type": rec.ActionType,
		"summary":     rec.Summary,
	})
	if err != nil {
		return err
	}
	return ch.Publish(r.exchange, fmt.Sprintf("history.%s", rec.UserID), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
