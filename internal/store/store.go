package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/careerflow-ai/careerflow/config"
)

// Store wraps the Postgres connection holding users and the activity
// history. Interview sessions never touch it; they live in the session
// store and only their final verdicts are audited here.
type Store struct {
	DB *sql.DB
}

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// New opens and pings the database described by cfg.
func New(ctx context.Context, cfg config.PostgresConfig) (*Store, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return NewWithDSN(ctx, dsn)
}

// NewWithDSN constructs the Store using an explicit Postgres DSN.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// User operations

func (s *Store) CreateUser(ctx context.Context, email, hash, fullName string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (email, password_hash, full_name) VALUES ($1,$2,$3)`, email, hash, fullName)
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (id string, hash string, err error) {
	err = s.DB.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE email=$1`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
	}
	return
}

// History operations

// HistoryRecord is one audited agent interaction: which agent ran for which
// user, a short human-readable summary, and the full JSON payload.
type HistoryRecord struct {
	ID         string
	UserID     string
	SessionID  string
	AgentName  string
	ActionType string
	Summary    string
	FullOutput []byte
	CreatedAt  time.Time
}

func (s *Store) SaveHistory(ctx context.Context, rec HistoryRecord) (string, error) {
	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO history (user_id, session_id, agent_name, action_type, summary_text, full_output)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		rec.UserID, rec.SessionID, rec.AgentName, rec.ActionType, rec.Summary, rec.FullOutput).Scan(&id)
	return id, err
}

// ListHistory returns one page of a user's history, newest first, along with
// the total number of records for that user.
func (s *Store) ListHistory(ctx context.Context, userID string, page, limit int) (int, []HistoryRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return 0, nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, session_id, agent_name, action_type, summary_text, full_output, created_at
		 FROM history WHERE user_id=$1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`,
		userID, (page-1)*limit, limit)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.SessionID, &r.AgentName, &r.ActionType, &r.Summary, &r.FullOutput, &r.CreatedAt); err != nil {
			return 0, nil, err
		}
		out = append(out, r)
	}
	return total, out, rows.Err()
}

// GetHistory fetches a batch of records by id, used to hydrate search hits.
// Records are returned newest first regardless of the order of ids.
func (s *Store) GetHistory(ctx context.Context, ids []string) ([]HistoryRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, session_id, agent_name, action_type, summary_text, full_output, created_at
		 FROM history WHERE id = ANY($1) ORDER BY created_at DESC`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.SessionID, &r.AgentName, &r.ActionType, &r.Summary, &r.FullOutput, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AllHistory streams every record, oldest first. Used once at startup to
// rebuild the in-process search index.
func (s *Store) AllHistory(ctx context.Context) ([]HistoryRecord, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, session_id, agent_name, action_type, summary_text, full_output, created_at
		 FROM history ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.SessionID, &r.AgentName, &r.ActionType, &r.Summary, &r.FullOutput, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PruneHistory deletes records older than cutoff and reports how many went.
func (s *Store) PruneHistory(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
