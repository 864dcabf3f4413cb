package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/careerflow-ai/careerflow/internal/telemetry"
)

// RedisStore keeps sessions in Redis so they survive a process restart.
// Expiry rides on the key TTL. Read-modify-write operations rely on the
// orchestrator's per-session lock; the deployment model is a single writer
// process per session id.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

const redisKeyPrefix = "interview:session:"

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(id string) string { return redisKeyPrefix + id }

func (s *RedisStore) Create(ctx context.Context, role string, tier Tier, workflow string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		Tier:      tier,
		Workflow:  workflow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	telemetry.ActiveSessions.Inc()
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) AppendTurn(ctx context.Context, id, question, answer string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Turns = append(sess.Turns, Turn{Question: question, Answer: answer})
	sess.TurnsTaken++
	sess.LastAnswer = answer
	sess.UpdatedAt = time.Now()
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) SetLastQuestion(ctx context.Context, id, question string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.LastQuestion = question
	sess.UpdatedAt = time.Now()
	return s.write(ctx, sess)
}

func (s *RedisStore) CompleteAndRemove(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.GetDel(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	telemetry.ActiveSessions.Dec()
	return &sess, nil
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}
