package interview

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerflow-ai/careerflow/internal/telemetry"
)

// Store is the session lifecycle contract. Every operation is individually
// atomic; serialization of a whole submit cycle is the orchestrator's job.
type Store interface {
	// Create inserts a fresh ACTIVE session and returns it with a newly
	// generated 128-bit random identifier.
	Create(ctx context.Context, role string, tier Tier, workflow string) (*Session, error)
	// Get returns a copy of the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// AppendTurn records an answered question: appends to the turn history,
	// increments the turn counter and remembers the answer for the
	// duplicate-submission guard.
	AppendTurn(ctx context.Context, id, question, answer string) (*Session, error)
	// SetLastQuestion overwrites the question most recently issued to the
	// candidate.
	SetLastQuestion(ctx context.Context, id, question string) error
	// CompleteAndRemove atomically reads and deletes the session. After it
	// returns, the id can never be read again.
	CompleteAndRemove(ctx context.Context, id string) (*Session, error)
}

// MemoryStore keeps sessions in a process-local map. Abandoned sessions are
// evicted once idle longer than the TTL; the janitor stops on Close.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

const sweepInterval = time.Minute

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

func (s *MemoryStore) Create(ctx context.Context, role string, tier Tier, workflow string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		Tier:      tier,
		Workflow:  workflow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	telemetry.ActiveSessions.Inc()
	return sess.Clone(), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) AppendTurn(ctx context.Context, id, question, answer string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.Turns = append(sess.Turns, Turn{Question: question, Answer: answer})
	sess.TurnsTaken++
	sess.LastAnswer = answer
	sess.UpdatedAt = time.Now()
	return sess.Clone(), nil
}

func (s *MemoryStore) SetLastQuestion(ctx context.Context, id, question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastQuestion = question
	sess.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) CompleteAndRemove(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, id)
	telemetry.ActiveSessions.Dec()
	return sess, nil
}

// Close stops the eviction janitor.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

// evictExpired drops sessions idle past the TTL. The source system never
// cleaned up abandoned sessions; this bounds their lifetime.
func (s *MemoryStore) evictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			telemetry.ActiveSessions.Dec()
			n++
		}
	}
	return n
}
