package interview

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	sess, err := s.Create(ctx, "Software Engineer", TierBeginner, WorkflowHumanLike)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected a generated session id")
	}
	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != "Software Engineer" || got.Tier != TierBeginner {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestMemoryStore_FreshIDs(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess, err := s.Create(ctx, "HR Analyst", TierExpert, WorkflowHRSpecialist)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[sess.ID] {
			t.Fatalf("duplicate session id issued: %s", sess.ID)
		}
		seen[sess.ID] = true
	}
}

func TestMemoryStore_AppendTurnKeepsCounterInSync(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	sess, _ := s.Create(ctx, "HR Analyst", TierIntermediate, WorkflowHumanLike)
	for i := 0; i < 4; i++ {
		got, err := s.AppendTurn(ctx, sess.ID, "Q?", "A.")
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if got.TurnsTaken != len(got.Turns) {
			t.Fatalf("turns_taken=%d but history has %d entries", got.TurnsTaken, len(got.Turns))
		}
		if got.TurnsTaken != i+1 {
			t.Fatalf("expected %d turns, got %d", i+1, got.TurnsTaken)
		}
	}
}

func TestMemoryStore_UnknownID(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := s.AppendTurn(ctx, "nope", "q", "a"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := s.SetLastQuestion(ctx, "nope", "q"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := s.CompleteAndRemove(ctx, "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_CompleteAndRemoveIsFinal(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	sess, _ := s.Create(ctx, "HR Manager", TierExpert, WorkflowHRSpecialist)
	if _, err := s.CompleteAndRemove(ctx, sess.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := s.Get(ctx, sess.ID); err != ErrSessionNotFound {
		t.Fatalf("expected session gone, got %v", err)
	}
	if _, err := s.CompleteAndRemove(ctx, sess.ID); err != ErrSessionNotFound {
		t.Fatalf("expected second removal to fail, got %v", err)
	}
}

func TestMemoryStore_EvictsIdleSessions(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	old, _ := s.Create(ctx, "HR Analyst", TierBeginner, WorkflowHumanLike)
	fresh, _ := s.Create(ctx, "HR Analyst", TierBeginner, WorkflowHumanLike)
	if _, err := s.AppendTurn(ctx, fresh.ID, "q", "a"); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Age the first session past the TTL by sweeping from the future.
	s.mu.Lock()
	s.sessions[old.ID].UpdatedAt = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	if n := s.evictExpired(time.Now()); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, err := s.Get(ctx, old.ID); err != ErrSessionNotFound {
		t.Fatalf("expected idle session evicted, got %v", err)
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh session should survive the sweep: %v", err)
	}
}
