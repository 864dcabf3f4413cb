package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/careerflow-ai/careerflow/internal/telemetry"
)

var (
	// ErrRoleRequired rejects a session start without a target role.
	ErrRoleRequired = errors.New("role is required")
	// ErrUnknownWorkflow rejects a start for a workflow that is not wired.
	ErrUnknownWorkflow = errors.New("unknown interview workflow")
)

// Orchestrator drives sessions through the ACTIVE -> COMPLETE state machine.
// Submissions for one session id are serialized by a lock scoped to that id;
// different sessions never contend.
type Orchestrator struct {
	store     Store
	workflows map[string]*Workflow
	logger    *log.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrchestrator(store Store, workflows map[string]*Workflow, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	return &Orchestrator{
		store:     store,
		workflows: workflows,
		logger:    logger,
		locks:     make(map[string]*sessionLock),
	}
}

// StartResult is the reply to a session start.
type StartResult struct {
	SessionID string
	Question  string
}

// SubmitResult is the reply to an answer submission. Question is set while
// the session continues; Verdict is set exactly once, when it completes.
// Turn counts the answers recorded so far, retransmissions included once.
type SubmitResult struct {
	SessionID string
	Complete  bool
	Question  string
	Turn      int
	Verdict   *Verdict
}

// Start creates a session and produces its opening question. Retrying Start
// is not idempotent: every call creates an independent session.
func (o *Orchestrator) Start(ctx context.Context, workflow, role, tier string) (*StartResult, error) {
	wf, ok := o.workflows[workflow]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflow)
	}
	if strings.TrimSpace(role) == "" {
		return nil, ErrRoleRequired
	}

	sess, err := o.store.Create(ctx, role, ParseTier(tier), wf.Name)
	if err != nil {
		return nil, err
	}
	question, err := wf.Strategy.Opening(ctx, sess)
	if err != nil {
		// Don't leak a session the caller never learned the id of.
		if _, rmErr := o.store.CompleteAndRemove(ctx, sess.ID); rmErr != nil {
			o.logger.Printf("discard session %s after failed opening: %v", sess.ID, rmErr)
		}
		return nil, err
	}
	if err := o.store.SetLastQuestion(ctx, sess.ID, question); err != nil {
		return nil, err
	}
	return &StartResult{SessionID: sess.ID, Question: question}, nil
}

// Submit records an answer and returns either the next question or, once the
// workflow's turn budget is spent, the final verdict. Submitting the answer
// most recently recorded for the session is treated as a client retry: the
// previous question is re-returned without touching counters or the model.
func (o *Orchestrator) Submit(ctx context.Context, sessionID, answer string) (*SubmitResult, error) {
	release := o.lockSession(sessionID)
	defer release()

	sess, err := o.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	wf, ok := o.workflows[sess.Workflow]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkflow, sess.Workflow)
	}

	// Retransmission guard: identical to the last recorded answer.
	if sess.TurnsTaken > 0 && answer == sess.LastAnswer {
		return &SubmitResult{SessionID: sessionID, Question: sess.LastQuestion, Turn: sess.TurnsTaken}, nil
	}

	// Final turn: record it, produce the one verdict, drop the session.
	if sess.TurnsTaken+1 >= wf.TurnLimit {
		if _, err := o.store.AppendTurn(ctx, sessionID, sess.LastQuestion, answer); err != nil {
			return nil, err
		}
		telemetry.InterviewTurns.Inc()
		return o.complete(ctx, sessionID, wf)
	}

	// Pick the follow-up before committing the turn so a failed model call
	// leaves the session unchanged and the submission safely retryable.
	question, complete, err := wf.Strategy.Next(ctx, sess, answer)
	if err != nil {
		return nil, err
	}

	if _, err := o.store.AppendTurn(ctx, sessionID, sess.LastQuestion, answer); err != nil {
		return nil, err
	}
	telemetry.InterviewTurns.Inc()

	if complete {
		return o.complete(ctx, sessionID, wf)
	}
	if err := o.store.SetLastQuestion(ctx, sessionID, question); err != nil {
		return nil, err
	}
	return &SubmitResult{SessionID: sessionID, Question: question, Turn: sess.TurnsTaken + 1}, nil
}

func (o *Orchestrator) complete(ctx context.Context, sessionID string, wf *Workflow) (*SubmitResult, error) {
	removed, err := o.store.CompleteAndRemove(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	v := wf.VerdictFor(removed.Tier)
	o.logger.Printf("session %s complete after %d turns (%s, %s)", sessionID, removed.TurnsTaken, removed.Workflow, removed.Tier)
	return &SubmitResult{SessionID: sessionID, Complete: true, Turn: removed.TurnsTaken, Verdict: &v}, nil
}

// lockSession acquires the mutex scoped to one session id, creating it on
// first use and dropping it once no submission holds or awaits it.
func (o *Orchestrator) lockSession(id string) (release func()) {
	o.mu.Lock()
	l, ok := o.locks[id]
	if !ok {
		l = &sessionLock{}
		o.locks[id] = l
	}
	l.refs++
	o.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		o.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(o.locks, id)
		}
		o.mu.Unlock()
	}
}
