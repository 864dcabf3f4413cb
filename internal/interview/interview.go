// Package interview implements the multi-turn interview simulation engine:
// a session store keyed by opaque ids, adaptive next-question selection and
// the orchestrating state machine that drives a session from its opening
// question to the final verdict.
package interview

import (
	"errors"
	"strings"
	"time"
)

// Tier is the candidate's stated experience level. It fixes question
// difficulty and the feedback templates used in the final verdict.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierExpert       Tier = "Expert"
)

// ParseTier normalizes free-form input to one of the three tiers. Anything
// unrecognized maps to Expert, matching the default branch used throughout
// question selection and verdict templating.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner", "junior", "entry":
		return TierBeginner
	case "intermediate", "mid", "mid-level":
		return TierIntermediate
	default:
		return TierExpert
	}
}

// Status of a session. COMPLETE is terminal and never stored: a session is
// removed from the store at the moment it completes.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusComplete Status = "COMPLETE"
)

// Turn is one question/answer exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is the per-conversation state. Role, Tier and Workflow are fixed
// at creation; Turns is append-only; TurnsTaken always equals len(Turns).
type Session struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Tier         Tier      `json:"tier"`
	Workflow     string    `json:"workflow"`
	Turns        []Turn    `json:"turns"`
	TurnsTaken   int       `json:"turns_taken"`
	LastQuestion string    `json:"last_question"`
	LastAnswer   string    `json:"last_answer"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a copy safe to hand outside the store.
func (s *Session) Clone() *Session {
	out := *s
	out.Turns = make([]Turn, len(s.Turns))
	copy(out.Turns, s.Turns)
	return &out
}

// ErrSessionNotFound marks an unknown or already-completed session id. The
// HTTP layer surfaces it as a client error; it is never retried internally.
var ErrSessionNotFound = errors.New("interview session not found")
