package interview

import (
	"context"
	"strings"

	"github.com/careerflow-ai/careerflow/internal/normalize"
	"github.com/careerflow-ai/careerflow/provider"
)

// Strategy decides the opening question and, after each answer, whether to
// keep probing and with what. Two interchangeable implementations exist: a
// canned heuristic and a model-driven one.
type Strategy interface {
	Opening(ctx context.Context, sess *Session) (string, error)
	// Next returns the follow-up question and whether the strategy wants to
	// end the interview early. Selection is total: a question is always
	// produced unless the model call itself fails.
	Next(ctx context.Context, sess *Session, answer string) (question string, complete bool, err error)
}

// --- heuristic strategy ---

// A branch fires when its trigger matches the lower-cased answer; the first
// match wins. Every table ends in a mandatory default question so selection
// is total.
type trigger func(answer string, words int) bool

type branch struct {
	when trigger
	next string
}

type decisionTable struct {
	branches []branch
	fallback string
}

func (t decisionTable) pick(answer string) string {
	lower := strings.ToLower(answer)
	words := len(strings.Fields(lower))
	for _, br := range t.branches {
		if br.when(lower, words) {
			return br.next
		}
	}
	return t.fallback
}

func anyOf(phrases ...string) trigger {
	return func(answer string, _ int) bool {
		for _, p := range phrases {
			if strings.Contains(answer, p) {
				return true
			}
		}
		return false
	}
}

func vague(answer string, words int) bool {
	return words < 20 || strings.Contains(answer, "don't know") || strings.Contains(answer, "not sure")
}

var heuristicOpeners = map[Tier]string{
	TierBeginner:     "Thank you for coming in today. To start, could you tell me a little about yourself and what drew you to this field?",
	TierIntermediate: "Thanks for joining us today. Can you walk me through your background and highlight a couple of accomplishments you're particularly proud of in your career so far?",
	TierExpert:       "Thank you for your time today. Given your extensive experience, I'd love to hear about a significant challenge you've faced in your career and how you approached solving it.",
}

var heuristicTables = map[Tier]decisionTable{
	TierBeginner: {
		branches: []branch{
			{when: vague, next: "Could you provide a more specific example? Think about a time when you faced a challenge and how you overcame it."},
		},
		fallback: "That's helpful. Can you tell me about a time when you had to work with a difficult team member? How did you handle the situation?",
	},
	TierIntermediate: {
		branches: []branch{
			{when: anyOf("led", "managed", "coordinated"), next: "That's interesting. Can you quantify the impact of that leadership role? What specific results did your team achieve?"},
			{when: anyOf("problem", "challenge"), next: "You mentioned a challenge. What would you do differently if you faced a similar situation in the future?"},
		},
		fallback: "Let's talk about your technical skills. Can you describe a complex project you've worked on and your specific contributions to its success?",
	},
	TierExpert: {
		branches: []branch{
			{when: anyOf("strategy", "vision", "long-term"), next: "That's a compelling vision. How would you measure the success of that strategy, and what key performance indicators would you track?"},
			{when: anyOf("team", "people"), next: "You've mentioned leading teams. How do you approach developing talent and building high-performing teams?"},
		},
		fallback: "Given your experience, how do you approach making decisions when you have incomplete information? Can you walk me through your decision-making framework?",
	},
}

// HeuristicStrategy picks questions from fixed per-tier decision tables
// without any model call. Completion is decided by the turn budget alone.
type HeuristicStrategy struct{}

func (HeuristicStrategy) Opening(ctx context.Context, sess *Session) (string, error) {
	return heuristicOpeners[normalizeTier(sess.Tier)], nil
}

func (HeuristicStrategy) Next(ctx context.Context, sess *Session, answer string) (string, bool, error) {
	return heuristicTables[normalizeTier(sess.Tier)].pick(answer), false, nil
}

func normalizeTier(t Tier) Tier {
	switch t {
	case TierBeginner, TierIntermediate, TierExpert:
		return t
	default:
		return TierExpert
	}
}

// --- model-driven strategy ---

const (
	// Substituted when the model's opening reply cannot be normalized.
	fallbackOpener = "Can you tell me about your experience in HR and what interests you most about this field?"
	// Substituted when a follow-up reply cannot be normalized.
	fallbackFollowUp = "What strategies would you use to improve employee engagement in our organization?"
)

// ModelStrategy asks the generative model for each question, normalizing its
// reply into {question, interview_status}. Malformed replies degrade to a
// fixed follow-up; transport failures propagate.
type ModelStrategy struct {
	Provider provider.Provider
}

func (m ModelStrategy) Opening(ctx context.Context, sess *Session) (string, error) {
	raw, err := m.Provider.Generate(ctx, BuildInterviewerPrompt(PromptInput{Role: sess.Role, Tier: sess.Tier}))
	if err != nil {
		return "", err
	}
	rec := normalize.ObjectOr("interview.opening", raw, map[string]interface{}{
		"question":         fallbackOpener,
		"interview_status": "continue",
	}, "question", "interview_status")
	return str(rec["question"], fallbackOpener), nil
}

func (m ModelStrategy) Next(ctx context.Context, sess *Session, answer string) (string, bool, error) {
	raw, err := m.Provider.Generate(ctx, BuildInterviewerPrompt(PromptInput{
		Role:         sess.Role,
		Tier:         sess.Tier,
		PrevQuestion: sess.LastQuestion,
		PrevAnswer:   answer,
	}))
	if err != nil {
		return "", false, err
	}
	rec := normalize.ObjectOr("interview.next", raw, map[string]interface{}{
		"question":         fallbackFollowUp,
		"interview_status": "continue",
	}, "question", "interview_status")
	question := str(rec["question"], fallbackFollowUp)
	complete := str(rec["interview_status"], "continue") == "complete"
	return question, complete, nil
}

func str(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}
