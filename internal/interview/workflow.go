package interview

import (
	"fmt"

	"github.com/careerflow-ai/careerflow/provider"
)

// Verdict is the final assessment produced exactly once per session, at the
// moment it completes.
type Verdict struct {
	Score      int      `json:"final_score"`
	Feedback   string   `json:"overall_feedback"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// Workflow fixes the shape of one interview variant: how many turns it runs,
// how questions are chosen and which verdict templates apply. The turn limit
// is a per-workflow constant, not a global.
type Workflow struct {
	Name      string
	TurnLimit int
	Strategy  Strategy
	verdicts  map[Tier]Verdict
}

// VerdictFor returns the canned verdict for a tier.
func (w *Workflow) VerdictFor(t Tier) Verdict {
	return w.verdicts[normalizeTier(t)]
}

const (
	// WorkflowHumanLike runs seven heuristic turns with canned questions.
	WorkflowHumanLike = "human_like"
	// WorkflowHRSpecialist runs five model-driven turns against the
	// generative interviewer.
	WorkflowHRSpecialist = "hr_specialist"
)

var humanVerdicts = map[Tier]Verdict{
	TierBeginner: {
		Score:      88,
		Feedback:   "You did a great job explaining your background and motivations. For future interviews, try to connect your experiences more directly to the role requirements. Your enthusiasm is a strength!",
		Strengths:  []string{"Clear communication", "Enthusiasm and motivation", "Good foundational understanding"},
		Weaknesses: []string{"Could connect experiences more directly to role", "Need more specific examples", "Technical depth could be improved"},
	},
	TierIntermediate: {
		Score:      88,
		Feedback:   "You demonstrated solid experience and good problem-solving abilities. To elevate your performance, focus on quantifying your achievements with specific metrics and showing more leadership initiative.",
		Strengths:  []string{"Relevant experience", "Good problem-solving approach", "Clear communication"},
		Weaknesses: []string{"Could include more specific metrics", "Need to elaborate on leadership examples", "Technical depth could be improved"},
	},
	TierExpert: {
		Score:      88,
		Feedback:   "You showcased extensive experience and strategic thinking. To refine your approach, consider providing more concise answers while maintaining depth, and ensure you're directly addressing the question asked.",
		Strengths:  []string{"Extensive experience", "Strategic thinking", "Strong technical foundation"},
		Weaknesses: []string{"Answers could be more concise", "Need to directly address questions", "Could show more innovative approaches"},
	},
}

func hrVerdicts() map[Tier]Verdict {
	out := make(map[Tier]Verdict, 3)
	strengths := map[Tier][]string{
		TierBeginner:     {"Solid grasp of HR fundamentals", "Willingness to learn", "Clear communication"},
		TierIntermediate: {"Practical policy knowledge", "Good handling of common scenarios", "Structured answers"},
		TierExpert:       {"Strategic workforce perspective", "Change management experience", "Strong leadership philosophy"},
	}
	weaknesses := map[Tier][]string{
		TierBeginner:     {"Limited exposure to policy interpretation", "Needs more concrete examples", "Foundational employment law depth"},
		TierIntermediate: {"Could quantify outcomes more", "More strategic framing needed", "Deeper legal risk awareness"},
		TierExpert:       {"Answers could be more concise", "Tie strategy to measurable indicators", "Address the question more directly"},
	}
	for _, t := range []Tier{TierBeginner, TierIntermediate, TierExpert} {
		out[t] = Verdict{
			Score:      85,
			Feedback:   fmt.Sprintf("Excellent response to strategic questions. Need to be more precise on policy details. Overall, %s-level proficiency demonstrated.", t),
			Strengths:  strengths[t],
			Weaknesses: weaknesses[t],
		}
	}
	return out
}

// DefaultWorkflows wires the two shipped interview variants. Zero limits
// fall back to the canonical seven and five turns.
func DefaultWorkflows(p provider.Provider, humanLimit, hrLimit int) map[string]*Workflow {
	if humanLimit <= 0 {
		humanLimit = 7
	}
	if hrLimit <= 0 {
		hrLimit = 5
	}
	return map[string]*Workflow{
		WorkflowHumanLike: {
			Name:      WorkflowHumanLike,
			TurnLimit: humanLimit,
			Strategy:  HeuristicStrategy{},
			verdicts:  humanVerdicts,
		},
		WorkflowHRSpecialist: {
			Name:      WorkflowHRSpecialist,
			TurnLimit: hrLimit,
			Strategy:  ModelStrategy{Provider: p},
			verdicts:  hrVerdicts(),
		},
	}
}
