package interview

import (
	"fmt"
	"strings"
)

// PromptInput is everything the interviewer prompt embeds. Rendering is
// deterministic: identical input yields the identical string.
type PromptInput struct {
	Role         string
	Tier         Tier
	PrevQuestion string
	PrevAnswer   string
}

// tierFocus maps each tier to the fixed difficulty calibration line embedded
// in the prompt.
var tierFocus = map[Tier]string{
	TierBeginner:     "Focus on definitions, basic policy adherence, and entry-level tasks.",
	TierIntermediate: "Focus on tactical implementation, policy interpretation, and handling common scenarios.",
	TierExpert:       "Focus on strategic planning, organizational change management, legal risk mitigation, and leadership philosophy.",
}

// BuildInterviewerPrompt renders the instruction string sent to the model for
// one interview turn: the role-playing preamble, per-tier difficulty
// calibration, the prior exchange if any, and a strict JSON output-shape
// directive. Pure string construction, no network.
func BuildInterviewerPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("You are the CareerFlow AI Interview Simulation Agent.\n")
	b.WriteString("Your sole purpose is to conduct a highly realistic, contextual, and role-specific mock interview.\n\n")

	b.WriteString("--- CONTEXT ---\n")
	fmt.Fprintf(&b, "Target Role: %s\n", in.Role)
	fmt.Fprintf(&b, "Experience Level: %s\n", strings.ToUpper(string(in.Tier)))
	if in.PrevQuestion != "" {
		fmt.Fprintf(&b, "Previous Dialogue: %s - %s\n", in.PrevQuestion, in.PrevAnswer)
	} else {
		b.WriteString("Previous Dialogue: []\n")
	}
	b.WriteString("---\n\n")

	b.WriteString("--- INSTRUCTIONS ---\n")
	b.WriteString("1. Difficulty Calibration: tailor your questions to the experience level.\n")
	fmt.Fprintf(&b, "   * BEGINNER: %s\n", tierFocus[TierBeginner])
	fmt.Fprintf(&b, "   * INTERMEDIATE: %s\n", tierFocus[TierIntermediate])
	fmt.Fprintf(&b, "   * EXPERT: %s\n", tierFocus[TierExpert])
	b.WriteString("2. Question Generation: generate only one, single question per turn. The question must be a direct and professional follow-up or a new question highly relevant to the role.\n")
	b.WriteString("3. Interview Flow: if the candidate answers well, increase the complexity of the next question. If the candidate answers poorly, probe deeper into that specific area for validation.\n")
	b.WriteString("4. Do NOT provide the correct answer or coach the candidate. Maintain the role of a neutral interviewer.\n")
	b.WriteString("5. Format your output STRICTLY as a single JSON object with no surrounding text.\n\n")

	b.WriteString("--- JSON OUTPUT FORMAT ---\n")
	b.WriteString("{\n")
	b.WriteString("    \"question\": \"Your single, generated interview question here.\",\n")
	b.WriteString("    \"interview_status\": \"continue\"\n")
	b.WriteString("}\n")
	b.WriteString("Set \"interview_status\" to \"complete\" only when the interview should end.\n\n")

	if in.PrevQuestion == "" {
		fmt.Fprintf(&b, "Generate the first interview question for a %s %s.", in.Tier, in.Role)
	} else {
		b.WriteString("Generate the next interview question based on the previous dialogue.")
	}
	return b.String()
}
