package interview

import (
	"strings"
	"testing"
)

func TestBuildInterviewerPrompt_Deterministic(t *testing.T) {
	in := PromptInput{Role: "HR Manager", Tier: TierIntermediate, PrevQuestion: "Q?", PrevAnswer: "A."}
	if BuildInterviewerPrompt(in) != BuildInterviewerPrompt(in) {
		t.Fatal("prompt rendering must be deterministic")
	}
}

func TestBuildInterviewerPrompt_EmbedsContext(t *testing.T) {
	p := BuildInterviewerPrompt(PromptInput{Role: "HR Analyst", Tier: TierExpert, PrevQuestion: "Tell me about a merger.", PrevAnswer: "We merged two org charts."})
	for _, want := range []string{
		"Target Role: HR Analyst",
		"Experience Level: EXPERT",
		"Tell me about a merger. - We merged two org charts.",
		`"interview_status"`,
		"single JSON object",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestBuildInterviewerPrompt_FirstQuestionVariant(t *testing.T) {
	p := BuildInterviewerPrompt(PromptInput{Role: "HR Analyst", Tier: TierBeginner})
	if !strings.Contains(p, "Previous Dialogue: []") {
		t.Fatalf("expected empty dialogue marker:\n%s", p)
	}
	if !strings.Contains(p, "Generate the first interview question") {
		t.Fatalf("expected first-question directive:\n%s", p)
	}
}

func TestParseTier(t *testing.T) {
	cases := map[string]Tier{
		"Beginner":     TierBeginner,
		"beginner":     TierBeginner,
		"Intermediate": TierIntermediate,
		"mid":          TierIntermediate,
		"Expert":       TierExpert,
		"":             TierExpert,
		"wizard":       TierExpert,
	}
	for in, want := range cases {
		if got := ParseTier(in); got != want {
			t.Fatalf("ParseTier(%q) = %s, want %s", in, got, want)
		}
	}
}
