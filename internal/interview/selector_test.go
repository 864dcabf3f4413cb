package interview

import (
	"context"
	"strings"
	"testing"
)

func TestHeuristic_BeginnerVagueAnswerTriggersClarification(t *testing.T) {
	sess := &Session{Tier: TierBeginner}
	for _, answer := range []string{
		"I don't know",
		"not sure really",
		"short answer", // under twenty words
	} {
		q, complete, err := (HeuristicStrategy{}).Next(context.Background(), sess, answer)
		if err != nil || complete {
			t.Fatalf("unexpected err=%v complete=%v", err, complete)
		}
		if !strings.Contains(q, "more specific example") {
			t.Fatalf("answer %q should trigger clarification, got %q", answer, q)
		}
	}
}

func TestHeuristic_BeginnerSubstantiveAnswerEscalates(t *testing.T) {
	sess := &Session{Tier: TierBeginner}
	answer := strings.Repeat("I built a project with my classmates and learned a lot about testing. ", 3)
	q, _, err := (HeuristicStrategy{}).Next(context.Background(), sess, answer)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !strings.Contains(q, "difficult team member") {
		t.Fatalf("expected escalation question, got %q", q)
	}
}

func TestHeuristic_IntermediateBranches(t *testing.T) {
	sess := &Session{Tier: TierIntermediate}
	pad := strings.Repeat("and then we shipped the release on time with the whole group aligned ", 2)

	q, _, _ := (HeuristicStrategy{}).Next(context.Background(), sess, "I led a migration team last year "+pad)
	if !strings.Contains(q, "quantify the impact") {
		t.Fatalf("leadership answer should probe impact, got %q", q)
	}

	q, _, _ = (HeuristicStrategy{}).Next(context.Background(), sess, "We hit a big problem in production "+pad)
	if !strings.Contains(q, "differently") {
		t.Fatalf("problem answer should ask about hindsight, got %q", q)
	}

	q, _, _ = (HeuristicStrategy{}).Next(context.Background(), sess, "My background is mostly backend services "+pad)
	if !strings.Contains(q, "complex project") {
		t.Fatalf("expected default branch, got %q", q)
	}
}

func TestHeuristic_ExpertBranches(t *testing.T) {
	sess := &Session{Tier: TierExpert}
	pad := strings.Repeat("which shaped how the organization operated over several years of growth ", 2)

	q, _, _ := (HeuristicStrategy{}).Next(context.Background(), sess, "Our long-term strategy was consolidation "+pad)
	if !strings.Contains(q, "key performance indicators") {
		t.Fatalf("strategy answer should probe measurement, got %q", q)
	}

	q, _, _ = (HeuristicStrategy{}).Next(context.Background(), sess, "I grew the people around me "+pad)
	if !strings.Contains(q, "developing talent") {
		t.Fatalf("people answer should probe development, got %q", q)
	}
}

// Selection must be total: any tier value and any answer yields a question.
func TestHeuristic_AlwaysProducesAQuestion(t *testing.T) {
	for _, tier := range []Tier{TierBeginner, TierIntermediate, TierExpert, Tier("bogus")} {
		sess := &Session{Tier: tier}
		q, _, err := (HeuristicStrategy{}).Next(context.Background(), sess, "")
		if err != nil {
			t.Fatalf("tier %s: %v", tier, err)
		}
		if q == "" {
			t.Fatalf("tier %s produced an empty question", tier)
		}
		opener, err := (HeuristicStrategy{}).Opening(context.Background(), sess)
		if err != nil || opener == "" {
			t.Fatalf("tier %s: empty opener (err=%v)", tier, err)
		}
	}
}
