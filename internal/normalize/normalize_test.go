package normalize

import "testing"

func TestObject_FencedJSONWithLanguageTag(t *testing.T) {
	raw := "```json\n{\"question\": \"Q?\", \"interview_status\": \"continue\"}\n```"
	got, err := Object(raw, "question", "interview_status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["question"] != "Q?" {
		t.Fatalf("expected question %q, got %v", "Q?", got["question"])
	}
	if got["interview_status"] != "continue" {
		t.Fatalf("expected status continue, got %v", got["interview_status"])
	}
}

func TestObject_FencedJSONWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	got, err := Object(raw, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["a"].(float64) != 1 {
		t.Fatalf("expected a=1, got %v", got["a"])
	}
}

func TestObject_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n{\"ats_score\": 75, \"status\": \"success\"}\nHope that helps."
	got, err := Object(raw, "ats_score", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["ats_score"].(float64) != 75 {
		t.Fatalf("expected ats_score 75, got %v", got["ats_score"])
	}
}

func TestObject_MissingRequiredKey(t *testing.T) {
	_, err := Object(`{"question": "Q?"}`, "question", "interview_status")
	if err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestObject_NoObjectAtAll(t *testing.T) {
	if _, err := Object("I cannot comply."); err == nil {
		t.Fatal("expected error for prose-only reply")
	}
	if _, err := Object(""); err == nil {
		t.Fatal("expected error for empty reply")
	}
}

func TestObjectOr_FallsBackOnGarbage(t *testing.T) {
	fallback := map[string]interface{}{"question": "fallback?", "interview_status": "continue"}
	got := ObjectOr("test", "I cannot comply.", fallback, "question", "interview_status")
	if got["question"] != "fallback?" {
		t.Fatalf("expected fallback payload, got %v", got)
	}
}

func TestObjectOr_PassesThroughValidReply(t *testing.T) {
	fallback := map[string]interface{}{"question": "fallback?"}
	got := ObjectOr("test", `{"question": "real?"}`, fallback, "question")
	if got["question"] != "real?" {
		t.Fatalf("expected real payload, got %v", got)
	}
}

func TestStripFence_UnfencedInputUnchanged(t *testing.T) {
	in := `{"a": 1}`
	if got := StripFence(in); got != in {
		t.Fatalf("expected %q, got %q", in, got)
	}
}

func TestStripFence_FenceOnSameLineAsObject(t *testing.T) {
	// Some models open the fence and the object on one line.
	got := StripFence("```{\"a\": 1}```")
	if got != `{"a": 1}` {
		t.Fatalf("expected object, got %q", got)
	}
}
