package store

import "testing"

func TestHistoryIndex_SearchScopedToUser(t *testing.T) {
	idx := NewHistoryIndex()
	defer idx.Close()

	records := []HistoryRecord{
		{ID: "r1", UserID: "alice", AgentName: "Resume Analyzer", Summary: "ATS Score: 82"},
		{ID: "r2", UserID: "alice", AgentName: "Contract Guardian", Summary: "Risk level High, non-compete clause flagged"},
		{ID: "r3", UserID: "bob", AgentName: "Resume Analyzer", Summary: "ATS Score: 40"},
	}
	for _, rec := range records {
		if err := idx.Add(rec); err != nil {
			t.Fatalf("index %s: %v", rec.ID, err)
		}
	}

	ids, err := idx.Search("alice", "resume", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "r1" {
		t.Fatalf("expected [r1], got %v", ids)
	}

	ids, err = idx.Search("alice", "non-compete", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "r2" {
		t.Fatalf("expected [r2], got %v", ids)
	}
}

func TestHistoryIndex_UnknownUserIsEmpty(t *testing.T) {
	idx := NewHistoryIndex()
	defer idx.Close()

	ids, err := idx.Search("nobody", "anything", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no hits, got %v", ids)
	}
}
