package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careerflow-ai/careerflow/internal/interview"
)

func newInterviewEcho(t *testing.T) *echo.Echo {
	t.Helper()
	sessions := interview.NewMemoryStore(0)
	t.Cleanup(sessions.Close)

	e := newEcho()
	h := &InterviewHandler{Orch: interview.NewOrchestrator(sessions, interview.DefaultWorkflows(nil, 7, 5), nil)}
	h.Register(e)
	return e
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestHumanInterview_StartAndAnswer(t *testing.T) {
	e := newInterviewEcho(t)

	rec, out := postJSON(t, e, "/api/human_interview/start",
		`{"role": "Software Engineer", "experience_level": "Beginner"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status %d: %s", rec.Code, rec.Body.String())
	}
	sessionID, _ := out["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("missing session_id: %v", out)
	}
	if out["status"] != "continue" {
		t.Fatalf("unexpected status: %v", out["status"])
	}
	if out["audio_url"] != fmt.Sprintf("/audio/%s_q1.mp3", sessionID) {
		t.Fatalf("unexpected audio url: %v", out["audio_url"])
	}

	rec, out = postJSON(t, e, "/api/human_interview/answer",
		fmt.Sprintf(`{"session_id": %q, "answer_text": "I don't know"}`, sessionID))
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status %d: %s", rec.Code, rec.Body.String())
	}
	q, _ := out["question_text"].(string)
	if !strings.Contains(q, "more specific example") {
		t.Fatalf("expected clarification question, got %q", q)
	}
	if out["audio_url"] != fmt.Sprintf("/audio/%s_q2.mp3", sessionID) {
		t.Fatalf("unexpected audio url: %v", out["audio_url"])
	}
}

func TestHumanInterview_CompletionVerdict(t *testing.T) {
	e := newInterviewEcho(t)

	_, out := postJSON(t, e, "/api/human_interview/start",
		`{"role": "Software Engineer", "experience_level": "Expert"}`)
	sessionID := out["session_id"].(string)

	var last map[string]interface{}
	for i := 0; i < 7; i++ {
		body := fmt.Sprintf(`{"session_id": %q, "answer_text": "a distinct well developed answer number %d with plenty of detail to work from"}`, sessionID, i)
		rec, res := postJSON(t, e, "/api/human_interview/answer", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("answer %d status %d: %s", i, rec.Code, rec.Body.String())
		}
		last = res
	}
	if last["status"] != "complete" {
		t.Fatalf("expected completion, got %v", last)
	}
	if score, _ := last["final_score"].(float64); score != 88 {
		t.Fatalf("unexpected final score: %v", last["final_score"])
	}
	if _, ok := last["strengths"].([]interface{}); !ok {
		t.Fatalf("missing strengths: %v", last)
	}

	// The session is gone; one more answer is a client error.
	rec, out := postJSON(t, e, "/api/human_interview/answer",
		fmt.Sprintf(`{"session_id": %q, "answer_text": "hello again"}`, sessionID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for finished session, got %d", rec.Code)
	}
	if msg, _ := out["error"].(string); !strings.Contains(msg, "expired or invalid") {
		t.Fatalf("unexpected error message: %v", out)
	}
}

func TestHumanInterview_StartValidation(t *testing.T) {
	e := newInterviewEcho(t)

	rec, _ := postJSON(t, e, "/api/human_interview/start", `{"experience_level": "Beginner"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing role, got %d", rec.Code)
	}
}

func TestInterview_UnknownSessionIsClientError(t *testing.T) {
	e := newInterviewEcho(t)

	rec, _ := postJSON(t, e, "/api/interview/answer",
		`{"session_id": "bogus", "user_answer": "hello"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
