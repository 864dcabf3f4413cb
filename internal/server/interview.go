package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerflow-ai/careerflow/internal/audit"
	"github.com/careerflow-ai/careerflow/internal/interview"
	"github.com/careerflow-ai/careerflow/internal/store"
	"github.com/careerflow-ai/careerflow/provider"
)

// InterviewHandler exposes the two multi-turn interview flows. Audit is
// optional: when wired and the client supplied a user id, the final verdict
// lands in that user's history.
type InterviewHandler struct {
	Orch  *interview.Orchestrator
	Audit *audit.Recorder
}

func (h *InterviewHandler) Register(e *echo.Echo) {
	human := e.Group("/api/human_interview")
	human.POST("/start", h.startHuman)
	human.POST("/answer", h.answerHuman)

	hr := e.Group("/api/interview")
	hr.POST("/start", h.startHR)
	hr.POST("/answer", h.answerHR)
}

func (h *InterviewHandler) startHuman(c echo.Context) error {
	var req HumanInterviewStartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.Orch.Start(c.Request().Context(), interview.WorkflowHumanLike, req.Role, req.ExperienceLevel)
	if err != nil {
		return interviewHTTPError(err)
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{
		SessionID:    res.SessionID,
		QuestionText: res.Question,
		AudioURL:     audioURL(res.SessionID, 1),
		Status:       "continue",
	})
}

func (h *InterviewHandler) answerHuman(c echo.Context) error {
	var req HumanInterviewAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.Orch.Submit(c.Request().Context(), req.SessionID, req.AnswerText)
	if err != nil {
		return interviewHTTPError(err)
	}
	if res.Complete {
		return c.JSON(http.StatusOK, h.verdictResponse(c, "", "Human Interview", res))
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{
		SessionID:    res.SessionID,
		QuestionText: res.Question,
		AudioURL:     audioURL(res.SessionID, res.Turn+1),
		Status:       "continue",
	})
}

func (h *InterviewHandler) startHR(c echo.Context) error {
	var req HRInterviewStartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.Orch.Start(c.Request().Context(), interview.WorkflowHRSpecialist, req.Role, req.Level)
	if err != nil {
		return interviewHTTPError(err)
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{
		SessionID:    res.SessionID,
		QuestionText: res.Question,
		AudioURL:     audioURL(res.SessionID, 1),
		Status:       "continue",
	})
}

func (h *InterviewHandler) answerHR(c echo.Context) error {
	var req HRInterviewAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.Orch.Submit(c.Request().Context(), req.SessionID, req.UserAnswer)
	if err != nil {
		return interviewHTTPError(err)
	}
	if res.Complete {
		return c.JSON(http.StatusOK, h.verdictResponse(c, req.UserID, "HR Interview Simulator", res))
	}
	return c.JSON(http.StatusOK, InterviewQuestionResponse{
		SessionID:    res.SessionID,
		QuestionText: res.Question,
		AudioURL:     audioURL(res.SessionID, res.Turn+1),
		Status:       "continue",
	})
}

func (h *InterviewHandler) verdictResponse(c echo.Context, userID, agentName string, res *interview.SubmitResult) InterviewVerdictResponse {
	out := InterviewVerdictResponse{
		SessionID:       res.SessionID,
		Status:          "complete",
		FinalScore:      res.Verdict.Score,
		OverallFeedback: res.Verdict.Feedback,
		Strengths:       res.Verdict.Strengths,
		Weaknesses:      res.Verdict.Weaknesses,
	}
	if h.Audit != nil && userID != "" {
		payload, _ := json.Marshal(out)
		h.Audit.Record(c.Request().Context(), store.HistoryRecord{
			UserID:     userID,
			SessionID:  res.SessionID,
			AgentName:  agentName,
			ActionType: "interview",
			Summary:    fmt.Sprintf("Final score: %d", res.Verdict.Score),
			FullOutput: payload,
		})
	}
	return out
}

// TTS is not wired yet; the audio url is a stable placeholder the frontend
// already knows how to render.
func audioURL(sessionID string, question int) string {
	return fmt.Sprintf("/audio/%s_q%d.mp3", sessionID, question)
}

// interviewHTTPError maps engine errors onto client-facing status codes.
// Model call failures surface as a generic 502 so provider diagnostics never
// reach the client.
func interviewHTTPError(err error) error {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "interview session expired or invalid")
	case errors.Is(err, interview.ErrRoleRequired), errors.Is(err, interview.ErrUnknownWorkflow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case provider.IsCallFailure(err):
		return echo.NewHTTPError(http.StatusBadGateway, "interview service temporarily unavailable, please try again")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
