package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerflow-ai/careerflow/internal/agents"
	"github.com/careerflow-ai/careerflow/internal/audit"
	"github.com/careerflow-ai/careerflow/internal/extract"
	"github.com/careerflow-ai/careerflow/internal/store"
	"github.com/careerflow-ai/careerflow/provider"
)

// maxUploadBytes bounds resume/contract uploads.
const maxUploadBytes = 10 << 20

// AgentsHandler exposes the single-shot agent endpoints: resume analysis,
// practice questions, contract review, document generation and the
// coordinated workflows.
type AgentsHandler struct {
	Router *agents.Router
	Audit  *audit.Recorder
}

func (h *AgentsHandler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/analyze/resume/file", h.analyzeResumeFile)
	api.POST("/analyze/resume/text", h.analyzeResumeText)
	api.POST("/simulate/interview", h.simulateInterview)
	api.POST("/review/contract", h.reviewContract)
	api.POST("/generate/document", h.generateDocument)
	api.POST("/workflow/execute", h.executeWorkflow)
}

func (h *AgentsHandler) analyzeResumeFile(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	text, err := extract.Text(fh.Header.Get("Content-Type"), data)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyDocument) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"could not extract text from the file, please ensure it contains text content")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report := h.Router.Resume.Analyze(c.Request().Context(), text)
	h.auditReport(c, c.FormValue("user_id"), "Resume Analyzer", fmt.Sprintf("ATS Score: %d", report.ATSScore), report)
	return c.JSON(http.StatusOK, report)
}

func (h *AgentsHandler) analyzeResumeText(c echo.Context) error {
	var req ResumeAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ResumeContent == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "resume_content is required")
	}
	report := h.Router.Resume.Analyze(c.Request().Context(), req.ResumeContent)
	return c.JSON(http.StatusOK, report)
}

func (h *AgentsHandler) simulateInterview(c echo.Context) error {
	var req SimulateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q, err := h.Router.Prep.Simulate(c.Request().Context(), req.Role, req.ExperienceLevel, req.InterviewType)
	if err != nil {
		return agentHTTPError(err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *AgentsHandler) reviewContract(c echo.Context) error {
	var req ContractReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ContractText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "contract_text is required")
	}
	review, err := h.Router.Contract.Review(c.Request().Context(), req.ContractText)
	if err != nil {
		return agentHTTPError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *AgentsHandler) generateDocument(c echo.Context) error {
	var req DocumentGenerationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DocumentType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "document_type is required")
	}
	doc, err := h.Router.Docs.Generate(c.Request().Context(), req.DocumentType, req.ContentData)
	if err != nil {
		return agentHTTPError(err)
	}
	return c.JSON(http.StatusOK, DocumentResponse{Document: doc})
}

func (h *AgentsHandler) executeWorkflow(c echo.Context) error {
	var req WorkflowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.Router.Coordinate(c.Request().Context(), req.Workflow, req.Context)
	if err != nil {
		if provider.IsCallFailure(err) {
			return agentHTTPError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AgentsHandler) auditReport(c echo.Context, userID, agentName, summary string, out interface{}) {
	if h.Audit == nil || userID == "" {
		return
	}
	payload, _ := json.Marshal(out)
	h.Audit.Record(c.Request().Context(), store.HistoryRecord{
		UserID:     userID,
		AgentName:  agentName,
		ActionType: "analyze",
		Summary:    summary,
		FullOutput: payload,
	})
}

func agentHTTPError(err error) error {
	if provider.IsCallFailure(err) {
		return echo.NewHTTPError(http.StatusBadGateway, "generative service temporarily unavailable, please try again")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
