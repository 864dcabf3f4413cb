package server

// HTTPError is a generic error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

// AuthSignupRequest represents the signup payload.
type AuthSignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// AuthLoginRequest represents the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// HumanInterviewStartRequest opens a human-like interview session.
type HumanInterviewStartRequest struct {
	Role            string `json:"role"`
	ExperienceLevel string `json:"experience_level"`
}

// HumanInterviewAnswerRequest submits one answer to a running session.
type HumanInterviewAnswerRequest struct {
	SessionID  string `json:"session_id"`
	AnswerText string `json:"answer_text"`
}

// HRInterviewStartRequest opens a model-driven HR interview session.
// UserID is optional; when set, the final verdict is audited to history.
type HRInterviewStartRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Level  string `json:"level"`
}

// HRInterviewAnswerRequest submits one answer to a running HR session.
type HRInterviewAnswerRequest struct {
	UserID     string `json:"user_id"`
	SessionID  string `json:"session_id"`
	UserAnswer string `json:"user_answer"`
}

// InterviewQuestionResponse is returned while a session continues.
type InterviewQuestionResponse struct {
	SessionID    string `json:"session_id"`
	QuestionText string `json:"question_text"`
	AudioURL     string `json:"audio_url"`
	Status       string `json:"status"`
}

// InterviewVerdictResponse is returned exactly once, when a session ends.
type InterviewVerdictResponse struct {
	SessionID       string   `json:"session_id"`
	Status          string   `json:"status"`
	FinalScore      int      `json:"final_score"`
	OverallFeedback string   `json:"overall_feedback"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
}

// ResumeAnalysisRequest analyzes pasted resume text.
type ResumeAnalysisRequest struct {
	ResumeContent  string `json:"resume_content"`
	JobDescription string `json:"job_description"`
}

// SimulateInterviewRequest asks for one standalone practice question.
type SimulateInterviewRequest struct {
	Role            string `json:"role"`
	ExperienceLevel string `json:"experience_level"`
	InterviewType   string `json:"interview_type"`
}

// ContractReviewRequest reviews pasted contract text.
type ContractReviewRequest struct {
	ContractText string `json:"contract_text"`
}

// DocumentGenerationRequest drafts a career document.
type DocumentGenerationRequest struct {
	DocumentType string                 `json:"document_type"`
	ContentData  map[string]interface{} `json:"content_data"`
}

// DocumentResponse carries the generated document body.
type DocumentResponse struct {
	Document string `json:"document"`
}

// WorkflowRequest executes a multi-agent workflow.
type WorkflowRequest struct {
	Workflow string                 `json:"workflow"`
	Context  map[string]interface{} `json:"context"`
}

// HistoryEntry is one record in the history listing.
type HistoryEntry struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"session_id"`
	AgentName  string      `json:"agent_name"`
	ActionType string      `json:"action_type"`
	Summary    string      `json:"summary_text"`
	FullOutput interface{} `json:"full_output"`
	CreatedAt  string      `json:"timestamp"`
}

// HistoryListResponse is a paginated history page.
type HistoryListResponse struct {
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Records []HistoryEntry `json:"records"`
}
