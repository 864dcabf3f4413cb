package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/careerflow-ai/careerflow/provider"
)

// Router owns one instance of every specialized agent and dispatches
// requests to them, either one at a time (Route) or as a multi-agent
// workflow (Coordinate).
type Router struct {
	Resume   *ResumeAgent
	Contract *ContractAgent
	Docs     *DocsAgent
	Prep     *PrepAgent
}

func NewRouter(p provider.Provider, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &Router{
		Resume:   NewResumeAgent(p, logger),
		Contract: NewContractAgent(p, logger),
		Docs:     NewDocsAgent(p, logger),
		Prep:     NewPrepAgent(p, logger),
	}
}

func str(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// Route dispatches a single request to the agent named by requestType
// (resume, interview, contract or docs).
func (r *Router) Route(ctx context.Context, requestType string, data map[string]interface{}) (interface{}, error) {
	switch requestType {
	case "resume":
		return r.Resume.Analyze(ctx, str(data, "resume_content")), nil
	case "interview":
		return r.Prep.Simulate(ctx, str(data, "role"), str(data, "experience_level"), str(data, "interview_type"))
	case "contract":
		return r.Contract.Review(ctx, str(data, "contract_text"))
	case "docs":
		content, _ := data["content_data"].(map[string]interface{})
		return r.Docs.Generate(ctx, str(data, "document_type"), content)
	default:
		return nil, fmt.Errorf("unknown request type: %s", requestType)
	}
}

// WorkflowResult bundles the outputs of a coordinated multi-agent run.
type WorkflowResult struct {
	Workflow string                 `json:"workflow"`
	Results  map[string]interface{} `json:"results"`
}

// Coordinate runs the named multi-agent workflow over the shared context.
// job_application combines resume analysis with interview preparation;
// offer_review combines contract review with a counter-offer draft.
func (r *Router) Coordinate(ctx context.Context, workflow string, wctx map[string]interface{}) (*WorkflowResult, error) {
	switch workflow {
	case "job_application":
		resume := r.Resume.Analyze(ctx, str(wctx, "resume_content"))
		prep, err := r.Prep.Prepare(ctx, str(wctx, "job_description"), str(wctx, "resume_content"))
		if err != nil {
			return nil, fmt.Errorf("job_application workflow: %w", err)
		}
		return &WorkflowResult{
			Workflow: "job_application",
			Results: map[string]interface{}{
				"resume_analysis": resume,
				"interview_prep":  prep,
			},
		}, nil
	case "offer_review":
		review, err := r.Contract.Review(ctx, str(wctx, "contract_text"))
		if err != nil {
			return nil, fmt.Errorf("offer_review workflow: %w", err)
		}
		doc, err := r.Docs.Generate(ctx, "counter_offer_letter", map[string]interface{}{
			"contract_issues": review.Issues,
			"position":        str(wctx, "position"),
			"company":         str(wctx, "company"),
		})
		if err != nil {
			return nil, fmt.Errorf("offer_review workflow: %w", err)
		}
		return &WorkflowResult{
			Workflow: "offer_review",
			Results: map[string]interface{}{
				"contract_analysis": review,
				"supporting_docs":   doc,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown workflow: %s", workflow)
	}
}
