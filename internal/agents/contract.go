package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/careerflow-ai/careerflow/internal/normalize"
	"github.com/careerflow-ai/careerflow/internal/telemetry"
	"github.com/careerflow-ai/careerflow/provider"
)

const contractPrompt = `You are an expert contract reviewer specializing in employment contracts.
Review the following contract and identify any potential issues or areas of concern.

Contract Text:
%s

Please provide:
1. A list of potential issues or red flags
2. Explanation of each issue in plain language
3. Recommendations for negotiation or changes
4. Overall risk assessment (Low/Medium/High)

Format your response as JSON with keys: issues, explanations, recommendations, risk_level.`

// ContractReview is the structured outcome of an employment contract review.
type ContractReview struct {
	Issues          []string `json:"issues"`
	Explanations    []string `json:"explanations"`
	Recommendations []string `json:"recommendations"`
	RiskLevel       string   `json:"risk_level"`
}

// ContractAgent flags risky clauses in employment contracts.
type ContractAgent struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewContractAgent(p provider.Provider, logger *log.Logger) *ContractAgent {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &ContractAgent{provider: p, logger: logger}
}

// Review analyzes contractText. A model call failure propagates to the
// caller; a reply that cannot be normalized degrades to a neutral review
// that tells the user to consult a professional.
func (a *ContractAgent) Review(ctx context.Context, contractText string) (ContractReview, error) {
	raw, err := a.provider.Generate(ctx, fmt.Sprintf(contractPrompt, contractText))
	if err != nil {
		telemetry.ModelCalls.WithLabelValues("contract", "error").Inc()
		return ContractReview{}, err
	}
	telemetry.ModelCalls.WithLabelValues("contract", "ok").Inc()

	obj := normalize.ObjectOr("agents.contract", raw, nil,
		"issues", "explanations", "recommendations", "risk_level")
	if obj == nil {
		return neutralContractReview(), nil
	}

	var review ContractReview
	if err := decodeObject(obj, &review); err != nil {
		a.logger.Printf("contract review decode failed: %v", err)
		return neutralContractReview(), nil
	}
	return review, nil
}

// neutralContractReview is returned when the reply could not be normalized.
// It never invents findings, it only tells the user to get human review.
func neutralContractReview() ContractReview {
	return ContractReview{
		Issues:          []string{"Automated review could not be completed for this document"},
		Explanations:    []string{"The contract text could not be analyzed reliably, so no clause-level findings are available"},
		Recommendations: []string{"Have the contract reviewed by a qualified professional before signing"},
		RiskLevel:       "Medium",
	}
}
