package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/careerflow-ai/careerflow/internal/telemetry"
	"github.com/careerflow-ai/careerflow/provider"
)

const docsPrompt = `You are an expert document writer. Generate a professional %s based on the provided information.

Content Data:
%s

Please provide:
1. A well-formatted document following standard conventions for this document type
2. Professional language and tone
3. Proper structure and organization
4. Relevant content based on the provided data

Format your response as a properly formatted document.`

// DocsAgent drafts cover letters, follow-ups and similar career documents.
// Output is free-form text, there is nothing to normalize.
type DocsAgent struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewDocsAgent(p provider.Provider, logger *log.Logger) *DocsAgent {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &DocsAgent{provider: p, logger: logger}
}

// Generate renders a document of documentType from contentData.
func (a *DocsAgent) Generate(ctx context.Context, documentType string, contentData map[string]interface{}) (string, error) {
	data, err := json.Marshal(contentData)
	if err != nil {
		return "", fmt.Errorf("encode content data: %w", err)
	}
	out, err := a.provider.Generate(ctx, fmt.Sprintf(docsPrompt, documentType, data))
	if err != nil {
		telemetry.ModelCalls.WithLabelValues("docs", "error").Inc()
		return "", err
	}
	telemetry.ModelCalls.WithLabelValues("docs", "ok").Inc()
	return out, nil
}
