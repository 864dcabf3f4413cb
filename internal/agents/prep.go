package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/careerflow-ai/careerflow/internal/normalize"
	"github.com/careerflow-ai/careerflow/internal/telemetry"
	"github.com/careerflow-ai/careerflow/provider"
)

const simulatePrompt = `You are an expert interviewer conducting a %s interview for a %s position.
The candidate has %s experience level.

Generate a realistic interview question appropriate for this role and experience level.
Provide:
1. The interview question
2. Tips on how to approach answering this question
3. What the interviewer is looking for in a good answer

Format your response as JSON with keys: question, tips, expectations.`

const preparePrompt = `You are helping a candidate prepare for an interview based on their resume and a job description.

Job Description:
%s

Resume Content:
%s

Provide:
1. Key topics the candidate should be prepared to discuss
2. Potential technical questions based on their experience
3. Behavioral questions they should prepare for
4. Specific examples from their resume to highlight

Format your response as JSON with keys: topics, technical_questions, behavioral_questions, examples.`

// SimulatedQuestion is one standalone practice question with coaching notes.
type SimulatedQuestion struct {
	Question     string `json:"question"`
	Tips         string `json:"tips"`
	Expectations string `json:"expectations"`
}

// PrepPlan lists what a candidate should rehearse for a specific opening.
type PrepPlan struct {
	Topics              []string `json:"topics"`
	TechnicalQuestions  []string `json:"technical_questions"`
	BehavioralQuestions []string `json:"behavioral_questions"`
	Examples            []string `json:"examples"`
}

// PrepAgent produces one-shot practice questions and preparation plans. The
// multi-turn interview flow lives in the interview package; this agent only
// covers the stateless endpoints.
type PrepAgent struct {
	provider provider.Provider
	logger   *log.Logger
}

func NewPrepAgent(p provider.Provider, logger *log.Logger) *PrepAgent {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	}
	return &PrepAgent{provider: p, logger: logger}
}

// Simulate generates a single practice question for the role, level and
// interview type.
func (a *PrepAgent) Simulate(ctx context.Context, role, experienceLevel, interviewType string) (SimulatedQuestion, error) {
	raw, err := a.provider.Generate(ctx, fmt.Sprintf(simulatePrompt, interviewType, role, experienceLevel))
	if err != nil {
		telemetry.ModelCalls.WithLabelValues("prep", "error").Inc()
		return SimulatedQuestion{}, err
	}
	telemetry.ModelCalls.WithLabelValues("prep", "ok").Inc()

	obj := normalize.ObjectOr("agents.simulate", raw, nil, "question", "tips", "expectations")
	if obj == nil {
		return SimulatedQuestion{
			Question:     fmt.Sprintf("Tell me about a recent project that best represents your work as a %s.", role),
			Tips:         "Structure the answer around the situation, your actions and the measurable result.",
			Expectations: "A concrete example with a clear personal contribution and outcome.",
		}, nil
	}
	var q SimulatedQuestion
	if err := decodeObject(obj, &q); err != nil {
		return SimulatedQuestion{}, fmt.Errorf("decode simulated question: %w", err)
	}
	return q, nil
}

// Prepare builds a preparation plan from the job description and resume.
func (a *PrepAgent) Prepare(ctx context.Context, jobDescription, resumeContent string) (PrepPlan, error) {
	raw, err := a.provider.Generate(ctx, fmt.Sprintf(preparePrompt, jobDescription, resumeContent))
	if err != nil {
		telemetry.ModelCalls.WithLabelValues("prep", "error").Inc()
		return PrepPlan{}, err
	}
	telemetry.ModelCalls.WithLabelValues("prep", "ok").Inc()

	obj, err := normalize.Object(raw, "topics", "technical_questions", "behavioral_questions", "examples")
	if err != nil {
		telemetry.NormalizeFallbacks.WithLabelValues("agents.prepare").Inc()
		a.logger.Printf("prep plan reply rejected: %v; raw reply: %q", err, raw)
		return PrepPlan{}, fmt.Errorf("prepare interview: %w", err)
	}
	var plan PrepPlan
	if err := decodeObject(obj, &plan); err != nil {
		return PrepPlan{}, fmt.Errorf("decode prep plan: %w", err)
	}
	return plan, nil
}
