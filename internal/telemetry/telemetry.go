package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exported on /metrics. Registered once at init via
// promauto against the default registry.
var (
	ModelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerflow_model_calls_total",
		Help: "Generative model calls by agent and outcome (ok|error).",
	}, []string{"agent", "outcome"})

	NormalizeFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerflow_normalize_fallbacks_total",
		Help: "Model replies that failed normalization and degraded to the fallback payload.",
	}, []string{"site"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "careerflow_interview_sessions_active",
		Help: "Interview sessions currently held in the session store.",
	})

	InterviewTurns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careerflow_interview_turns_total",
		Help: "Interview answers accepted and recorded.",
	})

	HistoryWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerflow_history_writes_total",
		Help: "History audit records written, by outcome (ok|error).",
	}, []string{"outcome"})
)
