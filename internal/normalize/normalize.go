package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/careerflow-ai/careerflow/internal/telemetry"
)

// Model replies are supposed to be a single JSON object, but in practice they
// arrive wrapped in markdown fences, prefixed with prose ("Sure, here is the
// JSON you asked for:") or truncated. Object recovers the object by applying
// a fixed sequence of repairs before parsing; ObjectOr additionally degrades
// to a caller-supplied payload instead of returning an error, so one
// malformed reply never fails a whole session.

var (
	ErrNoObject   = errors.New("no JSON object found in model reply")
	ErrMissingKey = errors.New("required key missing from model reply")
)

// Object extracts and parses the JSON object embedded in raw. The repair
// stages are applied in order: whitespace trim, code-fence strip, slice from
// the first '{' to the last '}', parse. After parsing, every key in required
// must be present or the reply is rejected.
func Object(raw string, required ...string) (map[string]interface{}, error) {
	s := strings.TrimSpace(raw)
	s = StripFence(s)
	s = sliceBraces(s)
	if s == "" {
		return nil, ErrNoObject
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}
	for _, k := range required {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, k)
		}
	}
	return out, nil
}

// ObjectOr behaves like Object but never fails: on any extraction or
// validation error it logs the raw reply for diagnostics and returns the
// caller's fallback payload. site labels the call site in logs and metrics.
func ObjectOr(site, raw string, fallback map[string]interface{}, required ...string) map[string]interface{} {
	out, err := Object(raw, required...)
	if err != nil {
		telemetry.NormalizeFallbacks.WithLabelValues(site).Inc()
		log.Printf("[NORMALIZE] %s: %v; raw reply: %q", site, err, raw)
		return fallback
	}
	return out
}

// StripFence removes a leading markdown code fence (with optional language
// tag) and, if present, the trailing fence. Input without a fence is
// returned unchanged apart from surrounding whitespace.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag, if any, up to the first newline.
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		tag := strings.TrimSpace(s[:idx])
		if !strings.ContainsAny(tag, "{}") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sliceBraces narrows s to the span between the first '{' and the last '}'.
// This defends against prose the model added around the object despite the
// output-shape directive. Returns "" when no such span exists.
func sliceBraces(s string) string {
	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
