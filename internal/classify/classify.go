// Package classify asks the completion service for a structured
// severity/specialist verdict on a message. It is a best-effort enrichment
// signal: every failure mode collapses to a safe default so callers never
// have to handle an error.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mediquery/mediquery-go/internal/llm"
	"github.com/mediquery/mediquery-go/internal/logger"
	"github.com/mediquery/mediquery-go/internal/specialist"
)

// Severity is the four-level ordinal classification of a described symptom.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityMinor  Severity = "minor"
	SeverityMedium Severity = "medium"
	SeveritySevere Severity = "severe"
)

// Result is the remote classifier's verdict for a single message.
type Result struct {
	Severity   Severity
	Specialist string
}

// Default is the verdict used whenever the remote classification cannot be
// trusted: no urgency, generalist referral.
func Default() Result {
	return Result{Severity: SeverityNone, Specialist: specialist.Default}
}

var schemaPrompt = "Classify the user's medical concern. " +
	"Respond ONLY in strict JSON with keys: severity, specialist.\n" +
	"- severity: one of ['none','minor','medium','severe']\n" +
	"- specialist: choose the most appropriate specialty from this list: " +
	"['" + strings.Join(specialist.Labels, "','") + "']\n" +
	"For greetings or non-medical text, use severity='none' and specialist='General Physician'."

// Classify sends the message with the strict-JSON schema prompt and parses
// the reply. It never fails: transport errors, empty responses, and
// malformed JSON all yield Default(); out-of-range fields are coerced.
func Classify(ctx context.Context, client llm.Client, model, message string) Result {
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: schemaPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		logger.L.Warn("classification call failed; using default", "error", err)
		return Default()
	}
	if len(resp.Choices) == 0 {
		logger.L.Warn("classification returned no choices; using default")
		return Default()
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	var payload struct {
		Severity   string `json:"severity"`
		Specialist string `json:"specialist"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.L.Warn("classification reply is not strict JSON; using default", "error", err, "raw", raw)
		return Default()
	}

	return normalize(payload.Severity, payload.Specialist)
}

// normalize coerces raw classifier fields into the allowed value sets.
func normalize(severity, spec string) Result {
	out := Result{
		Severity:   Severity(strings.ToLower(strings.TrimSpace(severity))),
		Specialist: strings.TrimSpace(spec),
	}
	switch out.Severity {
	case SeverityNone, SeverityMinor, SeverityMedium, SeveritySevere:
	default:
		out.Severity = SeverityNone
	}
	if out.Specialist == "" {
		out.Specialist = specialist.Default
	}
	return out
}

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	return fmt.Sprintf("%s/%s", r.Severity, r.Specialist)
}
