// Package agent composes the final reply for a chat message. A finite
// state machine walks one request through urgency detection, the two
// completion calls, the recommendation decision, and text assembly; the
// composed reply is then persisted.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/qmuntal/stateless"
	"github.com/sashabaranov/go-openai"

	"github.com/mediquery/mediquery-go/internal/classify"
	"github.com/mediquery/mediquery-go/internal/llm"
	"github.com/mediquery/mediquery-go/internal/logger"
	"github.com/mediquery/mediquery-go/internal/specialist"
	"github.com/mediquery/mediquery-go/internal/triage"
)

// FSM states for a single request.
type FSMState stateless.State

var (
	StateReceived              FSMState = "Received"
	StateUrgencyDetermined     FSMState = "UrgencyDetermined"
	StateReplyObtained         FSMState = "ReplyObtained"
	StateRecommendationDecided FSMState = "RecommendationDecided"
	StateComposed              FSMState = "Composed" // Terminal: reply ready
	StateError                 FSMState = "Error"    // Terminal: hard failure
)

// FSM triggers.
type FSMTrigger stateless.Trigger

var (
	TriggerProcessInput          FSMTrigger = "ProcessInput"
	TriggerUrgencyDetermined     FSMTrigger = "UrgencyDetermined"
	TriggerReplyObtained         FSMTrigger = "ReplyObtained"
	TriggerRecommendationDecided FSMTrigger = "RecommendationDecided"
	TriggerComposed              FSMTrigger = "Composed"
	TriggerErrorOccurred         FSMTrigger = "ErrorOccurred"
)

// ErrEmptyMessage is returned for messages that are empty after trimming.
// No remote call is made and nothing is persisted.
var ErrEmptyMessage = errors.New("message is required")

// ErrLLMUnavailable is returned when no completion client could be
// constructed (missing credential). The whole request fails.
var ErrLLMUnavailable = errors.New("llm client unavailable")

// Recorder is the slice of the chat store the agent needs.
type Recorder interface {
	Append(ctx context.Context, userMessage, botReply string) error
}

const (
	personaPrompt = "You are MediQuery, a helpful and cautious medical assistant. " +
		"Provide concise, clear, and empathetic answers. " +
		"If symptoms are serious, remind to seek urgent care. " +
		"Avoid definitive diagnoses and avoid prescribing medications."

	apologyReply = "I'm sorry, I couldn't generate a response right now."

	emergencyLine = "Emergency: call 108 (India) or your local emergency number."
	nextStepsLine = "Suggested next steps: monitor symptoms, rest, stay hydrated, and seek in-person care if worsening."
	disclaimer    = "\n\n⚠️ This is not medical advice. Please consult a doctor."
)

// Agent runs the classification and response-composition pipeline.
type Agent struct {
	llmClient llm.Client
	model     string
	store     Recorder
}

// New creates an agent. llmClient may be nil when no credential was
// configured; Process then fails every request with ErrLLMUnavailable.
func New(llmClient llm.Client, model string, store Recorder) *Agent {
	return &Agent{
		llmClient: llmClient,
		model:     model,
		store:     store,
	}
}

// Process composes and persists the reply for one message.
//
// Degradation policy: a failed classification call falls back to the safe
// default verdict and a failed reply call falls back to a fixed apology
// sentence; neither aborts the request. An empty message, a missing
// completion client, and a store write failure do abort it.
func (a *Agent) Process(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	// Per-request FSM data.
	type fsmContext struct {
		warning     string // keyword-triage prefix, empty when not urgent
		urgent      bool   // keyword triage OR severe classification
		cls         classify.Result
		replyText   string
		includeRecs bool
		finalText   string
		lastError   error
	}
	fc := &fsmContext{}

	fsm := stateless.NewStateMachine(StateReceived)

	// State: Received
	// Action: keyword triage plus the remote classification call; both
	// signals feed the combined urgent flag.
	fsm.Configure(StateReceived).
		PermitReentry(TriggerProcessInput). // the initial Fire re-enters so OnEntry runs
		OnEntry(func(ctx context.Context, _ ...any) error {
			if a.llmClient == nil {
				fc.lastError = ErrLLMUnavailable
				return fsm.FireCtx(ctx, TriggerErrorOccurred)
			}
			if triage.IsEmergency(message) {
				fc.warning = triage.WarningLine
			}
			fc.cls = classify.Classify(ctx, a.llmClient, a.model, message)
			fc.urgent = fc.warning != "" || fc.cls.Severity == classify.SeveritySevere
			logger.L.Debug("urgency determined", "urgent", fc.urgent, "classification", fc.cls.String())
			return fsm.FireCtx(ctx, TriggerUrgencyDetermined)
		}).
		Permit(TriggerUrgencyDetermined, StateUrgencyDetermined).
		Permit(TriggerErrorOccurred, StateError)

	// State: UrgencyDetermined
	// Action: obtain the free-text reply; degrade to the apology sentence
	// on any failure or empty content.
	fsm.Configure(StateUrgencyDetermined).
		OnEntry(func(ctx context.Context, _ ...any) error {
			fc.replyText = a.generateReply(ctx, message)
			return fsm.FireCtx(ctx, TriggerReplyObtained)
		}).
		Permit(TriggerReplyObtained, StateReplyObtained)

	// State: ReplyObtained
	// Action: decide whether the recommendation block is included. The
	// keyword gate is OR-ed with the classifier's medium/severe signal.
	fsm.Configure(StateReplyObtained).
		OnEntry(func(ctx context.Context, _ ...any) error {
			fc.includeRecs = triage.ShouldRecommend(message, fc.urgent) ||
				fc.cls.Severity == classify.SeverityMedium ||
				fc.cls.Severity == classify.SeveritySevere
			return fsm.FireCtx(ctx, TriggerRecommendationDecided)
		}).
		Permit(TriggerRecommendationDecided, StateRecommendationDecided)

	// State: RecommendationDecided
	// Action: assemble the final text.
	fsm.Configure(StateRecommendationDecided).
		OnEntry(func(ctx context.Context, _ ...any) error {
			fc.finalText = a.compose(message, fc.warning, fc.replyText, fc.urgent, fc.includeRecs, fc.cls)
			return fsm.FireCtx(ctx, TriggerComposed)
		}).
		Permit(TriggerComposed, StateComposed)

	// Terminal states carry no actions; Process inspects them below.
	fsm.Configure(StateComposed)
	fsm.Configure(StateError)

	if err := fsm.FireCtx(ctx, TriggerProcessInput); err != nil {
		if fc.lastError != nil {
			return "", fc.lastError
		}
		return "", fmt.Errorf("compose pipeline: %w", err)
	}

	state, err := fsm.State(ctx)
	if err != nil {
		return "", fmt.Errorf("compose pipeline state: %w", err)
	}
	switch state {
	case StateComposed:
	case StateError:
		if fc.lastError != nil {
			return "", fc.lastError
		}
		return "", errors.New("compose pipeline failed without a specific error")
	default:
		return "", fmt.Errorf("compose pipeline ended in unexpected state: %v", state)
	}

	// Persistence happens only after composition succeeded; a write
	// failure surfaces to the caller since the reply is already computed.
	if err := a.store.Append(ctx, message, fc.finalText); err != nil {
		return "", err
	}
	return fc.finalText, nil
}

// generateReply asks the completion service for the persona-constrained
// free-text answer. It never fails: errors and empty content become a fixed
// apology sentence so the surrounding pipeline still produces a reply.
func (a *Agent) generateReply(ctx context.Context, message string) string {
	resp, err := a.llmClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: personaPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		logger.L.Warn("reply generation failed; using apology", "error", err)
		return apologyReply
	}
	if len(resp.Choices) == 0 {
		logger.L.Warn("reply generation returned no choices; using apology")
		return apologyReply
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return apologyReply
	}
	return text
}

// compose assembles the final reply text.
//
// With recommendations the layout is
//
//	warning + reply + "\n\n" + block + disclaimer
//
// where the block puts the emergency line first for urgent messages and
// last otherwise. Without recommendations it is plain concatenation
// (the disclaimer constant itself starts with a blank line).
func (a *Agent) compose(message, warning, reply string, urgent, includeRecs bool, cls classify.Result) string {
	if !includeRecs {
		return warning + reply + disclaimer
	}

	// Keyword rule takes precedence when it found something more specific
	// than the default; otherwise trust the classifier's referral.
	spec := specialist.Suggest(message)
	if spec == specialist.Default {
		spec = cls.Specialist
	}
	specialistLine := "Suggested specialist: " + spec

	lines := []string{specialistLine, nextStepsLine, emergencyLine}
	if urgent {
		lines = []string{emergencyLine, specialistLine, nextStepsLine}
	}
	return warning + reply + "\n\n" + strings.Join(lines, "\n") + disclaimer
}
