// Package llm constructs the completion-service client. The service is
// Google's Gemini API spoken through its OpenAI-compatible endpoint, so the
// rest of the codebase only ever sees the openai client types.
package llm

import (
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/mediquery/mediquery-go/internal/config"
)

// DefaultBaseURL is Google's OpenAI-compatible Gemini endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// ErrMissingAPIKey means no credential was found in the config file,
// GEMINI_API_KEY, or GOOGLE_API_KEY.
var ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY (or GOOGLE_API_KEY)")

// NewClient creates a completion client. It fails when no API key is
// configured; a service without a credential cannot serve /chat at all.
func NewClient(cfg config.LLMConfig) (*openai.Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	if clientConfig.BaseURL == "" {
		clientConfig.BaseURL = DefaultBaseURL
	}

	return openai.NewClientWithConfig(clientConfig), nil
}
