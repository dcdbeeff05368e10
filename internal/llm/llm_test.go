package llm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediquery/mediquery-go/internal/config"
)

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(config.LLMConfig{})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(config.LLMConfig{APIKey: "   "})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_WithKey(t *testing.T) {
	client, err := NewClient(config.LLMConfig{APIKey: "dummy"})
	require.NoError(t, err)
	require.NotNil(t, client)
}
