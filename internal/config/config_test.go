package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
llm:
  base_url: https://api.example.com/v1beta/openai/
  api_key: file-key
  model: gemini-1.5-flash
server:
  host: 127.0.0.1
  port: "9090"
database:
  path: /tmp/chats.db
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_File verifies that Load unmarshals all sections from the file
// named by CONFIG_PATH.
func TestLoad_File(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, sampleConfig))
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file-key", cfg.LLM.APIKey)
	require.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "/tmp/chats.db", cfg.Database.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

// TestLoad_EnvFallbacks verifies the credential source order and the PORT
// override when the file carries no key.
func TestLoad_EnvFallbacks(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "server:\n  host: 0.0.0.0\n"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "google-key", cfg.LLM.APIKey)
	require.Equal(t, "8081", cfg.Server.Port)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-key", cfg.LLM.APIKey, "GEMINI_API_KEY wins over GOOGLE_API_KEY")
}

// TestLoad_MissingFile verifies defaults apply when no config file exists.
func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	require.Equal(t, "mediquery.db", cfg.Database.Path)
	require.Empty(t, cfg.LLM.APIKey)
}

// TestLoad_BadPath verifies an explicit CONFIG_PATH that does not exist is
// an error rather than silently ignored.
func TestLoad_BadPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}
