package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	LLM      LLMConfig
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

// LLMConfig holds the completion-service configuration.
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds the chat store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml from the working directory (or the file named by
// CONFIG_PATH) and applies environment fallbacks. The config file is
// optional: defaults plus environment variables are enough to run.
//
// The API credential is resolved from the file, then GEMINI_API_KEY, then
// GOOGLE_API_KEY. PORT, when set, overrides the configured port.
func Load() (*Config, error) {
	v := viper.New()

	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("database.path", "mediquery.db")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	return &cfg, nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
