package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mediquery/mediquery-go/internal/agent"
	"github.com/mediquery/mediquery-go/internal/config"
	"github.com/mediquery/mediquery-go/internal/history"
	"github.com/mediquery/mediquery-go/internal/llm"
	"github.com/mediquery/mediquery-go/internal/logger"
	"github.com/mediquery/mediquery-go/internal/server"
)

func main() {
	// .env is optional; variables may come from the OS environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.Log.Level)

	// A missing credential is not fatal for the process: /history keeps
	// working, /chat fails per request until a key is provided.
	var llmClient llm.Client
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logger.L.Warn("completion client unavailable; /chat will fail", "error", err)
	} else {
		llmClient = client
	}

	store, err := history.Open(cfg.Database.Path)
	if err != nil {
		logger.L.Error("failed to open chat store", "error", err, "path", cfg.Database.Path)
		os.Exit(1)
	}
	defer store.Close()

	chatAgent := agent.New(llmClient, cfg.LLM.Model, store)
	srv := server.New(chatAgent, store)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
