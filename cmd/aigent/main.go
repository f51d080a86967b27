package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/HananB27/AiGENt/internal/api"
	"github.com/HananB27/AiGENt/internal/completion"
	"github.com/HananB27/AiGENt/internal/config"
	"github.com/HananB27/AiGENt/internal/deploy"
	"github.com/HananB27/AiGENt/internal/orchestrator"
	"github.com/HananB27/AiGENt/internal/pipeline"
	"github.com/HananB27/AiGENt/internal/provider"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting AiGENt...")

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	var cfg *config.Config
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
		}
		cfg = loaded
		logger.Info("Config loaded", zap.String("path", cfgPath))
	} else {
		cfg = config.Default()
		logger.Info("No CONFIG_PATH set, using environment defaults")
	}

	// Completion backend + the single process-wide rate gate
	backend := provider.NewAnthropicBackend(provider.BackendConfig{
		Endpoint:  cfg.Completion.Endpoint,
		APIKey:    cfg.Completion.APIKey,
		Model:     cfg.Completion.Model,
		MaxTokens: cfg.Completion.MaxTokens,
		Timeout:   cfg.Completion.Timeout(),
	}, logger)
	if cfg.Completion.APIKey == "" {
		logger.Warn("No completion API key configured, orchestrator will run in demo mode")
	}
	gate := completion.NewDefaultGate()
	client := completion.NewClient(backend, gate, logger)
	executor := pipeline.NewExecutor(client, logger)

	// Deployment backend (optional)
	var deployer orchestrator.Deployer
	if cfg.Deployment.Token != "" {
		deployer = deploy.NewClient(deploy.ClientConfig{
			Endpoint: cfg.Deployment.Endpoint,
			Token:    cfg.Deployment.Token,
			TeamID:   cfg.Deployment.TeamID,
		}, logger)
		logger.Info("Deployment backend configured")
	} else {
		logger.Info("No deployment token configured, deployment disabled")
	}

	history := orchestrator.NewHistory()
	orch := orchestrator.New(backend, executor, deployer, history, logger)

	// Build HTTP handler
	handler := api.NewHandler(orch, history, client, deployer, logger)

	// Start server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("AiGENt listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down AiGENt...")
	srv.Shutdown(context.Background())
}
