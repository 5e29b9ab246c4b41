package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"brickops/internal/adapters/config"
	"brickops/internal/adapters/errors/noop"
	"brickops/internal/adapters/errors/sentry"
	"brickops/internal/agent"
	"brickops/internal/api"
	"brickops/internal/api/health"
	"brickops/internal/databricks"
	"brickops/internal/serving"
	"brickops/internal/tools"
	"brickops/pkg/errors"
	"brickops/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Initialize workspace client
	workspace := initWorkspace(cfg, log)

	// Initialize tool registry
	registry := tools.NewRegistry()
	tools.RegisterAll(registry, tools.Deps{Client: workspace, Log: log})

	// Initialize chat model and agent graph
	model := initModel(cfg, log)
	runner := initAgent(cfg, model, registry, log)

	// Initialize HTTP server
	server := initServer(cfg, runner, workspace, log)

	log.Info("System initialized successfully")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(ctx, cancel, server, errorTracker, log)
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initWorkspace initializes the workspace API client
func initWorkspace(cfg *config.Config, log *logger.Logger) databricks.Client {
	workspace, err := databricks.NewWorkspace(cfg.Databricks, log)
	if err != nil {
		log.Fatalf("Failed to create workspace client: %v", err)
	}

	log.Infof("Workspace client initialized for %s", cfg.Databricks.Host)
	return workspace
}

// initModel initializes the chat model behind the workspace serving API,
// which speaks the OpenAI chat-completions protocol.
func initModel(cfg *config.Config, log *logger.Logger) llms.Model {
	baseURL := strings.TrimSuffix(cfg.Databricks.Host, "/") + "/serving-endpoints"

	model, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(cfg.Databricks.Token),
		openai.WithModel(cfg.Model.Endpoint),
	)
	if err != nil {
		log.Fatalf("Failed to create chat model client: %v", err)
	}

	log.Infof("Chat model initialized (endpoint: %s)", cfg.Model.Endpoint)
	return model
}

// initAgent compiles the reasoning/tool graph
func initAgent(cfg *config.Config, model llms.Model, registry *tools.Registry, log *logger.Logger) serving.Invoker {
	runner, err := agent.NewBuilder(model, registry, cfg.Model, log).Build()
	if err != nil {
		log.Fatalf("Failed to build agent graph: %v", err)
	}

	log.Info("Agent graph compiled")
	return runner
}

// initServer wires the invocation and health handlers into the HTTP server
func initServer(cfg *config.Config, runner serving.Invoker, workspace databricks.Client, log *logger.Logger) *api.Server {
	invocations := serving.NewHandler(runner, log)
	healthHandler := health.New(log, workspace, cfg.App.Name, version)

	return api.NewServer(api.ServerConfig{
		Port:        cfg.Server.Port,
		ServiceName: cfg.App.Name,
		Version:     version,
	}, invocations, healthHandler, log)
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Server shutdown failed: %v", err)
	}

	// Flush error tracker
	if errorTracker != nil {
		if err := errorTracker.Flush(shutdownCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
