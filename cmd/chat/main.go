package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brickops/internal/adapters/config"
	"brickops/internal/chat"
	"brickops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting chat front-end in %s mode", cfg.App.Env)

	app, err := chat.NewApp(cfg.Chat, log)
	if err != nil {
		log.Fatalf("Failed to create chat app: %v", err)
	}

	mux := http.NewServeMux()
	app.Routes(mux)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Chat.Port),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// Chat turns stream agent progress for as long as a turn runs.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Chat front-end listening on %s (agent: %s)", server.Addr, cfg.Chat.AgentURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Chat server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Chat server shutdown failed: %v", err)
	}

	log.Info("Shutdown complete")
}
