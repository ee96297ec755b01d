package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ichi0g0y/lucky-by-birthday/internal/env"
	"github.com/ichi0g0y/lucky-by-birthday/internal/fortune"
	"github.com/ichi0g0y/lucky-by-birthday/internal/localdb"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/version"
	"github.com/ichi0g0y/lucky-by-birthday/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	logger.Info("Starting lucky-by-birthday server", zap.String("version", version.String()))

	env.LoadEnv()
	if env.Value.DebugMode {
		logger.Init(true)
		logger.Info("Debug mode enabled")
	}

	// 使用量の記録のみ。DB がなくてもサーバーは動く
	if _, err := localdb.SetupDB(env.Value.DBPath); err != nil {
		logger.Warn("Failed to setup usage database, usage accounting disabled",
			zap.String("path", env.Value.DBPath), zap.Error(err))
	}

	if env.Value.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, /api/fortune will answer with a configuration error")
	}

	port := env.DefaultServerPort
	if env.Value.ServerPort != 0 {
		port = env.Value.ServerPort
	}

	opts := webserver.Options{
		Port: port,
		Upstream: fortune.Config{
			APIKey:        env.Value.OpenAIAPIKey,
			Endpoint:      env.Value.OpenAIEndpoint,
			PromptID:      env.Value.PromptID,
			PromptVersion: env.Value.PromptVersion,
			Timeout:       env.Value.OpenAITimeout,
		},
		PromptLanguage: env.Value.PromptLanguage,
		StaticDir:      env.Value.StaticDir,
	}

	if err := webserver.StartWebServer(opts); err != nil {
		logger.Fatal("Failed to start web server", zap.Error(err))
	}

	logger.Info("Server started",
		zap.Int("port", port),
		zap.String("fortune", fmt.Sprintf("http://localhost:%d/api/fortune", port)))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	webserver.Shutdown()
	if err := localdb.Close(); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
