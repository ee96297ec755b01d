package webserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/fortune"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"go.uber.org/zap"
)

var httpServer *http.Server

// Options はサーバー起動時の設定。環境変数はここで一度だけ受け取る
type Options struct {
	Port           int
	Upstream       fortune.Config
	PromptLanguage string
	StaticDir      string
}

// corsMiddleware adds permissive CORS headers and answers pre-flight requests.
func corsMiddleware(methods string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		handler(w, r)
	}
}

// NewMux wires every route. Kept separate from StartWebServer for tests.
func NewMux(opts Options) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/fortune", NewFortuneHandler(FortuneConfig{
		Upstream:       opts.Upstream,
		PromptLanguage: opts.PromptLanguage,
	}))
	mux.HandleFunc("/api/lucky", corsMiddleware("POST, OPTIONS", handleLucky))
	mux.HandleFunc("/api/lucky/qr", corsMiddleware("GET, OPTIONS", handleLuckyQR))
	mux.HandleFunc("/api/usage", corsMiddleware("GET, DELETE, OPTIONS", handleUsage))
	mux.HandleFunc("/api/version", corsMiddleware("GET, OPTIONS", handleVersion))

	startLogStreamer()
	mux.HandleFunc("/api/logs", corsMiddleware("GET, DELETE, OPTIONS", handleLogs))
	mux.HandleFunc("/api/logs/download", corsMiddleware("GET, OPTIONS", handleLogsDownload))
	mux.HandleFunc("/api/logs/stream", handleLogsStream)

	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			logger.Info("Serving static frontend", zap.String("dir", opts.StaticDir))
			mux.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
		} else {
			logger.Debug("Static frontend directory not found, skipping", zap.String("dir", opts.StaticDir))
		}
	}

	return mux
}

func StartWebServer(opts Options) error {
	if opts.Port == 0 {
		opts.Port = 8788
	}
	addr := fmt.Sprintf(":%d", opts.Port)

	// 上流APIの待ち時間より長く書き込みを許可する
	writeTimeout := opts.Upstream.Timeout + 10*time.Second
	if opts.Upstream.Timeout <= 0 {
		writeTimeout = 70 * time.Second
	}

	httpServer = &http.Server{
		Addr:         addr,
		Handler:      NewMux(opts),
		WriteTimeout: writeTimeout,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine and wait briefly to check for immediate errors
	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("Failed to start web server", zap.Error(err))
			return fmt.Errorf("failed to start web server on port %d: %w", opts.Port, err)
		}
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("Web server listening", zap.String("addr", addr))
	return nil
}

func Shutdown() {
	if httpServer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown web server gracefully", zap.Error(err))
	} else {
		logger.Info("Web server shutdown complete")
	}
	httpServer = nil
}
