// docchat - conversational document-query server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/0xcro3dile/docchat-go/internal/adapters/convstore"
	"github.com/0xcro3dile/docchat-go/internal/adapters/docstore"
	"github.com/0xcro3dile/docchat-go/internal/adapters/extractor"
	"github.com/0xcro3dile/docchat-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/docchat-go/internal/adapters/llm"
	"github.com/0xcro3dile/docchat-go/internal/adapters/resolver"
	"github.com/0xcro3dile/docchat-go/internal/config"
	"github.com/0xcro3dile/docchat-go/internal/domain/ports"
	"github.com/0xcro3dile/docchat-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/docchat-go/internal/infrastructure/http"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "model", cfg.OllamaModel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Document content: in-memory text map seeded from the uploads dir.
	docs := docstore.NewMemoryStore()
	if err := docs.LoadFromDir(cfg.UploadsDir); err != nil {
		slog.Error("Failed to load uploaded documents", "error", err)
		os.Exit(1)
	}

	// Keep the text map in sync with the uploads dir.
	watcher, err := filewatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		slog.Error("Failed to create uploads watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Stop()

	if events, err := watcher.Watch(ctx, cfg.UploadsDir); err != nil {
		slog.Warn("Uploads watcher disabled", "error", err)
	} else {
		go docs.ApplyEvents(ctx, events)
		slog.Info("Uploads watcher started", "dir", cfg.UploadsDir)
	}

	pdf := extractor.NewServicePDFExtractor(cfg.PDFServiceURL)
	docResolver := resolver.New(docs, pdf, cfg.UploadsDir)
	conversations := convstore.NewMemoryStore()
	backend := llm.NewOllamaLLMAdapter(cfg.OllamaURL, cfg.OllamaModel)

	askUC := usecases.NewAskUseCase(docResolver, conversations, backend, cfg.ConversationTTL)
	streamUC := usecases.NewStreamUseCase(docResolver, backend)

	startSweeper(ctx, conversations, cfg.ConversationTTL, cfg.SweepInterval)

	server := httpserver.NewServer(askUC, streamUC, docs, cfg.UploadsDir, ":"+cfg.Port)
	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}

// startSweeper purges expired conversations on a timer. The blocking ask
// path also sweeps opportunistically, so expiry holds even if a tick is
// missed.
func startSweeper(ctx context.Context, conversations ports.ConversationStore, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("Conversation sweeper started", "interval", interval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				if removed := conversations.SweepExpired(time.Now(), ttl); removed > 0 {
					slog.Info("Swept expired conversations", "count", removed)
				}
			case <-ctx.Done():
				slog.Info("Conversation sweeper shutting down")
				return
			}
		}
	}()
}
