package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docusense/docusense/internal/api"
	"github.com/docusense/docusense/internal/config"
	"github.com/docusense/docusense/internal/outline"
	"github.com/docusense/docusense/internal/pipeline"
	"github.com/docusense/docusense/internal/registry"
	"github.com/docusense/docusense/internal/relevance"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	reg, err := registry.Open(cfg.UploadDir)
	if err != nil {
		log.Error("open document registry", "error", err)
		os.Exit(1)
	}
	log.Info("document registry ready", "dir", cfg.UploadDir, "documents", len(reg.List()))

	clsCfg := outline.DefaultConfig()
	clsCfg.MinHeadingScore = cfg.HeadingScoreThreshold
	cls := outline.NewClassifierWithConfig(clsCfg)

	weights := relevance.Weights{
		Lexical: cfg.WeightLexical,
		Heading: cfg.WeightHeading,
		Domain:  cfg.WeightDomain,
	}
	if err := weights.Validate(); err != nil {
		log.Error("invalid relevance weights", "error", err)
		os.Exit(1)
	}
	ranker := relevance.NewRanker(weights, cfg.QualitySignals)

	engine, err := pipeline.NewEngine(reg, ranker, cls, log, pipeline.Options{
		Workers:     cfg.WorkerCount,
		CacheSize:   cfg.CacheSize,
		TopK:        cfg.TopKSections,
		MaxSnippets: cfg.MaxSnippets,
	})
	if err != nil {
		log.Error("create analysis engine", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(engine, reg, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docusense", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
