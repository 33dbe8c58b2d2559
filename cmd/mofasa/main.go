package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MikeSquared-Agency/mofasa/internal/anthropic"
	"github.com/MikeSquared-Agency/mofasa/internal/cli"
	"github.com/MikeSquared-Agency/mofasa/internal/config"
	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/hermes"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
	"github.com/MikeSquared-Agency/mofasa/internal/questions"
	"github.com/MikeSquared-Agency/mofasa/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres when DATABASE_URL is set, otherwise the local SQLite file.
	var backend store.Backend
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		backend = pg
		logger.Info("database connected", "backend", "postgres")
	} else {
		lite, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		backend = lite
		logger.Info("database opened", "backend", "sqlite", "path", cfg.DBPath)
	}

	st, err := store.New(ctx, backend, cfg.Debounce, logger)
	if err != nil {
		backend.Close()
		return err
	}
	defer st.Close()

	catalog, err := loadCatalog(cfg.QuestionsFile)
	if err != nil {
		return err
	}

	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY is not set, extraction and summaries will fail")
	}
	llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	logger.Debug("llm configured", "model", llm.Model(), "batch_size", cfg.BatchSize)
	ext := extractor.New(llm, cfg.BatchSize, cfg.MaxTokens, logger)
	sum := extractor.NewSummarizer(llm, cfg.MaxTokens, logger)

	app := &cli.App{
		Config:  cfg,
		Store:   st,
		Catalog: catalog,
		Logger:  logger,
	}

	var bus processor.Publisher
	if cfg.NatsURL != "" {
		hc, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			return err
		}
		defer hc.Close()
		logger.Info("NATS connected", "url", cfg.NatsURL)
		app.Bus = hc
		bus = hc
	}
	app.Processor = processor.New(st, catalog, ext, sum, bus, logger)

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func loadCatalog(path string) (*questions.Catalog, error) {
	if path == "" {
		return questions.Default()
	}
	return questions.Load(path)
}

// setupLogging writes JSON logs to stderr so command output on stdout stays clean.
func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
