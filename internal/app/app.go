package app

import (
	"context"
	"database/sql"
	"log/slog"

	"NetShield/internal/config"
	"NetShield/internal/infrastructure/batch"
	"NetShield/internal/infrastructure/llm"
	"NetShield/internal/infrastructure/news"
	"NetShield/internal/infrastructure/scheduler"
	"NetShield/internal/infrastructure/storage"
	"NetShield/internal/infrastructure/telegram"
	"NetShield/internal/infrastructure/translate"
	"NetShield/internal/logging"
	"NetShield/internal/ports"
	"NetShield/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	runner *usecase.BatchRunner
	db     *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var llmClient *llm.Client
	if cfg.LLM.APIKey != "" {
		llmClient = llm.NewClient(cfg.LLM)
	} else {
		baseLogger.Warn("no LLM api key configured, every video will degrade to Yellow")
	}

	var (
		extractor  ports.ClaimExtractor
		summarizer ports.Summarizer
		judge      ports.Judge
		completer  translate.Completer
	)
	if llmClient != nil {
		extractor = llmClient
		summarizer = llmClient
		judge = llmClient
		completer = llmClient
	}

	registry := news.NewRegistry()
	registry.Register(news.NewGoogleNewsScanner(nil, googleSearchURL(cfg.News.Sites), cfg.News.FetchBody))
	source := news.NewSource(registry, cfg.News.Sites, baseLogger.With("component", "news"))

	var db *sql.DB
	var repository ports.VerdictRepository
	if cfg.Storage.Path != "" {
		opened, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			baseLogger.Warn("verdict store unavailable, continuing without audit history", "error", err)
		} else {
			db = opened
			repository = storage.NewSQLiteRepository(db)
		}
	}

	validator := usecase.NewValidator(judge, baseLogger.With("component", "validator"))
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Extractor:   extractor,
		Summarizer:  summarizer,
		News:        source,
		Normalizer:  translate.NewNormalizer(completer),
		Validator:   validator,
		Repository:  repository,
		Logger:      baseLogger.With("component", "pipeline"),
		NewsLimit:   cfg.News.Limit,
		CallTimeout: cfg.Pipeline.CallTimeout(),
	})

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	runner := usecase.NewBatchRunner(
		batch.NewCSVSource(cfg.Batch.InputPath),
		pipeline,
		batch.NewCSVReportWriter(cfg.Batch.ReportPath),
		notifier,
		baseLogger.With("component", "runner"),
	)

	return &Application{cfg: cfg, runner: runner, db: db}
}

// Run executes a single batch, or recurring batches when an interval is
// configured.
func (a *Application) Run(ctx context.Context) error {
	if a.runner == nil {
		return nil
	}

	if interval := a.cfg.Scheduler.Interval(); interval > 0 {
		driver := scheduler.NewIntervalScheduler(interval)
		recurring := usecase.NewScheduler(driver, a.runner)
		if err := recurring.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return recurring.Stop(context.Background())
	}

	_, err := a.runner.RunOnce(ctx)
	return err
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// googleSearchURL picks an explicit search URL override for the
// google-news scanner when a site provides one.
func googleSearchURL(sites []config.NewsSiteConfig) string {
	for _, site := range sites {
		if site.Scanner == "google-news" && site.SearchURL != "" {
			return site.SearchURL
		}
	}
	return ""
}
