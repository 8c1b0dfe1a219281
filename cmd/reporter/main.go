package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/metawin-stats/internal/aggregate"
	"github.com/rickgao/metawin-stats/internal/api"
	"github.com/rickgao/metawin-stats/internal/config"
	"github.com/rickgao/metawin-stats/internal/ingest"
	"github.com/rickgao/metawin-stats/internal/model"
	"github.com/rickgao/metawin-stats/internal/rates"
	"github.com/rickgao/metawin-stats/internal/render"
	"github.com/rickgao/metawin-stats/internal/report"
	"github.com/rickgao/metawin-stats/internal/store"
	"github.com/rickgao/metawin-stats/internal/version"
)

func main() {
	// Secrets (TOKEN_BEARER) live in the environment; a .env file is
	// optional.
	_ = godotenv.Load()

	configPath := flag.String("config", "configs/reporter.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	logger.Info("starting reporter",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Open the record store
	st, err := store.New(cfg.Store.Dir, logger)
	if err != nil {
		logger.Error("failed to open record store", "error", err)
		os.Exit(1)
	}

	// Load rate tables
	monthly, err := rates.LoadMonthlyTable(cfg.Rates.ForexPath)
	if err != nil {
		logger.Error("failed to load forex table", "error", err, "path", cfg.Rates.ForexPath)
		os.Exit(1)
	}
	rateProvider := rates.New(monthly, logger)

	logger.Info("fetching daily rate series")
	if err := rateProvider.FetchDailySeries(ctx, nil, cfg.Rates.DailyURL); err != nil {
		// Daily lookups degrade to unpriceable; the run continues.
		logger.Warn("daily rate series unavailable", "error", err)
	}

	// Create API client
	client := api.NewClient(
		cfg.API.BearerToken,
		cfg.API.Origin,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithPageSize(cfg.API.PageSize),
		api.WithRetryPolicy(api.RetryPolicy{
			MaxAttempts: cfg.API.MaxRetries,
			Backoff:     cfg.API.RetryDelay,
		}),
	)

	ingestor := ingest.New(client, st, logger, ingest.WithPageDelay(cfg.API.PageDelay))

	// Ingest the watermark sources; a failed source never stops the rest.
	secondaryKeys := make([]string, 0, len(cfg.Sources.Watermark))
	for _, srcCfg := range cfg.Sources.Watermark {
		secondaryKeys = append(secondaryKeys, srcCfg.Key)

		src := ingest.Source{Key: srcCfg.Key, URL: srcCfg.URL, IDKind: idKind(srcCfg.IDFrom)}
		if err := ingestor.Ingest(ctx, src); err != nil {
			if ctx.Err() != nil {
				logger.Info("run cancelled")
				os.Exit(1)
			}
			logger.Error("source ingestion failed", "source", src.Key, "error", err)
		}
	}

	// Download the day-bucketed wagering history
	logger.Info("downloading history")
	historySrc := ingest.Source{Key: cfg.Sources.History.Key, URL: cfg.Sources.History.URL}
	if err := ingestor.DownloadHistory(ctx, historySrc); err != nil {
		if ctx.Err() != nil {
			logger.Info("run cancelled")
			os.Exit(1)
		}
		logger.Error("history download failed", "error", err)
	}

	// Read everything back and aggregate
	logger.Info("reading data files")
	blobs, err := st.ReadAll(secondaryKeys)
	if err != nil {
		logger.Error("failed to read record store", "error", err)
		os.Exit(1)
	}

	untracked, err := store.LoadUntrackedGames(cfg.Store.UntrackedGames)
	if err != nil {
		logger.Error("failed to load untracked games", "error", err)
		os.Exit(1)
	}
	if untracked != nil {
		blobs.Primary = append([]model.Page{*untracked}, blobs.Primary...)
	}

	if len(blobs.Primary)+len(blobs.Secondary) == 0 {
		logger.Info("no local data available")
		return
	}

	overrides := store.LoadUntrackedRewards(cfg.Store.UntrackedRewards)

	aggregator := aggregate.New(rateProvider, logger, aggregate.WithRewardOverrides(overrides))
	result, err := aggregator.Aggregate(blobs.Primary, blobs.Secondary)
	if err != nil {
		logger.Error("aggregation failed", "error", err)
		os.Exit(1)
	}

	prepared := report.Prepare(result)

	// Render; a broken template must not discard the ingested data
	renderer := render.New(cfg.Report.OutputDir, logger)
	if _, err := renderer.Render(prepared, runID, time.Now()); err != nil {
		logger.Error("report rendering failed", "error", err)
	}

	logger.Info("run complete")
}

func idKind(idFrom string) ingest.IDKind {
	if idFrom == "create_time" {
		return ingest.IDByCreateTime
	}
	return ingest.IDByNumber
}
