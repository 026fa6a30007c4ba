package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-placement-automation/internal/browser"
	"go-placement-automation/internal/config"
	"go-placement-automation/internal/extract"
	"go-placement-automation/internal/notify"
	"go-placement-automation/internal/portal"
	"go-placement-automation/internal/sink"
	"go-placement-automation/internal/worker"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	//load config
	cfg := config.Load()
	logger.Info("config loaded", "years", cfg.Years, "mode", cfg.Mode, "shape", cfg.Shape)

	//init optional telegram notifier
	notifier, err := notify.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram notifier: %v", err)
	}

	//setup context with a run-wide timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	logger.Info("🚀 starting placement portal extraction")

	//wire persistence sinks
	dest, cleanup := buildSink(ctx, cfg, logger)
	defer cleanup()

	shape, err := extract.ShapeFor(cfg.Shape)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := dest.EnsureWorksheet(ctx, cfg.JobWorksheet, shape.Header()); err != nil {
		log.Fatalf("❌ Failed to prepare job worksheet: %v", err)
	}

	//init playwright manager
	pwManager, err := browser.NewPlaywright(cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	defer pwManager.Close()

	//one authenticated session for the whole run
	mainCtx, err := pwManager.NewContext(nil)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}
	defer mainCtx.Close()

	page, err := mainCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create page: %v", err)
	}

	if err := browser.Login(page, cfg.PortalURL, cfg.Username, cfg.Password); err != nil {
		notifier.RunError(err)
		log.Fatalf("❌ Login failed: %v", err)
	}
	logger.Info("✅ login successful")

	screenshots := browser.NewScreenshotDebugger(logger)
	nav := portal.NewPageNavigator(page, screenshots)

	controller := extract.NewController(extract.Options{
		BaseURL:      cfg.PortalURL,
		JobWorksheet: cfg.JobWorksheet,
		PPOWorksheet: cfg.PPOWorksheet,
		SettleDelay:  time.Duration(cfg.SettleDelayMs) * time.Millisecond,
	}, shape, dest, logger)

	if cfg.Mode == "pooled" {
		//replicate the session into independent worker contexts
		cookies, err := browser.CaptureSession(mainCtx)
		if err != nil {
			log.Fatalf("❌ Failed to capture session cookies: %v", err)
		}
		factory := workerFactory(pwManager, screenshots, cookies)
		pool := worker.NewPool(worker.PoolSize(cfg.WorkerFraction), cfg.PortalURL, factory, logger)
		controller.SetDispatcher(pool)
		logger.Info("pooled mode enabled", "workers", worker.PoolSize(cfg.WorkerFraction))
	}

	start := time.Now()
	var runErr error
	for _, year := range cfg.Years {
		logger.Info("processing year", "year", year)
		if err := controller.RunYear(ctx, nav, year); err != nil {
			// a failed year keeps everything flushed so far; move on
			logger.Error("year aborted", "year", year, "error", err)
			runErr = err
		}
	}

	//PPOs flush once, deduplicated, regardless of how the years ended
	if err := controller.FlushPPOs(ctx); err != nil {
		logger.Error("PPO flush failed", "error", err)
		runErr = err
	}

	elapsed := time.Since(start)
	logger.Info("🏁 extraction finished",
		"job_rows", controller.RowsFlushed(),
		"ppo_companies", controller.PPOCount(),
		"elapsed", elapsed.Round(time.Second))

	if runErr != nil {
		notifier.RunError(runErr)
		os.Exit(1)
	}
	if err := notifier.RunSummary(cfg.Years, controller.RowsFlushed(), controller.PPOCount(), elapsed); err != nil {
		logger.Warn("failed to send run summary", "error", err)
	}
}

// buildSink assembles the persistence chain: Google Sheets as primary (plus a
// Postgres archive when configured), guarded by retries and a local JSON-file
// fallback. Without a sheet key the file sink runs standalone, which is handy
// for dry runs.
func buildSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sink.Sink, func()) {
	fileSink := sink.NewFileSink(cfg.FallbackDir, logger)
	cleanup := func() {}

	if cfg.SheetKey == "" {
		logger.Warn("GOOGLE_SHEET_KEY not set, writing batches to local files only")
		return fileSink, cleanup
	}

	sheetsSink, err := sink.NewSheetsSink(ctx, cfg.CredentialsFile, cfg.SheetKey, logger)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Google Sheets: %v", err)
	}

	var primary sink.Sink = sheetsSink
	if cfg.DatabaseURL != "" {
		pgSink, err := sink.NewPostgresSink(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatalf("❌ Failed to connect to archive database: %v", err)
		}
		primary = sink.Multi{sheetsSink, pgSink}
		cleanup = pgSink.Close
	}

	return sink.NewGuarded(primary, fileSink, logger), cleanup
}

// workerFactory opens a fresh browser context seeded with the captured
// session for each work item.
func workerFactory(pm *browser.PlaywrightManager, screenshots *browser.ScreenshotDebugger, cookies []playwright.OptionalCookie) worker.NavigatorFactory {
	return func() (portal.Navigator, func(), error) {
		browserCtx, err := pm.NewContext(cookies)
		if err != nil {
			return nil, nil, err
		}
		page, err := browserCtx.NewPage()
		if err != nil {
			browserCtx.Close()
			return nil, nil, err
		}
		nav := portal.NewPageNavigator(page, screenshots)
		teardown := func() { browserCtx.Close() }
		return nav, teardown, nil
	}
}
