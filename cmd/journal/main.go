package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradejournal/internal/audit"
	"tradejournal/internal/client/quotes"
	"tradejournal/internal/config"
	cronrunner "tradejournal/internal/cron"
	"tradejournal/internal/db"
	"tradejournal/internal/handler"
	"tradejournal/internal/logger"
	gormrepository "tradejournal/internal/repository/gorm"
	"tradejournal/internal/service"
	"tradejournal/internal/trace"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log, cfg.App.Name)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := trace.Init(cfg.Trace); err != nil {
		logger.Warn("trace init failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = trace.Shutdown(ctx)
	}()

	loc, err := cfg.Journal.Location()
	if err != nil {
		logger.Fatal("invalid journal timezone", zap.String("timezone", cfg.Journal.Timezone), zap.Error(err))
	}

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer func() { _ = db.Close(dbConn) }()

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	settingsSvc := &service.SystemSettingsService{Repo: store}
	if err := settingsSvc.EnsureDefaultSwitches(context.Background()); err != nil {
		logger.Warn("init default feature switches failed", zap.Error(err))
	}

	recorder := &audit.Recorder{
		Client: &audit.Client{
			WebhookURL: cfg.Audit.WebhookURL,
			Token:      os.Getenv(cfg.Audit.TokenEnv),
			Agent:      cfg.Audit.Agent,
			Timeout:    cfg.Audit.Timeout,
		},
		Logger: logger,
	}
	defer recorder.Wait()

	quoteClient := quotes.NewClient(
		&http.Client{Timeout: cfg.Quotes.Timeout},
		cfg.Quotes.BaseURL,
		quotes.WithAPIKey(os.Getenv(cfg.Quotes.APIKeyEnv)),
		quotes.WithRateLimit(cfg.Quotes.RequestsPerSec, cfg.Quotes.Burst),
		quotes.WithLogger(logger),
	)
	var quoteSource quotes.Source
	if strings.TrimSpace(cfg.Quotes.BaseURL) != "" {
		quoteSource = quoteClient
	} else {
		logger.Info("quotes base url not set; serving static levels")
	}

	tradeSvc := &service.TradeService{
		Repo:   store,
		Logger: logger,
		Flags:  settingsSvc,
		OnEvent: func(_ context.Context, ev service.TradeEvent) {
			recorder.Go(ev.Action, "info", map[string]any{
				"id":      ev.Trade.ID,
				"symbol":  ev.Trade.Symbol,
				"status":  ev.Trade.Status,
				"outcome": ev.Trade.Outcome,
			})
		},
	}
	ideaSvc := &service.IdeaService{Repo: store, Quotes: quoteSource, Flags: settingsSvc, Logger: logger}
	summarySvc := &service.SummaryService{Repo: store, Location: loc}
	syncSvc := &service.RecommendationSyncService{
		Repo:         store,
		Flags:        settingsSvc,
		Logger:       logger,
		SeedPath:     cfg.Recommendations.SeedPath,
		PruneMissing: cfg.Recommendations.PruneMissing,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := handler.NewRouter(
		handler.RouterOptions{
			Logger:    logger,
			Audit:     recorder,
			StaticDir: cfg.Server.StaticDir,
			Swagger:   true,
		},
		&handler.HealthHandler{Ping: func(ctx context.Context) error { return db.Ping(ctx, dbConn) }},
		&handler.TradesHandler{Ideas: ideaSvc, Trades: tradeSvc, Sync: syncSvc, Logger: logger},
		&handler.UserTradesHandler{Trades: tradeSvc, Logger: logger},
		&handler.SummaryHandler{Summary: summarySvc, Logger: logger},
		&handler.SettingsHandler{Settings: settingsSvc},
	)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Recommendations.SyncOnStart {
		res, err := syncSvc.Sync(ctx)
		if err != nil {
			logger.Warn("initial recommendation sync failed (continuing)", zap.Error(err))
		} else {
			logger.Info("initial recommendation sync complete",
				zap.Int("loaded", res.Loaded),
				zap.Int64("removed", res.Removed),
				zap.Int("clamped", res.Clamped),
			)
		}
	}

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		if _, err := cronRunner.Add("recommendation_sync", cfg.Cron.RecommendationSync, syncSvc.RunScheduled); err != nil {
			logger.Warn("cron register recommendation sync failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
