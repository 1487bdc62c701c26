package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/internal/config"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/repository/mongodb"
	"github.com/mamadbah2/livestock-pricing/internal/repository/sheets"
	"github.com/mamadbah2/livestock-pricing/internal/scheduler"
	"github.com/mamadbah2/livestock-pricing/internal/server/handlers"
	"github.com/mamadbah2/livestock-pricing/internal/server/router"
	"github.com/mamadbah2/livestock-pricing/internal/service/notify"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
	whatsappclient "github.com/mamadbah2/livestock-pricing/pkg/clients/whatsapp"
	"github.com/mamadbah2/livestock-pricing/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var aliases *importer.Aliases
	if cfg.Import.AliasesPath != "" {
		aliases, err = importer.LoadAliases(cfg.Import.AliasesPath)
		if err != nil {
			baseLogger.Fatal("failed to load grade aliases", zap.Error(err))
		}
		baseLogger.Info("grade aliases loaded", zap.String("path", cfg.Import.AliasesPath))
	}

	var history mongodb.Repository
	if cfg.MongoDB.URI != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoRepo, err := mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		history = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI not set, import history disabled")
	}

	marketClient := marketplace.NewClient(cfg.Marketplace)
	parser := importer.NewParser(importer.NewMapper(aliases), logger.Named(baseLogger, "importer"))
	resolver := reconcile.NewResolver(marketClient, cfg.Import.LookupConcurrency, logger.Named(baseLogger, "svc.reconcile"))
	sessions := pricelist.NewSessionStore(cfg.Import.SessionTTL)
	priceSvc := pricelist.NewService(parser, resolver, marketClient, history, sessions, logger.Named(baseLogger, "svc.pricelist"))

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		priceSvc.WithSheetSource(sheetsRepo, cfg.Sheets.Range)
	}

	var notifier notify.Notifier
	if cfg.WhatsApp.Enabled() {
		notifier = notify.NewWhatsAppNotifier(whatsappclient.NewClient(cfg.WhatsApp), cfg.WhatsApp.NotifyTo, logger.Named(baseLogger, "svc.notify"))
	}

	sched, err := scheduler.NewScheduler(cfg.Sync, priceSvc, notifier, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	priceHandler := handlers.NewPriceListHandler(priceSvc, logger.Named(baseLogger, "handlers.pricelist"))
	engine := router.New(priceHandler, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
