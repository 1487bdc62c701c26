package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/internal/config"
	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/form"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/service/notify"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
)

const sweepSchedule = "@every 5m"

// PriceLists is the part of the price-list service the scheduled jobs drive.
type PriceLists interface {
	ImportSheet(ctx context.Context) (*pricelist.ImportReport, error)
	Apply(ctx context.Context, id string, state *form.State) error
	Submit(ctx context.Context, values models.PriceListForm) (*models.PriceList, error)
	Sessions() *pricelist.SessionStore
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	prices   PriceLists
	notifier notify.Notifier
	cfg      config.SyncConfig
	logger   *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone. A nil
// notifier drops sync notifications.
func NewScheduler(cfg config.SyncConfig, prices PriceLists, notifier notify.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		prices:   prices,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(sweepSchedule, s.sweepSessions); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	if s.cfg.CronSchedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.syncSheet); err != nil {
			return fmt.Errorf("schedule sheet sync %q: %w", s.cfg.CronSchedule, err)
		}
		s.logger.Info("sheet sync scheduled", zap.String("schedule", s.cfg.CronSchedule), zap.Bool("overwrite", s.cfg.Overwrite))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Sync imports the configured sheet, applies it to a fresh form and submits it.
func (s *Scheduler) Sync(ctx context.Context) (*models.PriceList, *pricelist.ImportReport, error) {
	report, err := s.prices.ImportSheet(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !report.CanApply {
		return nil, report, fmt.Errorf("%w: %s", importer.ErrNotApplicable, strings.Join(report.Result.Errors, "; "))
	}

	state := form.New(models.NewPriceListForm())
	if err := s.prices.Apply(ctx, report.ID, state); err != nil {
		return nil, report, err
	}

	values := state.Values()
	values.Overwrite = s.cfg.Overwrite
	created, err := s.prices.Submit(ctx, values)
	if err != nil {
		return nil, report, err
	}
	return created, report, nil
}

func (s *Scheduler) syncSheet() {
	s.logger.Info("syncing price list from sheet")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, report, err := s.Sync(ctx)
	message := syncMessage(created, report, err)
	if err != nil {
		s.logger.Error("sheet sync failed", zap.Error(err))
	} else {
		s.logger.Info("sheet sync submitted", zap.String("price_list_id", created.ID))
	}

	if err := s.notifier.Notify(ctx, message); err != nil {
		s.logger.Error("failed to send sync notification", zap.Error(err))
	}
}

func (s *Scheduler) sweepSessions() {
	if removed := s.prices.Sessions().Sweep(); removed > 0 {
		s.logger.Info("expired import sessions removed", zap.Int("count", removed))
	}
}

func syncMessage(created *models.PriceList, report *pricelist.ImportReport, err error) string {
	var b strings.Builder
	switch {
	case err == nil:
		fmt.Fprintf(&b, "Price list %s submitted for client %s, effective %s.", created.ID, created.ClientID, created.EffectiveDate.Format("2006-01-02"))
	case errors.Is(err, marketplace.ErrConflict):
		b.WriteString("Price list sync skipped: a price list already exists for this client and date. Set SHEET_SYNC_OVERWRITE=true to replace it.")
	default:
		fmt.Fprintf(&b, "Price list sync failed: %v", err)
	}

	if report != nil && len(report.Resolution.Unresolved) > 0 {
		fmt.Fprintf(&b, "\nUnresolved: %s", strings.Join(report.Resolution.Unresolved, ", "))
	}
	if report != nil && report.Result != nil && len(report.Result.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings: %d", len(report.Result.Warnings))
	}
	return b.String()
}
