package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/livestock-pricing/internal/config"
	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/form"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/service/pricelist"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
)

type fakePrices struct {
	report    *pricelist.ImportReport
	importErr error
	submitErr error
	applied   []string
	submitted []models.PriceListForm
	sessions  *pricelist.SessionStore
}

func (f *fakePrices) ImportSheet(context.Context) (*pricelist.ImportReport, error) {
	return f.report, f.importErr
}

func (f *fakePrices) Apply(_ context.Context, id string, state *form.State) error {
	f.applied = append(f.applied, id)
	return state.ApplyImport(f.report.Result, f.report.Resolution)
}

func (f *fakePrices) Submit(_ context.Context, values models.PriceListForm) (*models.PriceList, error) {
	f.submitted = append(f.submitted, values)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.PriceList{ID: "pl-1", ClientID: values.ClientID, EffectiveDate: values.EffectiveDate}, nil
}

func (f *fakePrices) Sessions() *pricelist.SessionStore { return f.sessions }

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func applicableReport() *pricelist.ImportReport {
	result := importer.ParseRows([][]string{
		{"Client", "Acme Butchery"},
		{"Effective Date", "2025-03-01"},
		{}, {}, {}, {}, {},
		{"Category", "Grade", "Code", "Collected", "Delivered"},
		{"Beef", "Super", "B1", "", "10.50"},
	})
	return &pricelist.ImportReport{
		ID:       "imp-1",
		Result:   result,
		CanApply: result.CanApply(),
		Resolution: reconcile.Resolution{
			Categories: map[models.Category]string{models.CategoryBeef: "fp-beef"},
			Services:   map[string]string{},
			ClientID:   "u-1",
			ClientName: "Acme Butchery",
			Unresolved: []string{},
		},
	}
}

func newTestScheduler(t *testing.T, prices PriceLists, overwrite bool) (*Scheduler, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	s, err := NewScheduler(config.SyncConfig{CronSchedule: "0 6 * * 1", Timezone: "UTC", Overwrite: overwrite}, prices, notifier, nil)
	require.NoError(t, err)
	return s, notifier
}

func TestSyncSubmitsImportedSheet(t *testing.T) {
	prices := &fakePrices{report: applicableReport()}
	s, notifier := newTestScheduler(t, prices, true)

	s.syncSheet()

	require.Len(t, prices.submitted, 1)
	submitted := prices.submitted[0]
	assert.True(t, submitted.Overwrite)
	assert.Equal(t, "u-1", submitted.ClientID)
	assert.Equal(t, 10.5, submitted.Categories[models.CategoryBeef].Grades["super"].Pricing.Delivered)
	assert.Equal(t, []string{"imp-1"}, prices.applied)

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "Price list pl-1 submitted for client u-1, effective 2025-03-01.", notifier.messages[0])
}

func TestSyncReportsConflict(t *testing.T) {
	prices := &fakePrices{
		report:    applicableReport(),
		submitErr: &marketplace.APIError{Kind: marketplace.KindConflict, Status: 409},
	}
	s, notifier := newTestScheduler(t, prices, false)

	s.syncSheet()

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "SHEET_SYNC_OVERWRITE=true")
}

func TestSyncStopsOnParseErrors(t *testing.T) {
	result := importer.ParseRows(nil)
	prices := &fakePrices{report: &pricelist.ImportReport{ID: "imp-2", Result: result, CanApply: false}}
	s, notifier := newTestScheduler(t, prices, false)

	_, _, err := s.Sync(context.Background())
	require.ErrorIs(t, err, importer.ErrNotApplicable)
	assert.Contains(t, err.Error(), importer.ErrNoCategories.Error())
	assert.Empty(t, prices.applied)
	assert.Empty(t, prices.submitted)

	s.syncSheet()
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Price list sync failed")
}

func TestSyncImportFailure(t *testing.T) {
	prices := &fakePrices{importErr: pricelist.ErrSheetNotConfigured}
	s, _ := newTestScheduler(t, prices, false)

	_, report, err := s.Sync(context.Background())
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, pricelist.ErrSheetNotConfigured))
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.SyncConfig{Timezone: "Mars/Olympus"}, &fakePrices{}, nil, nil)
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.SyncConfig{CronSchedule: "not a schedule", Timezone: "UTC"}, &fakePrices{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestSweepSessions(t *testing.T) {
	store := pricelist.NewSessionStore(time.Nanosecond)
	store.Put(pricelist.Session{ID: "old", CreatedAt: time.Now().Add(-time.Hour)})
	s, _ := newTestScheduler(t, &fakePrices{sessions: store}, false)

	s.sweepSessions()
	assert.Zero(t, store.Len())
}
