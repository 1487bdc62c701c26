package pricelist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-pricing/internal/domain/models"
	"github.com/mamadbah2/livestock-pricing/internal/form"
	"github.com/mamadbah2/livestock-pricing/internal/importer"
	"github.com/mamadbah2/livestock-pricing/internal/repository/mongodb"
	"github.com/mamadbah2/livestock-pricing/internal/repository/sheets"
	"github.com/mamadbah2/livestock-pricing/internal/service/payload"
	"github.com/mamadbah2/livestock-pricing/internal/service/reconcile"
	"github.com/mamadbah2/livestock-pricing/pkg/clients/marketplace"
)

// ErrSessionNotFound is returned when an import id is unknown, expired or already applied.
var ErrSessionNotFound = errors.New("import session not found")

// ErrSheetNotConfigured is returned by ImportSheet when no Google Sheet is wired.
var ErrSheetNotConfigured = errors.New("google sheet source not configured")

const (
	SourceUpload = "upload"
	SourceSheet  = "google_sheet"

	outcomeCreated  = "created"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// ImportReport is what an operator reviews before applying an import.
type ImportReport struct {
	ID         string                `json:"id"`
	Source     string                `json:"source"`
	Result     *models.ParseResult   `json:"result"`
	Resolution reconcile.Resolution  `json:"resolution"`
	CanApply   bool                  `json:"canApply"`
	Preview    *models.PriceListForm `json:"preview,omitempty"`
}

// Service runs the import, apply, submit and edit flows for price lists.
type Service struct {
	parser     *importer.Parser
	resolver   *reconcile.Resolver
	client     marketplace.Client
	history    mongodb.Repository
	sessions   *SessionStore
	sheet      sheets.Repository
	sheetRange string
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewService wires a price-list service. history may be nil to disable persistence.
func NewService(parser *importer.Parser, resolver *reconcile.Resolver, client marketplace.Client, history mongodb.Repository, sessions *SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parser == nil {
		parser = importer.NewParser(nil, logger)
	}
	if sessions == nil {
		sessions = NewSessionStore(30 * time.Minute)
	}
	return &Service{
		parser:   parser,
		resolver: resolver,
		client:   client,
		history:  history,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithSheetSource enables ImportSheet against the given spreadsheet range.
func (s *Service) WithSheetSource(repo sheets.Repository, sheetRange string) *Service {
	s.sheet = repo
	s.sheetRange = sheetRange
	return s
}

// Sessions exposes the pending import store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// ImportXLSX parses an uploaded workbook. Unreadable files produce a report whose
// errors describe the problem rather than a Go error.
func (s *Service) ImportXLSX(ctx context.Context, filename string, r io.Reader) (*ImportReport, error) {
	rows, err := importer.ReadXLSX(r)
	if err != nil {
		if errors.Is(err, importer.ErrLegacyFormat) || errors.Is(err, importer.ErrMalformedFile) {
			s.logger.Warn("unreadable workbook", zap.String("file", filename), zap.Error(err))
			result := &models.ParseResult{
				Prices:    map[models.Category]*models.ParsedCategory{},
				Livestock: []string{},
				Notes:     []string{},
				Errors:    []string{err.Error()},
				Warnings:  []string{},
			}
			return s.finish(ctx, SourceUpload, result), nil
		}
		return nil, fmt.Errorf("read workbook %s: %w", filename, err)
	}
	return s.Import(ctx, SourceUpload, rows), nil
}

// ImportSheet reads the configured Google Sheet range and imports it.
func (s *Service) ImportSheet(ctx context.Context) (*ImportReport, error) {
	if s.sheet == nil {
		return nil, ErrSheetNotConfigured
	}
	values, err := s.sheet.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return nil, fmt.Errorf("load price list sheet: %w", err)
	}
	return s.Import(ctx, SourceSheet, importer.RowsFromSheetValues(values)), nil
}

// Import parses rows, resolves catalog identifiers and keeps the result as a
// pending session. Results with errors are reported but not kept.
func (s *Service) Import(ctx context.Context, source string, rows [][]string) *ImportReport {
	return s.finish(ctx, source, s.parser.ParseRows(rows))
}

func (s *Service) finish(ctx context.Context, source string, result *models.ParseResult) *ImportReport {
	report := &ImportReport{
		ID:       s.newID(),
		Source:   source,
		Result:   result,
		CanApply: result.CanApply(),
		Resolution: reconcile.Resolution{
			Categories: map[models.Category]string{},
			Services:   map[string]string{},
			Unresolved: []string{},
		},
	}

	if report.CanApply {
		if s.resolver != nil {
			report.Resolution = s.resolver.Resolve(ctx, result)
		}
		preview := form.New(models.NewPriceListForm())
		if err := preview.ApplyImport(result, report.Resolution); err == nil {
			values := preview.Values()
			report.Preview = &values
		}
		s.sessions.Put(Session{
			ID:         report.ID,
			Source:     source,
			Result:     result,
			Resolution: report.Resolution,
			CreatedAt:  s.now(),
		})
	}

	s.logger.Info("price list imported",
		zap.String("import_id", report.ID),
		zap.String("source", source),
		zap.Strings("livestock", result.Livestock),
		zap.Int("errors", len(result.Errors)),
		zap.Bool("can_apply", report.CanApply))

	s.record(ctx, func(ctx context.Context) error {
		return s.history.SaveImport(ctx, models.ImportRecord{
			ID:        report.ID,
			Source:    source,
			ClientID:  report.Resolution.ClientID,
			Livestock: result.Livestock,
			Errors:    result.Errors,
			Warnings:  result.Warnings,
			CreatedAt: s.now().UTC(),
		})
	})

	return report
}

// Apply merges a pending import into the caller's form state and discards it.
func (s *Service) Apply(ctx context.Context, id string, state *form.State) error {
	session, ok := s.sessions.Take(id)
	if !ok {
		return ErrSessionNotFound
	}
	if err := state.ApplyImport(session.Result, session.Resolution); err != nil {
		s.sessions.Put(session)
		return fmt.Errorf("apply import %s: %w", id, err)
	}

	s.record(ctx, func(ctx context.Context) error {
		return s.history.MarkImportApplied(ctx, id, s.now().UTC())
	})
	return nil
}

// Submit validates the form, converts it to minor units and sends it to the
// marketplace. A duplicate price list surfaces as marketplace.ErrConflict; set
// Overwrite on the form and submit again to replace it.
func (s *Service) Submit(ctx context.Context, values models.PriceListForm) (*models.PriceList, error) {
	if err := payload.Validate(values); err != nil {
		return nil, err
	}

	pl := payload.Build(values)
	created, err := s.client.CreatePriceList(ctx, pl, values.Overwrite)

	record := models.SubmissionRecord{
		ID:            s.newID(),
		ClientID:      pl.ClientID,
		EffectiveDate: pl.EffectiveDate,
		Overwrite:     values.Overwrite,
		Outcome:       outcomeCreated,
		CreatedAt:     s.now().UTC(),
	}
	switch {
	case err == nil:
		record.PriceListID = created.ID
	case errors.Is(err, marketplace.ErrConflict), errors.Is(err, marketplace.ErrValidation):
		record.Outcome, record.Error = outcomeRejected, err.Error()
	default:
		record.Outcome, record.Error = outcomeFailed, err.Error()
	}
	s.record(ctx, func(ctx context.Context) error { return s.history.SaveSubmission(ctx, record) })

	if err != nil {
		s.logger.Warn("price list submission failed",
			zap.String("client_id", pl.ClientID),
			zap.Bool("overwrite", values.Overwrite),
			zap.Error(err))
		return nil, fmt.Errorf("submit price list: %w", err)
	}

	s.logger.Info("price list submitted", zap.String("price_list_id", created.ID), zap.String("client_id", pl.ClientID))
	return created, nil
}

// LoadForEdit fetches a stored price list and returns it as decimal form values.
func (s *Service) LoadForEdit(ctx context.Context, id string) (models.PriceListForm, error) {
	pl, err := s.client.GetPriceList(ctx, id)
	if err != nil {
		return models.PriceListForm{}, fmt.Errorf("load price list %s: %w", id, err)
	}
	return form.New(payload.FormFromPriceList(*pl)).Values(), nil
}

func (s *Service) record(ctx context.Context, fn func(context.Context) error) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		s.logger.Error("failed to record price list history", zap.Error(err))
	}
}
