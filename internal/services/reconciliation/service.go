package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payroll-reconciliation-backend/internal/logger"
	"payroll-reconciliation-backend/internal/models"
	"payroll-reconciliation-backend/internal/services/matching"
	"payroll-reconciliation-backend/internal/table"
)

// ErrNoDatabase is returned when no authoritative table was uploaded and no
// database source is configured.
var ErrNoDatabase = errors.New("no authoritative database supplied")

// RecordSource supplies authoritative records when no table is uploaded.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]models.Record, error)
}

type ReconciliationService struct {
	cfg    matching.Config
	source RecordSource
}

// NewReconciliationService builds the service. source may be nil.
func NewReconciliationService(cfg matching.Config, source RecordSource) *ReconciliationService {
	return &ReconciliationService{cfg: cfg, source: source}
}

// Request carries the tables of one reconciliation. Database may be nil when
// a RecordSource is configured; Accountants is nil to skip linking.
type Request struct {
	Database    *table.Table
	Input       *table.Table
	Accountants *table.Table
}

type Report struct {
	Run     *models.ReconciliationRun `json:"run"`
	Results []models.EnrichedResult   `json:"results"`
}

func (s *ReconciliationService) ReconcileNames(ctx context.Context, req Request) (*Report, error) {
	return s.reconcile(ctx, models.ModeNames, req)
}

func (s *ReconciliationService) ReconcileSections(ctx context.Context, req Request) (*Report, error) {
	return s.reconcile(ctx, models.ModeSections, req)
}

func (s *ReconciliationService) reconcile(ctx context.Context, mode models.Mode, req Request) (*Report, error) {
	run := models.NewReconciliationRun(mode)
	log := logger.With().Str("run_id", run.ID.String()).Str("mode", string(mode)).Logger()

	if req.Input == nil {
		return nil, fmt.Errorf("%w: input table is required", table.ErrUnreadable)
	}
	inputCols := []string{models.ColName}
	if req.Accountants != nil && mode == models.ModeNames {
		inputCols = append(inputCols, models.ColSection)
	}
	if err := req.Input.Require(inputCols...); err != nil {
		return nil, err
	}
	if req.Accountants != nil {
		if err := req.Accountants.Require(accountantColumns...); err != nil {
			return nil, err
		}
	}

	records, err := s.loadRecords(ctx, mode, req.Database)
	if err != nil {
		return nil, err
	}

	idx := matching.BuildIndex(records)
	run.DroppedDuplicates = idx.Dropped()
	if run.DroppedDuplicates > 0 {
		log.Warn().
			Int("dropped", run.DroppedDuplicates).
			Msg("authoritative names collide after normalization; kept first occurrence")
	}

	rows := inputRowsFromTable(req.Input)
	matcher := matching.NewMatcher(idx, s.cfg)

	var results []models.MatchResult
	switch mode {
	case models.ModeNames:
		results = matcher.MatchNames(rows)
	case models.ModeSections:
		results = matcher.MatchSections(rows)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	var enriched []models.EnrichedResult
	if req.Accountants != nil {
		linker := matching.NewLinker(assignmentsFromTable(req.Accountants), s.cfg)
		enriched = linker.Link(results)
		run.Linked = true
	} else {
		enriched = make([]models.EnrichedResult, len(results))
		for i, r := range results {
			enriched[i] = models.EnrichedResult{MatchResult: r}
		}
	}

	run.Tally(enriched)
	log.Info().
		Int("records", idx.Len()).
		Int("rows", run.TotalRows).
		Int("matched", run.MatchedCount).
		Int("not_matched", run.NotMatchedCount).
		Int("duplicates", run.DuplicateCount).
		Int("assigned", run.AssignedCount).
		Dur("elapsed", run.CompletedAt.Sub(run.StartedAt)).
		Msg("reconciliation completed")

	return &Report{Run: run, Results: enriched}, nil
}

func (s *ReconciliationService) loadRecords(ctx context.Context, mode models.Mode, db *table.Table) ([]models.Record, error) {
	if db != nil {
		if err := db.Require(databaseColumns(mode)...); err != nil {
			return nil, err
		}
		return recordsFromTable(db), nil
	}
	if s.source == nil {
		return nil, ErrNoDatabase
	}

	start := time.Now()
	records, err := s.source.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load authoritative records: %w", err)
	}
	logger.Debug().Int("records", len(records)).Dur("elapsed", time.Since(start)).Msg("loaded authoritative records from database")
	return records, nil
}

// LinkTable appends the accountant columns to an existing result table,
// keeping every other column and the row order.
func (s *ReconciliationService) LinkTable(results, accountants *table.Table) (*table.Table, error) {
	if results == nil || accountants == nil {
		return nil, fmt.Errorf("%w: results and accountants tables are required", table.ErrUnreadable)
	}
	if err := results.Require(models.ColSection); err != nil {
		return nil, err
	}
	if err := accountants.Require(accountantColumns...); err != nil {
		return nil, err
	}

	linker := matching.NewLinker(assignmentsFromTable(accountants), s.cfg)
	sections := results.Column(models.ColSection)
	users := make([]string, len(sections))
	names := make([]string, len(sections))
	assigned := 0
	for i, section := range sections {
		if a, _, ok := linker.Lookup(section); ok {
			users[i], names[i] = a.UserID, a.AccountantName
			assigned++
		}
	}
	results.SetColumn(models.ColUserID, users)
	results.SetColumn(models.ColAccountant, names)

	logger.Info().Int("rows", len(sections)).Int("assigned", assigned).Msg("accountants linked")
	return results, nil
}
