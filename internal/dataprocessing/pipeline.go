package dataprocessing

import (
	"log/slog"

	"gapcli/internal/errors"
	"gapcli/internal/validation"
	"gapcli/pkg/contracts/domain"
)

// Pipeline runs the full trim-and-clean sequence over a raw year-major
// table.
type Pipeline struct {
	logger    *slog.Logger
	validator *validation.ArgsValidator
	cleaner   *Cleaner
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:    logger,
		validator: validation.NewArgsValidator(logger),
		cleaner:   NewCleaner(logger),
	}
}

// TrimAndClean prepares a raw table in four steps:
//
//  1. Drop year columns strictly before startYear. The identifier column
//     is never touched, so a startYear at the first data position trims
//     nothing.
//  2. Drop entity rows that are missing across ALL remaining year columns.
//  3. Drop entities above the missing-data threshold and fill small gaps
//     (CleanMissing).
//  4. When verbose, report per-year missing counts and the final shape.
//
// Steps 2-4 only run if some entity still has a missing value after the
// trim. The input table is never mutated; the cleaner re-validates its own
// arguments, so a failure there aborts with the trim already applied to
// the working copy only.
func (p *Pipeline) TrimAndClean(t *domain.Table, startYear string, threshold, limit int, verbose bool) (*domain.Table, error) {
	if result := p.validator.Check(t, []string{startYear}, threshold, limit); !result.Valid {
		return nil, errors.NewValidationError(result.Problems[0])
	}

	df := t.Clone()
	trimmed := 0

	if verbose {
		rows, cols := df.Shape()
		p.logger.Info("Trim and clean starting",
			slog.String("start_year", startYear),
			slog.Int("threshold_pct", threshold),
			slog.Int("fill_limit", limit),
			slog.Int("rows", rows),
			slog.Int("columns", cols))
	}

	// Step 1: trim year columns prior to startYear. Column 0 holds the
	// identifier and never counts.
	yearIdx := df.ColumnIndex(startYear)
	if yearIdx > 1 {
		labels := append([]string(nil), df.Labels[1:yearIdx]...)
		out, err := TrimColumns(p.logger, df, labels, false)
		if err != nil {
			return nil, err
		}
		df = out
		trimmed = yearIdx - 1
		if verbose {
			p.logger.Info("Trimmed leading years",
				slog.Int("years_trimmed", trimmed))
		}
	}

	entitiesMissing := df.RowsWithMissing(1)
	if entitiesMissing == 0 {
		p.logger.Info("Entities with missing values",
			slog.Int("count", 0))
		return df, nil
	}
	if verbose {
		p.logger.Info("Entities with missing values",
			slog.Int("count", entitiesMissing))
	}

	// Step 2: drop rows missing across every year column.
	df = dropAllMissingRows(df)

	// Steps 3 and 4.
	cleaned, dataCleaned, err := p.cleaner.CleanMissing(df, threshold, limit, verbose)
	if err != nil {
		return nil, err
	}
	df = cleaned

	if verbose {
		p.reportRemaining(df, trimmed > 0 || dataCleaned)
	}
	return df, nil
}

// dropAllMissingRows removes entity rows whose year cells are all missing.
func dropAllMissingRows(t *domain.Table) *domain.Table {
	out := &domain.Table{
		Labels:      append([]string(nil), t.Labels...),
		Orientation: t.Orientation,
	}
	yearCols := len(t.Labels) - 1
	for _, row := range t.Rows {
		missing := 0
		for c := 1; c < len(row); c++ {
			if row[c].IsMissing() {
				missing++
			}
		}
		if missing == yearCols && yearCols > 0 {
			continue
		}
		out.Rows = append(out.Rows, append([]domain.Cell(nil), row...))
	}
	return out
}

// reportRemaining logs the per-year missing counts of the cleaned table
// and its final shape.
func (p *Pipeline) reportRemaining(t *domain.Table, anyTrimmed bool) {
	for idx, label := range t.Labels {
		if idx == 0 {
			continue
		}
		if missing := t.MissingInColumn(idx); missing > 0 {
			p.logger.Info("Year still has missing values",
				slog.String("year", label),
				slog.Int("missing", missing))
		}
	}
	rows, cols := t.Shape()
	if anyTrimmed {
		p.logger.Info("Shape of trimmed table",
			slog.Int("rows", rows),
			slog.Int("columns", cols))
	} else {
		p.logger.Info("No trimming required")
	}
}
