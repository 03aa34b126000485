package dataprocessing

import (
	"log/slog"
	"math"

	"gapcli/internal/errors"
	"gapcli/internal/validation"
	"gapcli/pkg/contracts/domain"
)

// TableSummary describes a year-major table from a given year column
// onward.
type TableSummary struct {
	FromYear            string
	Rows                int
	Columns             int
	Min                 float64
	Max                 float64
	EntitiesWithMissing int
	YearsWithMissing    int
}

// Summarizer reports shape and missing-value statistics for a table. It
// never mutates its input.
type Summarizer struct {
	logger    *slog.Logger
	validator *validation.ArgsValidator
}

// NewSummarizer creates a summarizer. A nil logger falls back to
// slog.Default.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		logger:    logger,
		validator: validation.NewArgsValidator(logger),
	}
}

// Summarize computes the summary of the sub-table from yearLabel onward
// and logs it. The year must exist in the table.
func (s *Summarizer) Summarize(t *domain.Table, yearLabel string) (*TableSummary, error) {
	if result := s.validator.CheckYears(t, yearLabel); !result.Valid {
		return nil, errors.NewValidationError(result.Problems[0])
	}

	from := t.ColumnIndex(yearLabel)
	summary := &TableSummary{
		FromYear: yearLabel,
		Rows:     len(t.Rows),
		Columns:  len(t.Labels) - from,
		Min:      math.Inf(1),
		Max:      math.Inf(-1),
	}

	for _, row := range t.Rows {
		for c := from; c < len(row); c++ {
			if v, ok := row[c].Numeric(); ok {
				summary.Min = math.Min(summary.Min, v)
				summary.Max = math.Max(summary.Max, v)
			}
		}
	}
	if summary.Min > summary.Max {
		summary.Min, summary.Max = math.NaN(), math.NaN()
	}

	for i := range t.Rows {
		if t.MissingInRow(i, from) > 0 {
			summary.EntitiesWithMissing++
		}
	}
	summary.YearsWithMissing = t.ColumnsWithMissing(from)

	s.logger.Info("Table summary",
		slog.String("from_year", summary.FromYear),
		slog.Int("rows", summary.Rows),
		slog.Int("columns", summary.Columns),
		slog.Float64("min", summary.Min),
		slog.Float64("max", summary.Max),
		slog.Int("entities_with_missing", summary.EntitiesWithMissing),
		slog.Int("years_with_missing", summary.YearsWithMissing))
	return summary, nil
}
