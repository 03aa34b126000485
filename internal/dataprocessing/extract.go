package dataprocessing

import (
	"log/slog"

	"gapcli/internal/errors"
	"gapcli/internal/validation"
	"gapcli/pkg/contracts/domain"
)

// ExtractColumns returns a new table holding only the named columns, each
// label prefixed with prefix+"_". The identifier column keeps its
// canonical label. The source table is not mutated. A nil logger falls
// back to slog.Default.
func ExtractColumns(logger *slog.Logger, t *domain.Table, labels []string, prefix string) (*domain.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := validation.NewArgsValidator(logger)
	if result := v.CheckYears(t, labels...); !result.Valid {
		return nil, errors.NewValidationError(result.Problems[0])
	}

	out := &domain.Table{
		Labels:      make([]string, len(labels)),
		Rows:        make([][]domain.Cell, len(t.Rows)),
		Orientation: t.Orientation,
	}
	indices := make([]int, len(labels))
	for i, label := range labels {
		indices[i] = t.ColumnIndex(label)
		if label == domain.IdentifierLabel {
			out.Labels[i] = domain.IdentifierLabel
		} else {
			out.Labels[i] = prefix + "_" + label
		}
	}
	for r, row := range t.Rows {
		newRow := make([]domain.Cell, len(indices))
		for j, idx := range indices {
			newRow[j] = row[idx]
		}
		out.Rows[r] = newRow
	}
	return out, nil
}

// TrimColumns returns a new table without the named year columns. The
// identifier column cannot be trimmed. When verbose, the trim count,
// entities still missing data and the resulting shape are logged. A nil
// logger falls back to slog.Default.
func TrimColumns(logger *slog.Logger, t *domain.Table, labels []string, verbose bool) (*domain.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := validation.NewArgsValidator(logger)
	if result := v.CheckYears(t, labels...); !result.Valid {
		return nil, errors.NewValidationError(result.Problems[0])
	}

	drop := make(map[string]bool, len(labels))
	for _, label := range labels {
		if label != domain.IdentifierLabel {
			drop[label] = true
		}
	}

	out := &domain.Table{Orientation: t.Orientation, Rows: make([][]domain.Cell, len(t.Rows))}
	keep := make([]int, 0, len(t.Labels))
	for idx, label := range t.Labels {
		if !drop[label] {
			keep = append(keep, idx)
			out.Labels = append(out.Labels, label)
		}
	}
	for r, row := range t.Rows {
		newRow := make([]domain.Cell, len(keep))
		for j, idx := range keep {
			newRow[j] = row[idx]
		}
		out.Rows[r] = newRow
	}

	if verbose {
		rows, cols := out.Shape()
		logger.Info("Trimmed year columns",
			slog.Int("years_trimmed", len(drop)),
			slog.Int("entities_with_missing", out.RowsWithMissing(1)),
			slog.Int("rows", rows),
			slog.Int("columns", cols))
	}
	return out, nil
}
