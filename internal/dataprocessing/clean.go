package dataprocessing

import (
	"log/slog"

	"gapcli/internal/errors"
	"gapcli/internal/validation"
	"gapcli/pkg/contracts/domain"
)

// CleanStats describes what a cleaning pass did.
type CleanStats struct {
	DroppedEntities  []string
	MissingBefore    int
	MissingAfter     int
	PerEntityMissing map[string]int
}

// Cleaner drops entities with too much missing data and imputes small gaps
// in the rest.
type Cleaner struct {
	logger    *slog.Logger
	validator *validation.ArgsValidator
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger:    logger,
		validator: validation.NewArgsValidator(logger),
	}
}

// CleanMissing cleans a year-major table:
//
//  1. Transpose to entity-major orientation so each entity is a single
//     column and the identifier never enters the fill arithmetic.
//  2. Drop every entity whose missing fraction strictly exceeds
//     threshold/100. A fraction exactly at the threshold survives.
//  3. Backward-fill then forward-fill each remaining gap, bounded to limit
//     cells per gap. Cells beyond the limit stay missing.
//  4. Transpose back to year-major orientation.
//
// The returned flag reports whether step 2 dropped anything; filling does
// not affect it. The input table is not mutated.
func (c *Cleaner) CleanMissing(t *domain.Table, threshold, limit int, verbose bool) (*domain.Table, bool, error) {
	if result := c.validator.Check(t, nil, threshold, limit); !result.Valid {
		return nil, false, errors.NewValidationError(result.Problems[0])
	}

	entityMajor, err := Transpose(t, ModeCountry)
	if err != nil {
		return nil, false, err
	}

	stats := CleanStats{PerEntityMissing: make(map[string]int)}
	dropped := c.dropAboveThreshold(entityMajor, threshold, &stats)
	c.fillBelowThreshold(entityMajor, limit, &stats)

	if verbose {
		c.logStats(threshold, stats)
	}

	// When every entity is above the threshold the entity-major table has
	// no columns left and the back-transpose has nothing to pivot: the
	// result is an empty year-major table that keeps the year labels.
	if len(entityMajor.Labels) == 0 {
		out := &domain.Table{
			Labels:      append([]string{domain.IdentifierLabel}, entityMajor.Index...),
			Orientation: domain.OrientYearMajor,
		}
		return out, dropped, nil
	}

	out, err := Transpose(entityMajor, ModeYear)
	if err != nil {
		return nil, false, err
	}
	return out, dropped, nil
}

// dropAboveThreshold removes entity columns whose missing fraction is
// strictly above threshold percent. Returns whether anything was dropped.
func (c *Cleaner) dropAboveThreshold(t *domain.Table, threshold int, stats *CleanStats) bool {
	nRows := len(t.Rows)
	if nRows == 0 {
		return false
	}

	keepLabels := make([]string, 0, len(t.Labels))
	keep := make([]int, 0, len(t.Labels))
	for idx, label := range t.Labels {
		missing := t.MissingInColumn(idx)
		if float64(missing)/float64(nRows) > float64(threshold)/100.0 {
			stats.DroppedEntities = append(stats.DroppedEntities, label)
			continue
		}
		keep = append(keep, idx)
		keepLabels = append(keepLabels, label)
	}
	if len(stats.DroppedEntities) == 0 {
		return false
	}

	for i, row := range t.Rows {
		newRow := make([]domain.Cell, len(keep))
		for j, idx := range keep {
			newRow[j] = row[idx]
		}
		t.Rows[i] = newRow
	}
	t.Labels = keepLabels
	return true
}

// fillBelowThreshold applies the directional fill to every entity column
// that still has missing values, recording before/after counts.
func (c *Cleaner) fillBelowThreshold(t *domain.Table, limit int, stats *CleanStats) {
	for idx, label := range t.Labels {
		if missing := t.MissingInColumn(idx); missing > 0 {
			stats.MissingBefore++
			stats.PerEntityMissing[label] = missing
		}
	}
	if stats.MissingBefore == 0 {
		return
	}

	for idx := range t.Labels {
		if t.MissingInColumn(idx) == 0 {
			continue
		}
		col := make([]domain.Cell, len(t.Rows))
		for i, row := range t.Rows {
			col[i] = row[idx]
		}
		fillGaps(col, limit)
		t.SetColumn(idx, col)
	}

	for idx := range t.Labels {
		if t.MissingInColumn(idx) > 0 {
			stats.MissingAfter++
		}
	}
}

// fillGaps imputes missing cells in a column. Gaps are maximal runs of
// non-observed cells; each gap is backward-filled from the next observed
// value first, then forward-filled from the previous observed value with
// whatever budget remains, so at most limit cells per gap are ever filled.
// Gap boundaries and the budget both come from the observed mask only,
// which makes repeated cleaning a no-op.
func fillGaps(col []domain.Cell, limit int) {
	n := len(col)
	i := 0
	for i < n {
		if col[i].IsObserved() {
			i++
			continue
		}
		// Found a run of non-observed cells [start, end).
		start := i
		for i < n && !col[i].IsObserved() {
			i++
		}
		end := i

		budget := limit
		// Backward fill: take from the observed value below the gap. The
		// budget counts positions from the source, so cells filled on an
		// earlier pass still consume it.
		if end < n {
			if next, ok := col[end].Numeric(); ok {
				for j := end - 1; j >= start && budget > 0; j-- {
					if col[j].IsMissing() {
						col[j] = domain.FilledCell(next)
					}
					budget--
				}
			}
		}
		// Forward fill: take from the observed value above the gap.
		if start > 0 && budget > 0 {
			if prev, ok := col[start-1].Numeric(); ok {
				for j := start; j < end && budget > 0; j++ {
					if col[j].IsMissing() {
						col[j] = domain.FilledCell(prev)
					}
					budget--
				}
			}
		}
	}
}

// logStats reports the cleaning outcome.
func (c *Cleaner) logStats(threshold int, stats CleanStats) {
	c.logger.Info("Entities above missing-data threshold",
		slog.Int("threshold_pct", threshold),
		slog.Int("dropped", len(stats.DroppedEntities)))
	if len(stats.DroppedEntities) > 0 {
		c.logger.Info("Entities dropped",
			slog.Any("entities", stats.DroppedEntities))
	}
	c.logger.Info("Entities below threshold with missing values",
		slog.Int("count", stats.MissingBefore))
	for entity, missing := range stats.PerEntityMissing {
		c.logger.Info("Missing values for entity",
			slog.String("entity", entity),
			slog.Int("missing", missing))
	}
	if stats.MissingBefore > 0 {
		c.logger.Info("Entities with missing values remaining after filling",
			slog.Int("count", stats.MissingAfter))
	}
}
