package dataprocessing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapcli/internal/shared/testutil"
	"gapcli/pkg/contracts/domain"
)

func TestCleanMissing_Scenario(t *testing.T) {
	// A has no gaps, B misses 1 of 5 years, C misses 4 of 5 years.
	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992", "1993", "1994"},
		[]string{"A", "1", "2", "3", "4", "5"},
		[]string{"B", "1", "", "3", "4", "5"},
		[]string{"C", "1", "", "", "", ""},
	)

	cleaner := NewCleaner(nil)
	got, dropped, err := cleaner.CleanMissing(table, 50, 3, false)
	require.NoError(t, err)

	assert.True(t, dropped, "C is above the threshold and must be dropped")
	assert.Equal(t, []string{"A", "B"}, entityNames(got))

	// B's single gap is filled from a neighbor.
	cell := cellAt(t, got, "B", "1991")
	v, ok := cell.Numeric()
	require.True(t, ok, "B 1991 should be filled")
	assert.Equal(t, 3.0, v, "backward fill takes the next observed value")

	// A is untouched.
	for _, year := range []string{"1990", "1991", "1992", "1993", "1994"} {
		_, ok := cellAt(t, got, "A", year).Numeric()
		assert.True(t, ok)
	}
}

func TestCleanMissing_ThresholdBoundary(t *testing.T) {
	// Exactly at the threshold: 2 of 4 years missing with threshold 50.
	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992", "1993"},
		[]string{"AtLimit", "1", "", "", "4"},
		[]string{"Above", "1", "", "", ""},
	)

	cleaner := NewCleaner(nil)
	got, dropped, err := cleaner.CleanMissing(table, 50, 3, false)
	require.NoError(t, err)

	assert.True(t, dropped)
	assert.Equal(t, []string{"AtLimit"}, entityNames(got),
		"only a fraction strictly above the threshold is dropped")
}

func TestCleanMissing_NoDrops(t *testing.T) {
	table := mkTable(t,
		[]string{"Country", "1990", "1991"},
		[]string{"A", "1", "2"},
		[]string{"B", "3", ""},
	)

	cleaner := NewCleaner(nil)
	got, dropped, err := cleaner.CleanMissing(table, 50, 3, false)
	require.NoError(t, err)

	assert.False(t, dropped, "filling alone does not set the flag")
	assert.Equal(t, []string{"A", "B"}, entityNames(got))
}

func TestCleanMissing_FillLimitBoundary(t *testing.T) {
	// Gap of exactly limit is fully filled; limit+1 keeps a hole.
	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992", "1993", "1994", "1995"},
		[]string{"GapTwo", "1", "", "", "4", "5", "6"},
		[]string{"GapThree", "1", "", "", "", "5", "6"},
	)

	cleaner := NewCleaner(nil)
	got, _, err := cleaner.CleanMissing(table, 99, 2, false)
	require.NoError(t, err)

	for _, year := range []string{"1991", "1992"} {
		_, ok := cellAt(t, got, "GapTwo", year).Numeric()
		assert.True(t, ok, "gap of limit cells is fully filled (%s)", year)
	}

	remaining := 0
	for _, year := range []string{"1991", "1992", "1993"} {
		if cellAt(t, got, "GapThree", year).IsMissing() {
			remaining++
		}
	}
	assert.Equal(t, 1, remaining, "a gap of limit+1 keeps exactly one hole")
}

func TestCleanMissing_Idempotent(t *testing.T) {
	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992", "1993", "1994", "1995"},
		[]string{"A", "1", "2", "3", "4", "5", "6"},
		[]string{"B", "1", "", "", "", "5", "6"},
		[]string{"C", "", "", "", "", "", "6"},
	)

	cleaner := NewCleaner(nil)
	once, droppedOnce, err := cleaner.CleanMissing(table, 50, 2, false)
	require.NoError(t, err)
	require.True(t, droppedOnce)

	twice, droppedTwice, err := cleaner.CleanMissing(once, 50, 2, false)
	require.NoError(t, err)

	assert.False(t, droppedTwice, "a second pass drops nothing")
	assert.True(t, once.Equal(twice), "a second pass changes no values")
}

func TestCleanMissing_LeadingAndTrailingGaps(t *testing.T) {
	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992", "1993", "1994"},
		[]string{"Leading", "", "", "3", "4", "5"},
		[]string{"Trailing", "1", "2", "3", "", ""},
	)

	cleaner := NewCleaner(nil)
	got, _, err := cleaner.CleanMissing(table, 99, 3, false)
	require.NoError(t, err)

	v, ok := cellAt(t, got, "Leading", "1990").Numeric()
	require.True(t, ok)
	assert.Equal(t, 3.0, v, "leading gap backward-fills from the first observation")

	v, ok = cellAt(t, got, "Trailing", "1994").Numeric()
	require.True(t, ok)
	assert.Equal(t, 3.0, v, "trailing gap forward-fills from the last observation")
}

func TestCleanMissing_AllEntitiesDropped(t *testing.T) {
	table := mkTable(t,
		[]string{"Country", "2000", "2001"},
		[]string{"A", "1", ""},
		[]string{"B", "", "2"},
	)

	cleaner := NewCleaner(nil)
	got, dropped, err := cleaner.CleanMissing(table, 0, 3, false)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, dropped)
	assert.Equal(t, []string{"Country", "2000", "2001"}, got.Labels)
	assert.Empty(t, got.Rows)
	assert.Equal(t, domain.OrientYearMajor, got.Orientation)
}

func TestCleanMissing_InvalidArgs(t *testing.T) {
	table := mkTable(t,
		[]string{"Country", "1990"},
		[]string{"A", "1"},
	)
	cleaner := NewCleaner(nil)

	tests := []struct {
		name      string
		threshold int
		limit     int
	}{
		{name: "threshold too high", threshold: 100, limit: 3},
		{name: "threshold negative", threshold: -1, limit: 3},
		{name: "limit too high", threshold: 20, limit: 6},
		{name: "limit negative", threshold: 20, limit: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped, err := cleaner.CleanMissing(table, tt.threshold, tt.limit, false)
			assert.Nil(t, got)
			assert.False(t, dropped)
			assert.Error(t, err)
		})
	}
}

func TestCleanMissing_VerboseLogsDrops(t *testing.T) {
	handler := testutil.NewBufferedSlogHandler(t)
	cleaner := NewCleaner(handler.Logger())

	table := mkTable(t,
		[]string{"Country", "1990", "1991", "1992"},
		[]string{"A", "1", "2", "3"},
		[]string{"Gone", "", "", ""},
	)

	_, dropped, err := cleaner.CleanMissing(table, 50, 3, true)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.True(t, handler.HasMessage("Entities dropped"))
}

func TestFillGaps_BudgetFromObservedMask(t *testing.T) {
	// Interior gap of 4 with limit 3: the backward pass uses the whole
	// budget, so one cell at the head of the gap stays missing.
	col := cells(t, "1", "", "", "", "", "6")
	fillGaps(col, 3)

	assert.True(t, col[1].IsMissing())
	for i := 2; i <= 4; i++ {
		v, ok := col[i].Numeric()
		require.True(t, ok, "cell %d", i)
		assert.Equal(t, 6.0, v)
	}
}

// cells builds a column where empty strings are missing values.
func cells(t *testing.T, values ...string) []domain.Cell {
	t.Helper()
	col := make([]domain.Cell, len(values))
	for i, v := range values {
		if v == "" {
			col[i] = domain.MissingCell()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		require.NoError(t, err)
		col[i] = domain.NumberCell(f)
	}
	return col
}
