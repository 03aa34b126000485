package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gapcli/pkg/contracts/domain"
)

// mkTable builds a year-major table from a header row and data rows.
// Empty strings become missing cells, everything else in a year column is
// parsed as a number.
func mkTable(t *testing.T, labels []string, rows ...[]string) *domain.Table {
	t.Helper()
	raw := append([][]string{labels}, rows...)
	table, err := tableFromRows(raw, "test")
	require.NoError(t, err)
	return table
}

// cellAt returns the cell for the given entity name and column label.
func cellAt(t *testing.T, table *domain.Table, entity, label string) domain.Cell {
	t.Helper()
	col := table.ColumnIndex(label)
	require.GreaterOrEqual(t, col, 0, "column %s", label)
	for _, row := range table.Rows {
		if row[0].Str == entity {
			return row[col]
		}
	}
	t.Fatalf("entity %s not found", entity)
	return domain.Cell{}
}

// entityNames returns the identifier column values in row order.
func entityNames(table *domain.Table) []string {
	names := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		names[i] = row[0].Str
	}
	return names
}
