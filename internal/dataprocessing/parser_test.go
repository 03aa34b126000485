package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gapcli/internal/errors"
	"gapcli/pkg/contracts/domain"
)

// writeWorkbook creates a small indicator spreadsheet fixture.
func writeWorkbook(t *testing.T, dir string, rows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, "indicator.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeWorkbook(t, t.TempDir(),
		[]interface{}{"Economy", "1999", "2000", "2001"},
		[]interface{}{"France", 1.5, "", 3.0},
		[]interface{}{"Chad", 4.0, 5.0, 6.0},
	)

	got, err := ParseWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, domain.OrientYearMajor, got.Orientation)
	assert.Equal(t, []string{"Country", "1999", "2000", "2001"}, got.Labels,
		"first column is renamed to the canonical identifier")
	assert.Equal(t, []string{"France", "Chad"}, entityNames(got))
	assert.True(t, cellAt(t, got, "France", "2000").IsMissing())

	v, ok := cellAt(t, got, "Chad", "2001").Numeric()
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
}

func TestParseWorkbook_NotFound(t *testing.T) {
	got, err := ParseWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestParseCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "indicator.csv")
	content := "Economy,1999,2000\nFrance,1.5,\nChad,4,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := ParseCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Country", "1999", "2000"}, got.Labels)
	assert.True(t, cellAt(t, got, "France", "2000").IsMissing())

	v, ok := cellAt(t, got, "Chad", "1999").Numeric()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestParseCSV_BOMPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "indicator.csv")
	content := "\uFEFFEconomy,1999\nFrance,1.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := ParseCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Country", "1999"}, got.Labels,
		"byte order mark is stripped before the header rename")
}

func TestParseCSV_NotFound(t *testing.T) {
	got, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Nil(t, got)
	assert.True(t, errors.IsNotFound(err))
}
