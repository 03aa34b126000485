package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapcli/internal/errors"
	"gapcli/internal/shared/testutil"
)

func TestConverter_Convert(t *testing.T) {
	dir := t.TempDir()
	src := writeWorkbook(t, dir,
		[]interface{}{"Economy", "2000", "2001"},
		[]interface{}{"France", 1.5, 3.0},
		[]interface{}{"Chad", 4.0, ""},
	)
	dst := filepath.Join(dir, "indicator.csv")

	handler := testutil.NewBufferedSlogHandler(t)
	conv := NewConverter(handler.Logger(), nil)

	table, err := conv.Convert(src, dst)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, []string{"France", "Chad"}, entityNames(table))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Country,2000,2001\nFrance,1.5,3\nChad,4,\n", string(data))
	assert.True(t, handler.HasMessage("Converted spreadsheet to CSV"))
}

func TestConverter_Convert_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "nope.xlsx")
	dst := filepath.Join(dir, "out.csv")

	handler := testutil.NewBufferedSlogHandler(t)
	conv := NewConverter(handler.Logger(), nil)

	table, err := conv.Convert(src, dst)
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "no destination file on read failure")
	assert.True(t, handler.HasMessage("Source file not found"))
}
