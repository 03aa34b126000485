package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gapcli/internal/errors"
	"gapcli/pkg/contracts/domain"
)

// ParseWorkbook reads an indicator spreadsheet into a year-major table.
// The first row of the data sheet becomes the column labels and the first
// label is renamed to the canonical identifier. Blank cells become missing
// values.
func ParseWorkbook(filePath string) (*domain.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("file '%s'", filePath))
		}
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	rows, sheetName, err := findDataSheet(f)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found indicator data in sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return tableFromRows(rows, filePath)
}

// findDataSheet returns the rows of the first sheet holding at least a
// header row and one data row.
func findDataSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		if len(rows[0]) >= 2 {
			return rows, name, nil
		}
	}
	return nil, "", errors.NewParsingError("could not find an indicator data sheet in workbook", nil)
}

// ParseCSV reads a previously exported delimited file back into a
// year-major table.
func ParseCSV(filePath string) (*domain.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(fmt.Sprintf("file '%s'", filePath))
		}
		return nil, errors.NewStorageError("failed to open csv", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read csv", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	}
	return tableFromRows(records, filePath)
}

// tableFromRows builds a year-major table from raw header+data rows.
// Cells in the identifier column stay text; everything else is parsed
// numeric, with blanks and unparseable text treated as missing.
func tableFromRows(rows [][]string, source string) (*domain.Table, error) {
	if len(rows) < 1 || len(rows[0]) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("no header row in '%s'", source), nil)
	}

	labels := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		labels[i] = strings.TrimSpace(h)
	}
	// Rename the first column to the canonical identifier for
	// compatibility with other datasets.
	labels[0] = domain.IdentifierLabel

	t := &domain.Table{Labels: labels, Orientation: domain.OrientYearMajor}
	for _, raw := range rows[1:] {
		row := make([]domain.Cell, len(labels))
		for c := range labels {
			var text string
			if c < len(raw) {
				text = strings.TrimSpace(raw[c])
			}
			switch {
			case c == 0:
				row[c] = domain.StringCell(text)
			case text == "":
				row[c] = domain.MissingCell()
			default:
				if f, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", ""), 64); err == nil {
					row[c] = domain.NumberCell(f)
				} else {
					row[c] = domain.MissingCell()
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}

	slog.Debug("Parsed indicator table",
		slog.String("source", source),
		slog.Int("entities", len(t.Rows)),
		slog.Int("columns", len(t.Labels)))
	return t, nil
}
