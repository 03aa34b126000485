package dataprocessing

import (
	"strconv"
	"strings"

	"gapcli/internal/errors"
	"gapcli/pkg/contracts/domain"
)

// Transpose modes. Any other value performs the raw swap with no header
// fix-up and no numeric coercion.
const (
	ModeCountry = "country"
	ModeYear    = "year"
)

// Transpose flips a table's rows and columns and returns a new table.
//
// In ModeCountry the input is year-major: the identifier row that lands in
// row 0 after the swap is promoted to column labels and removed, year
// labels move into the row index, values are coerced to numeric and the
// result is tagged entity-major.
//
// In ModeYear the input is entity-major: values are coerced to numeric and
// the row index (entity names) is demoted into a new first column, so the
// result is the canonical year-major layout.
func Transpose(t *domain.Table, mode string) (*domain.Table, error) {
	if t == nil || len(t.Labels) == 0 {
		return nil, errors.NewValidationError("improper type for table")
	}

	out := rawTranspose(t)

	switch mode {
	case ModeCountry:
		if len(out.Rows) == 0 {
			return nil, errors.NewValidationError("table has no identifier row to promote")
		}
		// Row 0 holds the identifier column values; shift it into the
		// column labels and drop the identifier entry from the index.
		labels := make([]string, len(out.Rows[0]))
		for i, cell := range out.Rows[0] {
			labels[i] = cell.String()
		}
		out.Labels = labels
		out.Rows = out.Rows[1:]
		out.Index = out.Index[1:]
		coerceNumeric(out)
		out.Orientation = domain.OrientEntityMajor

	case ModeYear:
		coerceNumeric(out)
		// Demote the row index (entity names) into a first column.
		labels := make([]string, 0, len(out.Labels)+1)
		labels = append(labels, domain.IdentifierLabel)
		labels = append(labels, out.Labels...)
		out.Labels = labels
		for i := range out.Rows {
			row := make([]domain.Cell, 0, len(out.Rows[i])+1)
			row = append(row, domain.StringCell(out.Index[i]))
			row = append(row, out.Rows[i]...)
			out.Rows[i] = row
		}
		out.Index = nil
		out.Orientation = domain.OrientYearMajor

	default:
		out.Orientation = domain.OrientOther
	}

	return out, nil
}

// rawTranspose swaps Rows[r][c] with Rows[c][r]; labels become the index
// and the index (or row positions) becomes the labels.
func rawTranspose(t *domain.Table) *domain.Table {
	nRows := len(t.Rows)
	nCols := len(t.Labels)

	out := &domain.Table{
		Index: append([]string(nil), t.Labels...),
		Rows:  make([][]domain.Cell, nCols),
	}
	if t.Index != nil {
		out.Labels = append([]string(nil), t.Index...)
	} else {
		out.Labels = make([]string, nRows)
		for i := range out.Labels {
			out.Labels[i] = strconv.Itoa(i)
		}
	}
	for c := 0; c < nCols; c++ {
		row := make([]domain.Cell, nRows)
		for r := 0; r < nRows; r++ {
			row[r] = t.Rows[r][c]
		}
		out.Rows[c] = row
	}
	return out
}

// coerceNumeric parses string cells into numbers in place. Blank or
// unparseable text becomes a missing cell, matching how numeric columns
// behave after a round-trip through text formats.
func coerceNumeric(t *domain.Table) {
	for i, row := range t.Rows {
		for j, cell := range row {
			if cell.Kind != domain.CellString {
				continue
			}
			s := strings.TrimSpace(strings.ReplaceAll(cell.Str, ",", ""))
			if s == "" {
				t.Rows[i][j] = domain.MissingCell()
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				t.Rows[i][j] = domain.NumberCell(f)
			} else {
				t.Rows[i][j] = domain.MissingCell()
			}
		}
	}
}
