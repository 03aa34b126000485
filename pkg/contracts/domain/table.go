package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentifierLabel is the canonical label for the entity column. The first
// column of every year-major table is renamed to this on ingest so that
// datasets from different sources line up.
const IdentifierLabel = "Country"

// Orientation records how a table's rows and columns are laid out.
type Orientation int

const (
	// OrientUnknown is the zero value; tables fresh from a file carry it
	// until a transform tags them.
	OrientUnknown Orientation = iota
	// OrientYearMajor is the canonical layout: rows are entities,
	// columns are years, column 0 is the identifier.
	OrientYearMajor
	// OrientEntityMajor is the cleaning layout: rows are years, columns
	// are entities, row labels live in Table.Index.
	OrientEntityMajor
	// OrientOther tags a raw transpose with no header fix-up.
	OrientOther
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	switch o {
	case OrientYearMajor:
		return "year-major"
	case OrientEntityMajor:
		return "entity-major"
	case OrientOther:
		return "other"
	default:
		return "unknown"
	}
}

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	// CellMissing marks an absent value.
	CellMissing CellKind = iota
	// CellString holds text, used for identifiers and raw header cells.
	CellString
	// CellNumber holds an observed numeric value.
	CellNumber
	// CellFilled holds a numeric value produced by directional fill.
	// Filled cells count as present for threshold arithmetic but are
	// never used as fill sources, which keeps cleaning idempotent.
	CellFilled
)

// Cell is a single table value.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// MissingCell returns a cell marked absent.
func MissingCell() Cell { return Cell{Kind: CellMissing} }

// StringCell returns a text cell.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

// NumberCell returns an observed numeric cell.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Num: f} }

// FilledCell returns an imputed numeric cell.
func FilledCell(f float64) Cell { return Cell{Kind: CellFilled, Num: f} }

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.Kind == CellMissing }

// IsObserved reports whether the cell holds a value that came from the
// source data rather than from imputation.
func (c Cell) IsObserved() bool { return c.Kind == CellNumber || c.Kind == CellString }

// Numeric returns the cell's numeric value and whether it has one.
func (c Cell) Numeric() (float64, bool) {
	if c.Kind == CellNumber || c.Kind == CellFilled {
		return c.Num, true
	}
	return 0, false
}

// String renders the cell the way it is written to CSV: numbers in
// fixed-point with the fewest digits that round-trip, missing values as
// the empty string.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber, CellFilled:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is an ordered collection of labeled columns holding row-major cells.
// In year-major orientation Labels[0] is the identifier label and Index is
// nil; in entity-major orientation Labels are entity names and Index holds
// the year labels for each row.
type Table struct {
	Labels      []string
	Index       []string
	Rows        [][]Cell
	Orientation Orientation
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Labels)
}

// Clone returns a deep copy; transforms that must not alias their input
// work on a clone.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Labels:      append([]string(nil), t.Labels...),
		Rows:        make([][]Cell, len(t.Rows)),
		Orientation: t.Orientation,
	}
	if t.Index != nil {
		out.Index = append([]string(nil), t.Index...)
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]Cell(nil), row...)
	}
	return out
}

// ColumnIndex returns the position of the named column, or -1. Safe on a
// nil table.
func (t *Table) ColumnIndex(label string) int {
	if t == nil {
		return -1
	}
	for i, l := range t.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(label string) bool { return t.ColumnIndex(label) >= 0 }

// Column returns the cells of the named column in row order.
func (t *Table) Column(label string) ([]Cell, error) {
	idx := t.ColumnIndex(label)
	if idx < 0 {
		return nil, fmt.Errorf("column %q does not exist", label)
	}
	col := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[idx]
	}
	return col, nil
}

// SetColumn writes cells back into the column at position idx.
func (t *Table) SetColumn(idx int, cells []Cell) {
	for i := range t.Rows {
		t.Rows[i][idx] = cells[i]
	}
}

// MissingInColumn counts missing cells in column idx.
func (t *Table) MissingInColumn(idx int) int {
	n := 0
	for _, row := range t.Rows {
		if row[idx].IsMissing() {
			n++
		}
	}
	return n
}

// MissingInRow counts missing cells in row idx starting at column from.
func (t *Table) MissingInRow(idx, from int) int {
	n := 0
	for c := from; c < len(t.Rows[idx]); c++ {
		if t.Rows[idx][c].IsMissing() {
			n++
		}
	}
	return n
}

// RowsWithMissing counts rows with at least one missing cell in columns
// from..end.
func (t *Table) RowsWithMissing(from int) int {
	n := 0
	for i := range t.Rows {
		if t.MissingInRow(i, from) > 0 {
			n++
		}
	}
	return n
}

// ColumnsWithMissing counts columns with at least one missing cell,
// starting at column from.
func (t *Table) ColumnsWithMissing(from int) int {
	n := 0
	for c := from; c < len(t.Labels); c++ {
		if t.MissingInColumn(c) > 0 {
			n++
		}
	}
	return n
}

// Equal reports whether two tables have identical labels, index, cell
// values and orientation. Filled and observed numbers with the same value
// compare equal, matching what a round-trip through CSV would preserve.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Orientation != other.Orientation {
		return false
	}
	if strings.Join(t.Labels, "\x00") != strings.Join(other.Labels, "\x00") {
		return false
	}
	if strings.Join(t.Index, "\x00") != strings.Join(other.Index, "\x00") {
		return false
	}
	if len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Rows {
		if len(t.Rows[i]) != len(other.Rows[i]) {
			return false
		}
		for j := range t.Rows[i] {
			a, b := t.Rows[i][j], other.Rows[i][j]
			if a.IsMissing() != b.IsMissing() {
				return false
			}
			if a.IsMissing() {
				continue
			}
			av, aok := a.Numeric()
			bv, bok := b.Numeric()
			if aok != bok {
				return false
			}
			if aok {
				if av != bv {
					return false
				}
				continue
			}
			if a.Str != b.Str {
				return false
			}
		}
	}
	return true
}
