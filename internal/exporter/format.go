package exporter

import (
	"strconv"

	"gapcli/pkg/contracts/domain"
)

// formatCell renders a cell for CSV output. Numbers use the shortest
// representation that round-trips, missing values become empty fields.
func formatCell(c domain.Cell) string {
	if v, ok := c.Numeric(); ok {
		return formatFloat(v)
	}
	if c.IsMissing() {
		return ""
	}
	return c.Str
}

// formatFloat formats a float64 value for CSV output. Fixed-point keeps
// large values out of scientific notation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
