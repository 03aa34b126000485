package dataprocessing

import (
	"log/slog"

	"gapcli/internal/errors"
	"gapcli/internal/exporter"
	"gapcli/pkg/contracts/domain"
)

// Converter turns indicator spreadsheets into the canonical CSV format.
type Converter struct {
	logger *slog.Logger
	writer *exporter.CSVWriter
}

// NewConverter creates a converter writing through the given CSV writer.
func NewConverter(logger *slog.Logger, writer *exporter.CSVWriter) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	if writer == nil {
		writer = exporter.NewCSVWriter(nil)
	}
	return &Converter{logger: logger, writer: writer}
}

// Convert reads a spreadsheet and writes it out as CSV with the first
// column renamed to the canonical identifier. A read failure returns
// (nil, err) and nothing is written. A write failure is logged and the
// in-memory table is still returned alongside the error, so callers can
// keep working with the data.
func (c *Converter) Convert(srcPath, dstPath string) (*domain.Table, error) {
	t, err := ParseWorkbook(srcPath)
	if err != nil {
		if errors.IsNotFound(err) {
			c.logger.Error("Source file not found",
				slog.String("path", srcPath))
		} else {
			c.logger.Error("Failed to read spreadsheet",
				slog.String("path", srcPath),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	if err := c.writer.WriteTable(dstPath, t); err != nil {
		c.logger.Error("Failed to write CSV",
			slog.String("path", dstPath),
			slog.String("error", err.Error()))
		return t, errors.NewStorageError("failed to write csv", err)
	}

	c.logger.Info("Converted spreadsheet to CSV",
		slog.String("source", srcPath),
		slog.String("destination", dstPath),
		slog.Int("entities", len(t.Rows)))
	return t, nil
}
