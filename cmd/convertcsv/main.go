package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gapcli/internal/config"
	"gapcli/internal/dataprocessing"
	"gapcli/internal/exporter"
	"gapcli/internal/files"
	"gapcli/internal/infrastructure"
	"gapcli/pkg/contracts"
)

func main() {
	in := flag.String("in", "", "spreadsheet file to convert (.xls/.xlsx)")
	dir := flag.String("dir", "", "convert every spreadsheet in this directory instead of a single file")
	out := flag.String("out", "", "output csv file path (single file mode; defaults to <name>.csv)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}
	if *in == "" && *dir == "" {
		fmt.Fprintln(os.Stderr, "usage: convertcsv -in <file.xlsx> [-out <file.csv>] | -dir <directory>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{Logging: config.LoggingConfig{Level: "info", Format: "text", Output: "console"}}
	}
	infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()
	logger := infrastructure.RunLogger().With(slog.String("tool", "convertcsv"))

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	conv := dataprocessing.NewConverter(logger, exporter.NewCSVWriter(paths))

	if *dir != "" {
		if err := convertDirectory(logger, conv, *dir); err != nil {
			os.Exit(1)
		}
		return
	}

	dst := *out
	if dst == "" {
		dst = defaultOutputName(*in)
	}
	table, err := conv.Convert(*in, dst)
	if table == nil || err != nil {
		os.Exit(1)
	}

	rows, cols := table.Shape()
	logger.Info("Conversion complete",
		slog.Int("rows", rows),
		slog.Int("columns", cols))
}

// convertDirectory converts every workbook found in dir, oldest first.
func convertDirectory(logger *slog.Logger, conv *dataprocessing.Converter, dir string) error {
	discovery := files.NewDiscovery(dir)
	workbooks, err := discovery.FindWorkbooks(".")
	if err != nil {
		logger.Error("Failed to scan directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return err
	}
	if len(workbooks) == 0 {
		logger.Warn("No spreadsheets found", slog.String("directory", dir))
		return nil
	}

	var failed int
	for _, wb := range workbooks {
		if _, err := conv.Convert(wb.Path, defaultOutputName(wb.Name)); err != nil {
			failed++
		}
	}
	logger.Info("Batch conversion complete",
		slog.Int("converted", len(workbooks)-failed),
		slog.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(workbooks))
	}
	return nil
}

// defaultOutputName swaps the spreadsheet extension for .csv, keeping the
// base name.
func defaultOutputName(in string) string {
	ext := strings.ToLower(filepath.Ext(in))
	if ext == ".xlsx" || ext == ".xls" {
		return in[:len(in)-len(ext)] + ".csv"
	}
	return in + ".csv"
}
