package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gapcli/internal/config"
	"gapcli/internal/dataprocessing"
	"gapcli/internal/exporter"
	"gapcli/internal/infrastructure"
	"gapcli/pkg/contracts"
	"gapcli/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input dataset (.xlsx, .xls or .csv)")
	out := flag.String("out", "", "output csv file path (defaults to data/reports/cleaned.csv)")
	startYear := flag.String("start-year", "", "first year column to keep")
	threshold := flag.Int("threshold", -1, "missing-data threshold percent [0-99] (default from config)")
	limit := flag.Int("limit", -1, "directional fill limit [0-5] (default from config)")
	summary := flag.String("summary", "", "print a summary from this year column after cleaning")
	verbose := flag.Bool("verbose", false, "log detailed cleaning output")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}
	if *in == "" || *startYear == "" {
		fmt.Fprintln(os.Stderr, "usage: prep -in <dataset> -start-year <year> [-threshold N] [-limit N] [-out <file.csv>] [-summary <year>] [-verbose]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging:  config.LoggingConfig{Level: "info", Format: "text", Output: "console"},
			Cleaning: config.CleaningConfig{Threshold: 20, FillLimit: 3},
		}
	}
	infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()
	logger := infrastructure.RunLogger().With(slog.String("tool", "prep"))

	if *threshold < 0 {
		*threshold = cfg.Cleaning.Threshold
	}
	if *limit < 0 {
		*limit = cfg.Cleaning.FillLimit
	}

	table, err := loadTable(*in)
	if err != nil {
		logger.Error("Failed to load dataset",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := dataprocessing.NewPipeline(logger)
	cleaned, err := pipeline.TrimAndClean(table, *startYear, *threshold, *limit, *verbose)
	if err != nil {
		logger.Error("Trim and clean failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *summary != "" {
		summarizer := dataprocessing.NewSummarizer(logger)
		if _, err := summarizer.Summarize(cleaned, *summary); err != nil {
			logger.Error("Summary failed", slog.String("error", err.Error()))
		}
	}

	paths, err := config.GetPaths()
	if err != nil {
		logger.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	dst := *out
	if dst == "" {
		dst = "cleaned.csv"
	}
	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteTable(dst, cleaned); err != nil {
		logger.Error("Failed to write cleaned CSV",
			slog.String("path", dst),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, cols := cleaned.Shape()
	logger.Info("Dataset prepared",
		slog.String("output", dst),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
}

// loadTable reads a dataset from a spreadsheet or a CSV export.
func loadTable(path string) (*domain.Table, error) {
	if strings.HasSuffix(path, ".csv") {
		return dataprocessing.ParseCSV(path)
	}
	return dataprocessing.ParseWorkbook(path)
}
