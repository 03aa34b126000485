// Package dataprocessing prepares socioeconomic indicator tables for
// analysis. It covers the complete lifecycle from spreadsheet ingestion to
// a cleaned, year-major CSV-ready table.
//
// # Architecture
//
// The package is organized around four components:
//
//  1. Parser/Converter: reads indicator spreadsheets or CSV exports into
//     year-major tables
//  2. Transposer: flips between year-major and entity-major orientation
//  3. Cleaner: drops entities above a missing-data threshold and fills
//     small gaps with bounded directional imputation
//  4. Pipeline: trims leading years, drops all-missing entities and runs
//     the cleaner
//
// # Usage
//
// Convert a spreadsheet:
//
//	conv := dataprocessing.NewConverter(logger, writer)
//	table, err := conv.Convert("education.xlsx", "education.csv")
//
// Clean a table:
//
//	pipe := dataprocessing.NewPipeline(logger)
//	cleaned, err := pipe.TrimAndClean(table, "1990", 20, 3, true)
//
// Cleaning happens in entity-major orientation so that per-entity missing
// counts are single column reductions and the identifier column never
// enters the fill arithmetic. All transforms return new tables; inputs are
// never mutated.
package dataprocessing
