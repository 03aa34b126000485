// Package files provides discovery of indicator dataset files on disk.
// The convertcsv tool uses it to locate spreadsheets for batch conversion.
package files
