package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"medallion/pkg/schema"
)

// ParseWarning represents a non-fatal issue encountered during CSV parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed table alongside any warnings.
type ParseResult struct {
	Table    *schema.Table  `json:"table"`
	Warnings []ParseWarning `json:"warnings"`
}

// ReadFile loads a CSV file into a table. A missing path maps to
// schema.ErrSourceNotFound; anything that cannot be read or parsed as
// tabular data maps to schema.ErrSourceUnreadable.
func ReadFile(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", schema.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSourceUnreadable, path, err)
	}

	result, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSourceUnreadable, path, err)
	}
	return result, nil
}

// ParseTable parses CSV bytes into an ordered table. It handles mismatched
// column counts (pad/truncate with a warning) and non-UTF-8 encodings. A
// header-only file yields an empty table, not an error; zero rows is a valid
// degenerate input downstream.
func ParseTable(data []byte) (*ParseResult, error) {
	// Detect encoding and convert to UTF-8
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Allow variable field counts; padding/truncation is handled below.
	reader.FieldsPerRecord = -1
	// Support lazy quotes for less strict parsing of real-world CSV files.
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := schema.NewTable(headers)
	headerCount := len(headers)
	var warnings []ParseWarning
	rowNum := 1 // 1-indexed, header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if len(row) != headerCount {
			if len(row) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, row)
				row = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
				})
				row = row[:headerCount]
			}
		}

		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
		table.Rows = append(table.Rows, row)
	}

	return &ParseResult{Table: table, Warnings: warnings}, nil
}
