// Package bronze inspects the raw store. The raw layer is read-only input:
// scanning parses each CSV to report its shape but applies no transformation
// and writes nothing.
package bronze

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"medallion/pkg/parser"
	"medallion/pkg/schema"
)

// FileReport describes one readable CSV in the raw store.
type FileReport struct {
	Name      string     `json:"name"`
	SizeBytes int64      `json:"sizeBytes"`
	Rows      int        `json:"rows"`
	Columns   []string   `json:"columns"`
	Warnings  int        `json:"warnings"`
	Sample    [][]string `json:"sample,omitempty"`
}

// ScanResult summarizes a raw store scan.
type ScanResult struct {
	Files  []FileReport `json:"files"`
	Failed []string     `json:"failed,omitempty"`
}

// sampleRows is how many leading data rows a file report carries.
const sampleRows = 5

// Scan discovers every *.csv under dir, parses each, and reports its size,
// shape and a leading sample. A missing directory is fatal; an individual
// unreadable file is recorded in Failed and the scan continues.
func Scan(dir string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", schema.ErrSourceNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", schema.ErrSourceUnreadable, dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	result := &ScanResult{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			result.Failed = append(result.Failed, name)
			continue
		}

		parsed, err := parser.ReadFile(path)
		if err != nil {
			result.Failed = append(result.Failed, name)
			continue
		}

		sample := parsed.Table.Rows
		if len(sample) > sampleRows {
			sample = sample[:sampleRows]
		}

		result.Files = append(result.Files, FileReport{
			Name:      name,
			SizeBytes: info.Size(),
			Rows:      len(parsed.Table.Rows),
			Columns:   parsed.Table.Columns,
			Warnings:  len(parsed.Warnings),
			Sample:    sample,
		})
	}

	return result, nil
}
