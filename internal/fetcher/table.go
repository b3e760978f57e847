package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a header row plus data rows read from a CSV or XLSX file.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads path as a table, choosing the parser by file extension
// (.csv, .tsv or .xlsx). The first non-empty row is the header.
func ReadTable(ctx context.Context, path string) (Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{})
	case ".csv", ".tsv":
		f, openErr := os.Open(path)
		if openErr != nil {
			return Table{}, eris.Wrapf(openErr, "fetcher: open %s", path)
		}
		defer f.Close() //nolint:errcheck

		opts := CSVOptions{LazyQuotes: true}
		if ext == ".tsv" {
			opts.Delimiter = '\t'
		}
		rows, err = ReadCSV(ctx, f, opts)
	default:
		return Table{}, eris.Errorf("fetcher: unsupported table format %q", ext)
	}
	if err != nil {
		return Table{}, err
	}

	var t Table
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Records returns each row keyed by its lower-cased header. Missing trailing
// cells are empty strings.
func (t Table) Records() []map[string]string {
	keys := make([]string, len(t.Header))
	for i, h := range t.Header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(keys))
		for i, k := range keys {
			if k == "" {
				continue
			}
			if i < len(row) {
				rec[k] = row[i]
			} else {
				rec[k] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func blank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
