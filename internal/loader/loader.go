package loader

import (
	"context"
	"strings"
)

// Loader supplies raw worksheet rows for the pipeline. The first
// worksheet row is the header; every following row becomes one
// column-name to cell-value map. Implementations do all the I/O the
// pipeline itself refuses to do.
type Loader interface {
	Load(ctx context.Context) ([]map[string]string, error)
}

// mapRows converts a header row plus data rows into records. Header
// names are whitespace-trimmed. Short rows are padded with empty
// cells, cells beyond the header are dropped, so every record carries
// the full column set regardless of how ragged the sheet is.
func mapRows(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return []map[string]string{}
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
