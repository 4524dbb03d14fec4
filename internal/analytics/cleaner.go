package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"customerpulse/pkg/contracts/domain"
)

// DateFormat is the fixed layout of the source date column (month/day/year).
const DateFormat = "01/02/2006"

// ColumnError reports a required column missing from the source header.
// This is a configuration problem, not a data-quality problem, so it is
// surfaced as an error instead of being filtered like a bad row.
type ColumnError struct {
	Column    string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in source (available: %s)",
		e.Column, strings.Join(e.Available, ", "))
}

// CleanOptions configures a cleaning pass.
type CleanOptions struct {
	DateColumn        string
	CustomerColumn    string
	ExcludedCustomers []string

	// Now supplies "today" for the future-date filter. Defaults to
	// time.Now so callers outside tests don't have to wire a clock.
	Now func() time.Time
}

// CleanStats counts rows dropped by each filter during a cleaning pass.
// Dropped rows are expected spreadsheet noise, never errors; the stats
// exist so the caller can feed drop counters into metrics.
type CleanStats struct {
	RowsIn        int
	Kept          int
	BlankCustomer int
	BadDate       int
	FutureDate    int
	Excluded      int
}

// Clean normalizes raw worksheet rows into transaction records.
//
// Rows with an unparseable date, a blank customer id, a date after
// "today", or an excluded customer are silently dropped. A missing
// date or customer column fails the whole pass with *ColumnError.
// The input is never mutated; a fresh record slice is returned.
func Clean(rows []map[string]string, opts CleanOptions) ([]domain.TransactionRecord, CleanStats, error) {
	stats := CleanStats{RowsIn: len(rows)}
	if len(rows) == 0 {
		return []domain.TransactionRecord{}, stats, nil
	}

	if err := checkColumns(rows[0], opts.DateColumn, opts.CustomerColumn); err != nil {
		return nil, stats, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)

	excluded := make(map[string]struct{}, len(opts.ExcludedCustomers))
	for _, name := range opts.ExcludedCustomers {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			excluded[trimmed] = struct{}{}
		}
	}

	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		customer := strings.TrimSpace(row[opts.CustomerColumn])
		if customer == "" {
			stats.BlankCustomer++
			continue
		}

		date, err := time.ParseInLocation(DateFormat, strings.TrimSpace(row[opts.DateColumn]), time.UTC)
		if err != nil {
			stats.BadDate++
			continue
		}
		if date.After(today) {
			stats.FutureDate++
			continue
		}

		if _, skip := excluded[customer]; skip {
			stats.Excluded++
			continue
		}

		records = append(records, domain.TransactionRecord{CustomerID: customer, Date: date})
	}
	stats.Kept = len(records)

	return records, stats, nil
}

func checkColumns(header map[string]string, columns ...string) error {
	for _, col := range columns {
		if _, ok := header[col]; !ok {
			available := make([]string, 0, len(header))
			for name := range header {
				available = append(available, name)
			}
			sort.Strings(available)
			return &ColumnError{Column: col, Available: available}
		}
	}
	return nil
}

// Years returns the sorted distinct calendar years present in the
// cleaned records. The dashboard uses it to populate its year selector.
func Years(records []domain.TransactionRecord) []int {
	seen := make(map[int]struct{})
	for _, r := range records {
		seen[r.Date.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
