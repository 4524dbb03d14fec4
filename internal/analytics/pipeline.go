package analytics

import (
	"time"

	"customerpulse/pkg/contracts/domain"
)

// Config carries the four pipeline inputs that used to live in the
// process environment: the two source column names, the report year and
// the exclusion list.
type Config struct {
	DateColumn        string
	CustomerColumn    string
	Year              int
	ExcludedCustomers []string
}

// RunStats aggregates the diagnostics of one pipeline run.
type RunStats struct {
	Clean         CleanStats
	ClampedMonths int
}

// Run executes the full pipeline (clean, classify, bucket) over raw
// worksheet rows and assembles the snapshot both presenters consume.
// It is a pure function of its inputs plus the injected clock: running
// it twice over the same rows yields identical snapshots.
func Run(rows []map[string]string, cfg Config, now func() time.Time) (domain.YearSnapshot, RunStats, error) {
	if now == nil {
		now = time.Now
	}

	records, cleanStats, err := Clean(rows, CleanOptions{
		DateColumn:        cfg.DateColumn,
		CustomerColumn:    cfg.CustomerColumn,
		ExcludedCustomers: cfg.ExcludedCustomers,
		Now:               now,
	})
	if err != nil {
		return domain.YearSnapshot{}, RunStats{Clean: cleanStats}, err
	}

	at := now()
	monthly, clamped := MonthlyNewReturning(records, cfg.Year, at)
	distribution, listing := FrequencyBuckets(records, cfg.Year)

	snapshot := domain.YearSnapshot{
		Year:         cfg.Year,
		Monthly:      monthly,
		Distribution: distribution,
		Listing:      listing,
		GeneratedAt:  at,
	}
	return snapshot, RunStats{Clean: cleanStats, ClampedMonths: clamped}, nil
}
