package analytics

import (
	"time"

	"customerpulse/pkg/contracts/domain"
)

// MonthlyNewReturning computes one MonthlyStat per month of the report
// year. It returns the stats plus the number of months where the
// returning-customer clamp fired, so callers can surface the clamp in
// metrics without the classifier doing I/O itself.
//
// First-purchase detection is global: a customer's "new" month comes
// from their minimum date across the whole cleaned history, not just
// the report year. Someone first seen in 2023 is never counted new
// in 2024, no matter how active they are there.
//
// Total uniqueness is day-deduped: several transactions by one customer
// on one calendar day count as a single visit before the per-month
// distinct-customer count is taken.
//
// The emitted month range is 1..12 for past years and 1..now's month
// for the current year; a year after now yields no rows. Months without
// activity are present with zero counts so renderers need no special
// casing for gaps.
func MonthlyNewReturning(records []domain.TransactionRecord, year int, now time.Time) ([]domain.MonthlyStat, int) {
	firstPurchase := make(map[string]time.Time, len(records))
	for _, r := range records {
		if first, ok := firstPurchase[r.CustomerID]; !ok || r.Date.Before(first) {
			firstPurchase[r.CustomerID] = r.Date
		}
	}

	newByMonth := make(map[int]int)
	for _, first := range firstPurchase {
		if first.Year() == year {
			newByMonth[int(first.Month())]++
		}
	}

	seenVisits := make(map[string]struct{})
	customersByMonth := make(map[int]map[string]struct{})
	for _, r := range records {
		if r.Date.Year() != year {
			continue
		}
		visit := r.CustomerID + "|" + r.Day().Format("2006-01-02")
		if _, dup := seenVisits[visit]; dup {
			continue
		}
		seenVisits[visit] = struct{}{}

		month := int(r.Date.Month())
		if customersByMonth[month] == nil {
			customersByMonth[month] = make(map[string]struct{})
		}
		customersByMonth[month][r.CustomerID] = struct{}{}
	}

	lastMonth := 12
	switch {
	case year == now.Year():
		lastMonth = int(now.Month())
	case year > now.Year():
		lastMonth = 0
	}

	stats := make([]domain.MonthlyStat, 0, lastMonth)
	clampedMonths := 0
	for month := 1; month <= lastMonth; month++ {
		total := len(customersByMonth[month])
		newCustomers := newByMonth[month]
		returning := total - newCustomers
		if returning < 0 {
			returning = 0
			clampedMonths++
		}
		stats = append(stats, domain.MonthlyStat{
			Month:                month,
			MonthLabel:           domain.MonthKey(year, month),
			TotalUniqueCustomers: total,
			NewCustomers:         newCustomers,
			ReturningCustomers:   returning,
		})
	}

	return stats, clampedMonths
}
