package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerpulse/pkg/contracts/domain"
)

func tx(customer string, year int, month time.Month, day int) domain.TransactionRecord {
	return domain.TransactionRecord{
		CustomerID: customer,
		Date:       time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestMonthlyNewReturningExampleScenario(t *testing.T) {
	// Two same-day transactions by A collapse to one visit; A's second
	// month is a returning visit because A first purchased in January.
	records := []domain.TransactionRecord{
		tx("A", 2024, time.January, 5),
		tx("A", 2024, time.January, 5),
		tx("B", 2024, time.January, 20),
		tx("A", 2024, time.February, 1),
	}
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	stats, clamped := MonthlyNewReturning(records, 2024, now)
	require.Len(t, stats, 2)
	assert.Zero(t, clamped)

	assert.Equal(t, domain.MonthlyStat{
		Month: 1, MonthLabel: "2024-01",
		TotalUniqueCustomers: 2, NewCustomers: 2, ReturningCustomers: 0,
	}, stats[0])
	assert.Equal(t, domain.MonthlyStat{
		Month: 2, MonthLabel: "2024-02",
		TotalUniqueCustomers: 1, NewCustomers: 0, ReturningCustomers: 1,
	}, stats[1])
}

func TestMonthlyNewReturningGlobalFirstPurchase(t *testing.T) {
	// A customer first seen in March 2023 is new only there; in 2024 they
	// count toward uniqueness but never toward new customers.
	records := []domain.TransactionRecord{
		tx("A", 2023, time.March, 5),
		tx("A", 2024, time.June, 10),
		tx("A", 2024, time.July, 2),
	}
	now := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	stats2023, _ := MonthlyNewReturning(records, 2023, now)
	require.Len(t, stats2023, 12)
	assert.Equal(t, 1, stats2023[2].NewCustomers)
	assert.Equal(t, 1, stats2023[2].TotalUniqueCustomers)

	stats2024, _ := MonthlyNewReturning(records, 2024, now)
	require.Len(t, stats2024, 12)
	for _, month := range stats2024 {
		assert.Zero(t, month.NewCustomers, "month %d", month.Month)
	}
	assert.Equal(t, 1, stats2024[5].TotalUniqueCustomers)
	assert.Equal(t, 1, stats2024[5].ReturningCustomers)
	assert.Equal(t, 1, stats2024[6].TotalUniqueCustomers)
}

func TestMonthlyNewReturningMonthRange(t *testing.T) {
	records := []domain.TransactionRecord{tx("A", 2023, time.May, 1)}

	tests := []struct {
		name       string
		year       int
		now        time.Time
		wantMonths int
	}{
		{
			name:       "past year emits all twelve months",
			year:       2023,
			now:        time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
			wantMonths: 12,
		},
		{
			name:       "current year stops at current month",
			year:       2024,
			now:        time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
			wantMonths: 4,
		},
		{
			name:       "future year emits nothing",
			year:       2025,
			now:        time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
			wantMonths: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, _ := MonthlyNewReturning(records, tt.year, tt.now)
			require.Len(t, stats, tt.wantMonths)
			for i, month := range stats {
				assert.Equal(t, i+1, month.Month)
				assert.Equal(t, domain.MonthKey(tt.year, i+1), month.MonthLabel)
			}
		})
	}
}

func TestMonthlyNewReturningZeroFillsQuietMonths(t *testing.T) {
	records := []domain.TransactionRecord{tx("A", 2023, time.June, 15)}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stats, _ := MonthlyNewReturning(records, 2023, now)
	require.Len(t, stats, 12)
	for _, month := range stats {
		if month.Month == 6 {
			continue
		}
		assert.Zero(t, month.TotalUniqueCustomers, "month %d", month.Month)
		assert.Zero(t, month.NewCustomers, "month %d", month.Month)
		assert.Zero(t, month.ReturningCustomers, "month %d", month.Month)
	}
}

func TestMonthlyNewReturningEmptyInput(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	stats, clamped := MonthlyNewReturning(nil, 2024, now)
	require.Len(t, stats, 3)
	assert.Zero(t, clamped)
	for i, month := range stats {
		assert.Equal(t, i+1, month.Month)
		assert.Zero(t, month.TotalUniqueCustomers)
	}
}

func TestMonthlyNewReturningClampNeverNegative(t *testing.T) {
	// Property check across a mixed history: post-clamp returning counts
	// can never go below zero.
	records := []domain.TransactionRecord{
		tx("A", 2023, time.January, 1),
		tx("A", 2024, time.January, 2),
		tx("B", 2024, time.January, 2),
		tx("B", 2024, time.January, 2),
		tx("C", 2024, time.March, 9),
	}
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	stats, _ := MonthlyNewReturning(records, 2024, now)
	for _, month := range stats {
		assert.GreaterOrEqual(t, month.ReturningCustomers, 0)
		assert.Equal(t, month.TotalUniqueCustomers-month.NewCustomers,
			month.ReturningCustomers)
	}
}

func TestMonthlyNewReturningIdempotent(t *testing.T) {
	records := []domain.TransactionRecord{
		tx("A", 2024, time.January, 5),
		tx("B", 2024, time.January, 20),
		tx("A", 2024, time.February, 1),
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	first, _ := MonthlyNewReturning(records, 2024, now)
	second, _ := MonthlyNewReturning(records, 2024, now)
	assert.Equal(t, first, second)
}
