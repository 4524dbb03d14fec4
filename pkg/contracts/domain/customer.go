package domain

import (
	"fmt"
	"time"
)

// TransactionRecord is one cleaned row of the source worksheet.
// Only the transaction date (day granularity) and the trimmed customer
// identifier survive cleaning; every other source column is ignored.
type TransactionRecord struct {
	CustomerID string    `json:"customer_id"`
	Date       time.Time `json:"date"`
}

// Day returns the record's date truncated to day granularity.
func (r TransactionRecord) Day() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
}

// MonthlyStat holds the new/returning breakdown for one month of the
// report year. ReturningCustomers is clamped at zero.
type MonthlyStat struct {
	Month                int    `json:"month"`
	MonthLabel           string `json:"month_label"`
	TotalUniqueCustomers int    `json:"total_unique_customers"`
	NewCustomers         int    `json:"new_customers"`
	ReturningCustomers   int    `json:"returning_customers"`
}

// MonthKey formats a year/month pair as the label used across charts
// and API payloads, e.g. "2024-03".
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FrequencyBucket classifies a customer by total transaction count
// within the report year, capped at "5+".
type FrequencyBucket string

const (
	BucketOne      FrequencyBucket = "1"
	BucketTwo      FrequencyBucket = "2"
	BucketThree    FrequencyBucket = "3"
	BucketFour     FrequencyBucket = "4"
	BucketFivePlus FrequencyBucket = "5+"
)

// BucketOrder is the fixed display order for bucket output. Buckets with
// zero customers may be omitted but never reordered.
var BucketOrder = []FrequencyBucket{BucketOne, BucketTwo, BucketThree, BucketFour, BucketFivePlus}

// BucketFor maps a per-customer transaction count to its bucket.
// Counts below one never occur: a customer only appears with >=1 record.
func BucketFor(n int) FrequencyBucket {
	if n >= 5 {
		return BucketFivePlus
	}
	return FrequencyBucket(fmt.Sprintf("%d", n))
}

// Label returns the human-readable bucket label.
func (b FrequencyBucket) Label() string {
	switch b {
	case BucketOne:
		return "1 purchase"
	case BucketFivePlus:
		return "5 or more purchases"
	default:
		return fmt.Sprintf("%s purchases", string(b))
	}
}

// BucketCount is one row of the frequency distribution.
type BucketCount struct {
	Bucket    FrequencyBucket `json:"bucket"`
	Label     string          `json:"label"`
	Customers int             `json:"customers"`
}

// BucketListing carries the customer identifiers behind one bucket,
// sorted lexicographically, for audit and display.
type BucketListing struct {
	Bucket    FrequencyBucket `json:"bucket"`
	Label     string          `json:"label"`
	Count     int             `json:"count"`
	Customers []string        `json:"customers"`
}

// YearSnapshot is the full computed result for one report year, consumed
// by both the dashboard API and the static report generator.
type YearSnapshot struct {
	Year         int             `json:"year"`
	Monthly      []MonthlyStat   `json:"monthly"`
	Distribution []BucketCount   `json:"distribution"`
	Listing      []BucketListing `json:"listing"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
