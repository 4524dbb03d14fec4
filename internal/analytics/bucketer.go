package analytics

import (
	"sort"

	"customerpulse/pkg/contracts/domain"
)

// FrequencyBuckets groups the report year's customers by their total
// transaction count and returns the bucket distribution plus the
// per-bucket customer listing.
//
// Counts are raw row counts, deliberately not day-deduped: two
// transactions on the same day count as two purchases here even though
// the classifier treats them as one visit. Buckets follow the fixed
// order 1,2,3,4,5+; empty buckets are omitted from both outputs.
func FrequencyBuckets(records []domain.TransactionRecord, year int) ([]domain.BucketCount, []domain.BucketListing) {
	countByCustomer := make(map[string]int)
	for _, r := range records {
		if r.Date.Year() == year {
			countByCustomer[r.CustomerID]++
		}
	}

	customersByBucket := make(map[domain.FrequencyBucket][]string)
	for customer, count := range countByCustomer {
		bucket := domain.BucketFor(count)
		customersByBucket[bucket] = append(customersByBucket[bucket], customer)
	}

	distribution := make([]domain.BucketCount, 0, len(domain.BucketOrder))
	listing := make([]domain.BucketListing, 0, len(domain.BucketOrder))
	for _, bucket := range domain.BucketOrder {
		customers := customersByBucket[bucket]
		if len(customers) == 0 {
			continue
		}
		sort.Strings(customers)
		distribution = append(distribution, domain.BucketCount{
			Bucket:    bucket,
			Label:     bucket.Label(),
			Customers: len(customers),
		})
		listing = append(listing, domain.BucketListing{
			Bucket:    bucket,
			Label:     bucket.Label(),
			Count:     len(customers),
			Customers: customers,
		})
	}

	return distribution, listing
}
