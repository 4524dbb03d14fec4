package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerpulse/pkg/contracts/domain"
)

func TestFrequencyBucketsExampleScenario(t *testing.T) {
	// Same-day transactions count individually here: A has 3 purchases
	// (two on Jan 5) even though the classifier sees a single visit.
	records := []domain.TransactionRecord{
		tx("A", 2024, time.January, 5),
		tx("A", 2024, time.January, 5),
		tx("B", 2024, time.January, 20),
		tx("A", 2024, time.February, 1),
	}

	distribution, listing := FrequencyBuckets(records, 2024)

	require.Len(t, distribution, 2)
	assert.Equal(t, domain.BucketCount{Bucket: domain.BucketOne, Label: "1 purchase", Customers: 1}, distribution[0])
	assert.Equal(t, domain.BucketCount{Bucket: domain.BucketThree, Label: "3 purchases", Customers: 1}, distribution[1])

	require.Len(t, listing, 2)
	assert.Equal(t, []string{"B"}, listing[0].Customers)
	assert.Equal(t, []string{"A"}, listing[1].Customers)
}

func TestFrequencyBucketsTotalCountBased(t *testing.T) {
	// Six January transactions land in 5+ even though all activity sits
	// in a single month.
	records := make([]domain.TransactionRecord, 0, 6)
	for day := 1; day <= 6; day++ {
		records = append(records, tx("A", 2024, time.January, day))
	}

	distribution, listing := FrequencyBuckets(records, 2024)
	require.Len(t, distribution, 1)
	assert.Equal(t, domain.BucketFivePlus, distribution[0].Bucket)
	assert.Equal(t, "5 or more purchases", distribution[0].Label)
	assert.Equal(t, []string{"A"}, listing[0].Customers)
}

func TestFrequencyBucketsFixedOrderAndSortedListing(t *testing.T) {
	records := []domain.TransactionRecord{
		tx("zeta", 2024, time.January, 1),
		tx("alpha", 2024, time.January, 2),
		tx("mid", 2024, time.February, 1),
		tx("mid", 2024, time.March, 1),
		tx("busy", 2024, time.April, 1),
		tx("busy", 2024, time.April, 2),
		tx("busy", 2024, time.April, 3),
		tx("busy", 2024, time.April, 4),
		tx("busy", 2024, time.April, 5),
	}

	distribution, listing := FrequencyBuckets(records, 2024)

	gotBuckets := make([]domain.FrequencyBucket, 0, len(distribution))
	for _, entry := range distribution {
		gotBuckets = append(gotBuckets, entry.Bucket)
	}
	// 3 and 4 are empty and omitted without disturbing the order.
	assert.Equal(t, []domain.FrequencyBucket{domain.BucketOne, domain.BucketTwo, domain.BucketFivePlus}, gotBuckets)

	assert.Equal(t, []string{"alpha", "zeta"}, listing[0].Customers)
	assert.Equal(t, 2, listing[0].Count)
}

func TestFrequencyBucketsFiltersToYear(t *testing.T) {
	records := []domain.TransactionRecord{
		tx("A", 2023, time.December, 30),
		tx("A", 2024, time.January, 5),
		tx("B", 2023, time.June, 1),
	}

	distribution, listing := FrequencyBuckets(records, 2024)
	require.Len(t, distribution, 1)
	assert.Equal(t, 1, distribution[0].Customers)
	assert.Equal(t, []string{"A"}, listing[0].Customers)
}

func TestFrequencyBucketsCoverage(t *testing.T) {
	// Sum of bucket counts equals the number of distinct customers with
	// at least one transaction in the year.
	records := []domain.TransactionRecord{
		tx("A", 2024, time.January, 1),
		tx("A", 2024, time.January, 1),
		tx("B", 2024, time.February, 2),
		tx("C", 2024, time.March, 3),
		tx("C", 2024, time.March, 4),
		tx("C", 2024, time.March, 5),
		tx("D", 2023, time.March, 5),
	}

	distribution, _ := FrequencyBuckets(records, 2024)
	total := 0
	for _, entry := range distribution {
		total += entry.Customers
	}
	assert.Equal(t, 3, total)
}

func TestFrequencyBucketsEmpty(t *testing.T) {
	distribution, listing := FrequencyBuckets(nil, 2024)
	assert.Empty(t, distribution)
	assert.Empty(t, listing)
}
