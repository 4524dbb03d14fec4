package report

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customerpulse/internal/config"
	"customerpulse/pkg/contracts/domain"
)

func sampleSnapshot() domain.YearSnapshot {
	return domain.YearSnapshot{
		Year: 2024,
		Monthly: []domain.MonthlyStat{
			{Month: 1, MonthLabel: "2024-01", TotalUniqueCustomers: 2, NewCustomers: 2},
			{Month: 2, MonthLabel: "2024-02", TotalUniqueCustomers: 1, ReturningCustomers: 1},
		},
		Distribution: []domain.BucketCount{
			{Bucket: domain.BucketOne, Label: "1 purchase", Customers: 1},
			{Bucket: domain.BucketThree, Label: "3 purchases", Customers: 1},
		},
		Listing: []domain.BucketListing{
			{Bucket: domain.BucketOne, Label: "1 purchase", Count: 1, Customers: []string{"B"}},
			{Bucket: domain.BucketThree, Label: "3 purchases", Count: 1, Customers: []string{"A"}},
		},
		GeneratedAt: time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	g := NewGenerator(config.ReportConfig{}, slog.Default())

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, sampleSnapshot()))

	html := buf.String()
	assert.Contains(t, html, "Customer report — 2024")
	assert.Contains(t, html, "2024-01")
	assert.Contains(t, html, "3 purchases")
	assert.Contains(t, html, "2024-02-15 09:30")
	// Snapshot JSON is inlined for the charts.
	assert.Contains(t, html, `"month_label":"2024-01"`)
}

func TestRenderEmptySnapshot(t *testing.T) {
	g := NewGenerator(config.ReportConfig{}, slog.Default())

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, domain.YearSnapshot{Year: 2024}))
	assert.Contains(t, buf.String(), "No customers recorded for this year.")
}

func TestRenderEscapesCustomerNames(t *testing.T) {
	g := NewGenerator(config.ReportConfig{}, slog.Default())

	snapshot := sampleSnapshot()
	snapshot.Listing[0].Customers = []string{"<script>alert(1)</script>"}

	var buf bytes.Buffer
	require.NoError(t, g.Render(&buf, snapshot))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(config.ReportConfig{
		OutputDir: filepath.Join(dir, "build"),
		FileName:  "new_customers_report.html",
	}, slog.Default())

	path, err := g.Generate(sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build", "new_customers_report.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Customer report — 2024")
}
