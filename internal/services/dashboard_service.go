package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"customerpulse/internal/analytics"
	"customerpulse/internal/config"
	"customerpulse/internal/infrastructure"
	"customerpulse/internal/loader"
	"customerpulse/pkg/contracts/domain"
)

// Notifier receives refresh notifications for connected dashboard
// clients. The websocket hub satisfies this; tests use a fake.
type Notifier interface {
	BroadcastDataUpdate(years []int)
}

// DashboardService owns the cached pipeline output the dashboard
// serves. It reloads the source on a TTL, recomputes one snapshot per
// year present in the data, and notifies the hub after each reload.
// The pipeline itself stays pure; all state lives here.
type DashboardService struct {
	loader   loader.Loader
	source   config.SourceConfig
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	snapshots map[int]domain.YearSnapshot
	years     []int
	loadedAt  time.Time
}

// NewDashboardService creates the dashboard service. A nil notifier
// disables refresh broadcasts; a nil now defaults to time.Now.
func NewDashboardService(l loader.Loader, source config.SourceConfig, notifier Notifier, logger *slog.Logger, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		loader:    l,
		source:    source,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "dashboard_service")),
		now:       now,
		snapshots: make(map[int]domain.YearSnapshot),
	}
}

// Refresh reloads the source and recomputes every year's snapshot.
// Row-level noise is filtered silently per the cleaning contract; only
// loader failures and missing columns surface as errors.
func (s *DashboardService) Refresh(ctx context.Context) error {
	rows, err := s.loader.Load(ctx)
	if err != nil {
		infrastructure.ObservePipelineRun(analytics.RunStats{}, err)
		return fmt.Errorf("load source: %w", err)
	}

	records, cleanStats, err := analytics.Clean(rows, analytics.CleanOptions{
		DateColumn:        s.source.DateColumn,
		CustomerColumn:    s.source.CustomerColumn,
		ExcludedCustomers: s.source.ExcludedCustomers,
		Now:               s.now,
	})
	if err != nil {
		infrastructure.ObservePipelineRun(analytics.RunStats{Clean: cleanStats}, err)
		return fmt.Errorf("clean source rows: %w", err)
	}

	at := s.now()
	years := analytics.Years(records)
	snapshots := make(map[int]domain.YearSnapshot, len(years))
	clampedMonths := 0
	for _, year := range years {
		monthly, clamped := analytics.MonthlyNewReturning(records, year, at)
		distribution, listing := analytics.FrequencyBuckets(records, year)
		clampedMonths += clamped
		snapshots[year] = domain.YearSnapshot{
			Year:         year,
			Monthly:      monthly,
			Distribution: distribution,
			Listing:      listing,
			GeneratedAt:  at,
		}
	}

	s.mu.Lock()
	s.snapshots = snapshots
	s.years = years
	s.loadedAt = at
	s.mu.Unlock()

	infrastructure.ObservePipelineRun(analytics.RunStats{Clean: cleanStats, ClampedMonths: clampedMonths}, nil)
	s.logger.InfoContext(ctx, "data refreshed",
		slog.Int("rows_in", cleanStats.RowsIn),
		slog.Int("rows_kept", cleanStats.Kept),
		slog.Int("years", len(years)),
		slog.Int("clamped_months", clampedMonths),
	)
	if clampedMonths > 0 {
		s.logger.WarnContext(ctx, "returning-customer clamp triggered",
			slog.Int("months", clampedMonths))
	}

	if s.notifier != nil {
		s.notifier.BroadcastDataUpdate(years)
	}
	return nil
}

// Snapshot returns the cached snapshot for a year, reloading first
// when the cache is older than the configured refresh interval. A
// stale snapshot is served when a reload fails and old data exists.
func (s *DashboardService) Snapshot(ctx context.Context, year int) (domain.YearSnapshot, error) {
	if s.stale() {
		if err := s.Refresh(ctx); err != nil {
			s.mu.RLock()
			empty := len(s.snapshots) == 0
			s.mu.RUnlock()
			if empty {
				return domain.YearSnapshot{}, err
			}
			s.logger.WarnContext(ctx, "refresh failed, serving stale snapshot",
				slog.String("error", err.Error()))
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[year]
	if !ok {
		return domain.YearSnapshot{}, fmt.Errorf("year %d: %w", year, ErrYearNotFound)
	}
	return snapshot, nil
}

// Years returns the sorted years available in the loaded data.
func (s *DashboardService) Years(ctx context.Context) ([]int, error) {
	if s.stale() {
		if err := s.Refresh(ctx); err != nil {
			s.mu.RLock()
			empty := len(s.snapshots) == 0
			s.mu.RUnlock()
			if empty {
				return nil, err
			}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	years := make([]int, len(s.years))
	copy(years, s.years)
	return years, nil
}

// DefaultYear picks the dashboard's initial year: the current year
// when present in the data, otherwise the latest available year.
// Returns zero when no data is loaded.
func (s *DashboardService) DefaultYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.years) == 0 {
		return 0
	}
	current := s.now().Year()
	for _, year := range s.years {
		if year == current {
			return current
		}
	}
	return s.years[len(s.years)-1]
}

// LoadedAt reports when the cache was last refreshed.
func (s *DashboardService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *DashboardService) stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadedAt.IsZero() {
		return true
	}
	return s.now().Sub(s.loadedAt) > s.source.RefreshInterval
}
