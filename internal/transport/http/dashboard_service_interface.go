package http

import (
	"context"
	"time"

	"customerpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the handlers need from the
// dashboard service. Kept as an interface so handler tests can use a
// fake instead of a loader-backed service.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context, year int) (domain.YearSnapshot, error)
	Years(ctx context.Context) ([]int, error)
	Refresh(ctx context.Context) error
	DefaultYear() int
	LoadedAt() time.Time
}
