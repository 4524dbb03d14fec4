package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "customerpulse/internal/errors"
	"customerpulse/internal/services"
	"customerpulse/pkg/contracts/domain"
)

// DashboardHandler serves the dashboard JSON API.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Get("/years", h.GetYears)
	r.Post("/refresh", h.PostRefresh)

	return r
}

// DashboardResponse is the payload behind GET /api/dashboard.
type DashboardResponse struct {
	domain.YearSnapshot
	AvailableYears []int `json:"available_years"`
}

// GetDashboard handles GET /api/dashboard?year=YYYY. Without a year
// parameter it falls back to the current year when present in the
// data, else the latest year with data.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Years first: it loads the cache, which DefaultYear reads.
	years, err := h.service.Years(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.SourceUnavailableError(err))
		return
	}

	year := h.service.DefaultYear()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "must be an integer year"))
			return
		}
		if err := h.validate.Var(parsed, "gte=1970,lte=9999"); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "must be a four digit year"))
			return
		}
		year = parsed
	}

	snapshot, err := h.service.Snapshot(ctx, year)
	if err != nil {
		if errors.Is(err, services.ErrYearNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrYearNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, DashboardResponse{YearSnapshot: snapshot, AvailableYears: years})
}

// YearsResponse is the payload behind GET /api/dashboard/years.
type YearsResponse struct {
	Years       []int `json:"years"`
	DefaultYear int   `json:"default_year"`
}

// GetYears handles GET /api/dashboard/years.
func (h *DashboardHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.service.Years(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.SourceUnavailableError(err))
		return
	}
	render.JSON(w, r, YearsResponse{Years: years, DefaultYear: h.service.DefaultYear()})
}

// PostRefresh handles POST /api/dashboard/refresh, forcing a reload
// regardless of cache age.
func (h *DashboardHandler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "manual refresh requested")

	if err := h.service.Refresh(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":    "refreshed",
		"loaded_at": h.service.LoadedAt(),
	})
}
