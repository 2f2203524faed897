package stats

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/modules/journal"
)

// Handler handles statistics HTTP requests. All aggregates are computed on
// demand from the journal; nothing here writes.
type Handler struct {
	journal *journal.Service
	log     zerolog.Logger
}

// NewHandler creates a new stats handler.
func NewHandler(journalService *journal.Service, log zerolog.Logger) *Handler {
	return &Handler{
		journal: journalService,
		log:     log.With().Str("handler", "stats").Logger(),
	}
}

// RegisterRoutes mounts the stats endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetStats)
	r.Get("/monthly/{year}/{month}", h.HandleGetMonthly)
	r.Get("/yearly/{year}", h.HandleGetYearly)
	r.Get("/series", h.HandleGetSeries)
	r.Get("/extended", h.HandleGetExtended)
}

// HandleGetStats returns the five-window rolling summary.
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	store := h.journal.FetchAll(r.Context(), auth.UserID(r.Context()))
	h.writeJSON(w, http.StatusOK, TradeStats(store))
}

// HandleGetMonthly returns the calendar-variant summary for one civil month.
func (h *Handler) HandleGetMonthly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		h.writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	store := h.journal.FetchMonth(r.Context(), auth.UserID(r.Context()), year, time.Month(month))
	h.writeJSON(w, http.StatusOK, MonthlyStats(store, year, time.Month(month)))
}

// HandleGetYearly returns the calendar-variant summary for one year.
func (h *Handler) HandleGetYearly(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	store := h.journal.FetchYear(r.Context(), auth.UserID(r.Context()), year)
	h.writeJSON(w, http.StatusOK, YearlyStats(store, year))
}

// HandleGetSeries returns the trailing-year cumulative P&L series with the
// smoothing overlay for the chart view.
func (h *Handler) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	store := h.journal.FetchAll(r.Context(), auth.UserID(r.Context()))
	h.writeJSON(w, http.StatusOK, CumulativeSeries(store))
}

// HandleGetExtended returns the extended metric set backing the profile and
// achievements views.
func (h *Handler) HandleGetExtended(w http.ResponseWriter, r *http.Request) {
	store := h.journal.FetchAll(r.Context(), auth.UserID(r.Context()))
	h.writeJSON(w, http.StatusOK, ExtendedStats(store))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
