package journal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/domain"
	"github.com/jstrader/tradejournal/internal/jst"
	"github.com/jstrader/tradejournal/internal/modules/rules"
)

// Handler handles journal HTTP requests.
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new journal handler.
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "journal").Logger(),
	}
}

// RegisterRoutes mounts the journal endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/{year}/{month}", h.HandleGetMonth)
	r.Get("/{year}", h.HandleGetYear)
	r.Put("/entries/{date}", h.HandleSaveEntry)
	r.Delete("/entries/{date}", h.HandleDeleteEntry)
	r.Get("/entries/{date}/rules", h.HandleProposeRules)
}

// HandleGetMonth returns the trade data for one civil month merged with the
// preceding month.
func (h *Handler) HandleGetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.parseYearMonth(w, r)
	if !ok {
		return
	}

	store := h.service.FetchMonth(r.Context(), auth.UserID(r.Context()), year, month)
	h.writeJSON(w, http.StatusOK, store)
}

// HandleGetYear returns the trade data for one calendar year.
func (h *Handler) HandleGetYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1970 || year > 9999 {
		h.writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	store := h.service.FetchYear(r.Context(), auth.UserID(r.Context()), year)
	h.writeJSON(w, http.StatusOK, store)
}

// HandleSaveEntry overwrites the entry for one date wholesale. Payload
// validation happens before any store call: a non-numeric P&L is rejected
// with 400 instead of reaching the document store.
func (h *Handler) HandleSaveEntry(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	if _, err := jst.ParseKey(dateKey); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date key")
		return
	}

	var day domain.TradeDay
	if err := json.NewDecoder(r.Body).Decode(&day); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid entry payload: "+err.Error())
		return
	}

	if err := h.service.SaveEntry(r.Context(), auth.UserID(r.Context()), dateKey, day); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to save entry")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "date": dateKey})
}

// HandleDeleteEntry removes the record for one date entirely.
func (h *Handler) HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	if _, err := jst.ParseKey(dateKey); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date key")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), auth.UserID(r.Context()), dateKey); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "date": dateKey})
}

// HandleProposeRules returns the rule checklist a new entry on the given date
// should start from: the target's own rules when present, otherwise the most
// recent prior day's rules with the followed flags reset.
func (h *Handler) HandleProposeRules(w http.ResponseWriter, r *http.Request) {
	dateKey := chi.URLParam(r, "date")
	civil, err := jst.ParseKey(dateKey)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid date key")
		return
	}

	// The merged current+previous month window is the proposal's search
	// space, matching what the calendar view has loaded.
	store := h.service.FetchMonth(r.Context(), auth.UserID(r.Context()), civil.Year, civil.Month)
	proposed := rules.CarryForward(store, dateKey)

	h.writeJSON(w, http.StatusOK, proposed)
}

func (h *Handler) parseYearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1970 || year > 9999 {
		h.writeError(w, http.StatusBadRequest, "invalid year")
		return 0, 0, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		h.writeError(w, http.StatusBadRequest, "invalid month")
		return 0, 0, false
	}
	return year, time.Month(month), true
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
