package achievements

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/modules/journal"
	"github.com/jstrader/tradejournal/internal/modules/stats"
)

// Handler handles achievement HTTP requests.
type Handler struct {
	journal *journal.Service
	log     zerolog.Logger
}

// NewHandler creates a new achievements handler.
func NewHandler(journalService *journal.Service, log zerolog.Logger) *Handler {
	return &Handler{
		journal: journalService,
		log:     log.With().Str("handler", "achievements").Logger(),
	}
}

// HandleList returns the evaluated catalog for the authenticated user.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	store := h.journal.FetchAll(r.Context(), auth.UserID(r.Context()))
	statuses := Evaluate(stats.ExtendedStats(store))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(statuses); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode achievements response")
	}
}
