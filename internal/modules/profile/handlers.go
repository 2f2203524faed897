package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/jstrader/tradejournal/internal/auth"
	"github.com/jstrader/tradejournal/internal/domain"
)

// Handler handles profile HTTP requests.
type Handler struct {
	store domain.ProfileStore
	log   zerolog.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(store domain.ProfileStore, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "profile").Logger(),
	}
}

// RegisterRoutes mounts the profile endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGet)
	r.Post("/", h.HandleCreate)
	r.Put("/", h.HandleUpdate)
}

// HandleGet returns the authenticated user's profile document. A verified
// account without a profile document means sign-up never completed; that
// state is reported as 410 so the client restarts the flow.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load profile")
		h.writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		h.writeError(w, http.StatusGone, "profile does not exist")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

// profileCreate is the client-supplied part of a new profile. Email and
// verification state come from the authenticated account, never the payload.
type profileCreate struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// HandleCreate materializes the profile document for a freshly signed-up
// account. Called once right after the provider sign-up succeeds; a repeat
// call is a conflict, not an overwrite.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	account := auth.Account(r.Context())

	var payload profileCreate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}

	existing, err := h.store.Get(r.Context(), account.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load profile")
		h.writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}
	if existing != nil {
		h.writeError(w, http.StatusConflict, "profile already exists")
		return
	}

	err = h.store.Create(r.Context(), account.UserID, domain.UserProfile{
		Name:          payload.Name,
		Bio:           payload.Bio,
		Email:         account.Email,
		EmailVerified: account.EmailVerified,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create profile")
		h.writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}

	created, err := h.store.Get(r.Context(), account.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load created profile")
		h.writeError(w, http.StatusInternalServerError, "failed to create profile")
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate merges a partial profile edit. Absent fields keep their stored
// value; only name and bio are client-editable.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}

	profile, err := h.store.Put(r.Context(), userID, update)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update profile")
		h.writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
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
