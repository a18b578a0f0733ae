package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/privacydash/privacydash/internal/store"
)

// ProfileHandler serves per-wallet profile records.
type ProfileHandler struct {
	profiles *store.ProfileStore
	log      *zap.Logger
}

// NewProfileHandler wires the profile store.
func NewProfileHandler(profiles *store.ProfileStore, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// GetOrCreate handles GET /api/profile/{pubkey}
// @Summary      Fetch the profile for a wallet address
// @Description  Creates the profile with a balance snapshot on first sight; existing profiles are returned verbatim
// @Tags         profile
// @Produce      json
// @Param        pubkey  path  string  true  "wallet address"
// @Success      200  {object}  model.UserProfile
// @Failure      503  {object}  model.ErrorResponse
// @Router       /api/profile/{pubkey} [get]
func (h *ProfileHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	pubkey := chi.URLParam(r, "pubkey")

	profile, err := h.profiles.GetOrCreate(r.Context(), pubkey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
