package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/payload"
)

// BeginLogin redirects the browser to the provider's authorization URL with a
// freshly signed state token.
func (h *AuthHTTPHandler) BeginLogin(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")

	strategy, err := h.registry.Get(name)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown provider")
		return
	}

	state, err := h.stateSigner.Sign(name)
	if err != nil {
		h.logger.Error().Err(err).Str("provider", name).Msg("failed to sign state token")
		h.writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	http.Redirect(w, r, strategy.AuthURL(state), http.StatusFound)
}

// LoginCallback verifies the state token, runs the provider's callback and
// responds with the resolved user.
func (h *AuthHTTPHandler) LoginCallback(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")

	strategy, err := h.registry.Get(name)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "unknown provider")
		return
	}

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		h.logger.Warn().Str("provider", name).Str("error", errParam).Msg("provider returned an error")
		h.writeError(w, http.StatusUnauthorized, "login was denied")
		return
	}

	if _, err := h.stateSigner.Verify(query.Get("state"), name); err != nil {
		h.logger.Warn().Err(err).Str("provider", name).Msg("invalid state token")
		h.writeError(w, http.StatusUnauthorized, "invalid state")
		return
	}

	code := query.Get("code")
	if code == "" {
		h.writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	user, err := strategy.Callback(r.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Str("provider", name).Msg("failed to complete login")
		h.writeError(w, http.StatusBadGateway, "login failed")
		return
	}

	h.writeJSON(w, http.StatusOK, payload.UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	})
}

// ListIdentities returns the identities linked to a user, with provider
// credentials redacted.
func (h *AuthHTTPHandler) ListIdentities(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	identities, err := h.identityRepo.GetIdentitiesByUserID(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list identities")
		h.writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	resp := make([]payload.IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		resp = append(resp, payload.IdentityResponse{
			ID:       identity.ID.Hex(),
			Provider: identity.Provider,
			UID:      identity.UID,
			UserID:   identity.UserID,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}
