package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/payload"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/provider"
	"github.com/vasapolrittideah/social-login-api/services/auth-service/internal/repository"
	"github.com/vasapolrittideah/social-login-api/shared/auth"
)

// AuthHTTPHandler serves the social-login HTTP endpoints.
type AuthHTTPHandler struct {
	registry     *provider.Registry
	identityRepo repository.OAuthIdentityRepository
	stateSigner  auth.StateSigner
	logger       *zerolog.Logger
}

func NewAuthHTTPHandler(
	registry *provider.Registry,
	identityRepo repository.OAuthIdentityRepository,
	stateSigner auth.StateSigner,
	logger *zerolog.Logger,
) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		registry:     registry,
		identityRepo: identityRepo,
		stateSigner:  stateSigner,
		logger:       logger,
	}
}

// Routes mounts the handler's endpoints on a chi router.
func (h *AuthHTTPHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)
	r.Get("/auth/{provider}", h.BeginLogin)
	r.Get("/auth/{provider}/callback", h.LoginCallback)
	r.Get("/users/{userID}/identities", h.ListIdentities)

	return r
}

func (h *AuthHTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHTTPHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *AuthHTTPHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, payload.ErrorResponse{Error: message})
}
