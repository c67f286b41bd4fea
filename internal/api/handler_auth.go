package api

import (
	"errors"
	"net/http"

	"tiretrack/internal/domain"
	"tiretrack/internal/service/security"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string               `json:"token"`
	Identity     *domain.Identity     `json:"identity"`
	Capabilities domain.CapabilitySet `json:"capabilities"`
	Landing      domain.Destination   `json:"landing"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, domain.ErrValidation("email and password are required"))
		return
	}

	ident, bearer, err := h.validator.Validate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"code":    http.StatusUnauthorized,
				"message": "invalid email or password",
			})
		case errors.Is(err, security.ErrValidatorUnreachable):
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"code":    http.StatusServiceUnavailable,
				"message": "login temporarily unavailable",
			})
		default:
			writeError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:        bearer,
		Identity:     ident,
		Capabilities: security.ResolveCapabilities(ident),
		Landing:      security.LandingDestination(ident),
	})
}

type meResponse struct {
	Identity     *domain.Identity     `json:"identity"`
	Capabilities domain.CapabilitySet `json:"capabilities"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ident, ok := domain.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrAccessDenied("authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		Identity:     ident,
		Capabilities: security.ResolveCapabilities(ident),
	})
}
