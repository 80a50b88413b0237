package handler

import (
	"net/http"

	"github.com/eliteemart/storefront/internal/content"
)

// GetFooter returns the site footer content.
func (h *Handler) GetFooter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.footer)
}

// authConfigResponse carries the identity-provider settings the UI wrapper
// needs. The redirect target equals the caller's origin, matching the
// hosted-auth wrapper contract.
type authConfigResponse struct {
	content.AuthSettings
	RedirectURI string `json:"redirectUri"`
}

// GetAuthConfig returns the hosted identity-provider configuration.
func (h *Handler) GetAuthConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, authConfigResponse{
		AuthSettings: h.cfg.Auth,
		RedirectURI:  r.Header.Get("Origin"),
	})
}
