package handler

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionCookie identifies one browser session's cart. Carts are private to
// a session and live only as long as the store keeps them.
const sessionCookie = "cart_session"

// sessionID returns the request's cart session id, minting a new one (and
// setting the cookie) when the request carries none.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
