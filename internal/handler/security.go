package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

// requireAPIKey authenticates the request by computing the HMAC-SHA256 of
// the api_key header, looking it up, and performing a constant-time
// comparison to prevent timing attacks.
func (h *Handler) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("api_key")
		if key == "" {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		mac := hmac.New(sha256.New, h.pepper)
		mac.Write([]byte(key))
		hash := mac.Sum(nil)

		info, err := h.apikeys.FindByHash(r.Context(), hex.EncodeToString(hash))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Constant-time comparison guards against timing side-channels even
		// though the lookup already succeeded; the stored hash could differ
		// if the repository returns a stale/wrong row.
		storedBytes, err := hex.DecodeString(info.KeyHash)
		if err != nil || subtle.ConstantTimeCompare(hash, storedBytes) != 1 {
			writeError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}
