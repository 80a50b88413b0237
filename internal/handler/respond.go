package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// errorBody is the JSON error envelope shared by all endpoints.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zctx.From(r.Context()).Debug("Encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorBody{Code: status, Message: msg})
}

// writeInternalError logs the cause and replies with a generic 500 body so
// internals never leak to clients.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
