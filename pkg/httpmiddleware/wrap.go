// Package httpmiddleware provides composable net/http middleware: recovery,
// CORS, rate limiting, request IDs, and request logging.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Wrap applies the middlewares to h. The first middleware in the list is the
// outermost one, so it sees the request first and the response last.
func Wrap(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
