package httpapi

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"fruitd/pkg/types"
)

// Generic details for server-side failures. The underlying error is logged,
// never returned to the client.
const (
	detailPredictFailed = "Error saat melakukan prediksi"
	detailServerError   = "Server error"
	detailShuttingDown  = "Server sedang dimatikan, coba lagi nanti"
)

// statusClientClosedRequest records a prediction abandoned by the client.
const statusClientClosedRequest = 499

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, types.ErrorResponse{Detail: detail})
}

// recoverer converts handler panics into a 500 JSON response.
func recoverer(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("request_id", middleware.GetReqID(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("unexpected error")
				writeJSONError(w, http.StatusInternalServerError, detailServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
