// Package handlers implements the JSON HTTP API. Handlers decode requests,
// call the account and blog services, and map their error kinds onto
// status codes. Every error body is {"error": "<message>"}.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"themargin/internal/apperr"
	"themargin/internal/middleware"
	"themargin/internal/pagination"
)

// maxBodyBytes bounds request bodies. Post content is capped well below it.
const maxBodyBytes = 1 << 20

const msgInvalidRequest = "Invalid request"

// envelope is the success body. Meta is only present on paginated listings.
type envelope struct {
	Result any              `json:"result"`
	Meta   *pagination.Meta `json:"meta,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeResult(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, envelope{Result: result})
}

func writePage[T any](w http.ResponseWriter, page pagination.Page[T]) {
	meta := page.Meta()
	writeJSON(w, http.StatusOK, envelope{Result: page.Items, Meta: &meta})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindSlugConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the stable message for err. Server-side failures are
// logged with their cause, which never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromCtx(r.Context()),
		)
	}
	writeJSON(w, status, map[string]string{"error": apperr.Message(err)})
}

// decodeJSON reads a single JSON object from the request body into dst.
// Malformed or oversized bodies are reported as a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("Request body too large.")
		}
		return apperr.Validation(msgInvalidRequest)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Validation(msgInvalidRequest)
	}
	return nil
}
