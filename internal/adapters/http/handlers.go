package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"aiclub/internal/adapters/auth"
	"aiclub/internal/adapters/http/middleware"
	"aiclub/internal/domain/apperr"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errInvalidJSON is returned for bodies that do not decode.
var errInvalidJSON = apperr.Validation("Invalid JSON body")

// successResponse is the acknowledgement body for commands without a result.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err.Error())
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindConflict, apperr.KindState, apperr.KindCapacity:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError translates err into {"error": msg}. Unclassified errors are logged
// and, in production, replaced by a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		writeJSON(w, statusFor(ae.Kind), map[string]string{"error": ae.Error()})
		return
	}
	slog.Error("internal_error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	msg := err.Error()
	if s.cfg.IsProduction() {
		msg = "internal server error"
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}

// decodeJSON decodes a JSON body into v. Unknown keys are ignored so browser forms can
// post their whole state; trailing data is rejected. Classified errors raised by field
// decoders pass through unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return ae
		}
		return errInvalidJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errInvalidJSON
	}
	return nil
}

// claims returns the authenticated caller. Routes without Authenticate never call it.
func claims(r *http.Request) *auth.Claims {
	c, _ := middleware.ClaimsFromContext(r.Context())
	if c == nil {
		return &auth.Claims{}
	}
	return c
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}
