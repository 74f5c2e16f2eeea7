package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cargo-dispatch-service/internal/apperr"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("req_id=%s json encode error: %v", reqID(r.Context()), err)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	log.Printf("req_id=%s http_error status=%d msg=%q", reqID(r.Context()), status, msg)
	writeJSON(w, r, status, errResponse{Error: msg})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Specific
// kinds come first so the client can tell a lost claim race from a dead
// transition.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrAlreadyAssigned):
		writeError(w, r, http.StatusConflict, "already assigned")
	case errors.Is(err, apperr.ErrInvalidTransition):
		writeError(w, r, http.StatusConflict, "invalid status transition")
	case errors.Is(err, apperr.ErrOtpMismatch):
		writeError(w, r, http.StatusConflict, "otp mismatch")
	case errors.Is(err, apperr.ErrConflict):
		writeError(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, apperr.ErrUnknownVehicleClass):
		writeError(w, r, http.StatusBadRequest, "unknown vehicle class")
	case errors.Is(err, apperr.ErrCapacityExceeded):
		writeError(w, r, http.StatusBadRequest, "cargo exceeds vehicle capacity")
	case errors.Is(err, apperr.ErrRouteNotFound):
		writeError(w, r, http.StatusBadRequest, "no route between points")
	case errors.Is(err, apperr.ErrAddressNotFound):
		writeError(w, r, http.StatusBadRequest, "address not found")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrDependency):
		writeError(w, r, http.StatusBadGateway, "upstream unavailable")
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if id == "" {
		return "", errors.New("invalid id")
	}
	return id, nil
}

// Viewer identity headers. Authentication happens upstream; the API layer
// forwards the authenticated party id.
const (
	headerUserID   = "X-User-ID"
	headerDriverID = "X-Driver-ID"
)

func viewerID(r *http.Request) string {
	if id := r.Header.Get(headerUserID); id != "" {
		return id
	}
	return r.Header.Get(headerDriverID)
}

func driverID(r *http.Request) string {
	return r.Header.Get(headerDriverID)
}

func requesterID(r *http.Request) string {
	return r.Header.Get(headerUserID)
}
