package handlers

import (
	"ecologix-service/internal/domain"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

// Every response uses the same envelope so dashboard clients can branch on
// success without inspecting status codes.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, envelope{Success: true, Data: data})
}

// writeList adds the sibling count field listing responses carry.
func writeList(w http.ResponseWriter, r *http.Request, status int, data any, count int) {
	writeJSON(w, r, status, envelope{Success: true, Data: data, Count: &count})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, envelope{Success: false, Error: msg})
}

// writeDomainError maps pipeline errors onto the HTTP surface: validation
// and lookup failures are 400, missing entities 404, everything else a
// logged 500 with a generic message so store internals never leak.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var lookupErr *domain.LookupError

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidVehicleType),
		errors.Is(err, domain.ErrNoFieldsToUpdate):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &lookupErr):
		writeError(w, r, http.StatusBadRequest, lookupErr.Error())
	case errors.Is(err, domain.ErrDeliveryNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrShipmentNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict parses a single JSON object request body, rejecting unknown
// fields and trailing content.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}
