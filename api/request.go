package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
)

const maxJSONBodyBytes = 1 << 20

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewMaxBodySizeExceededError(maxJSONBodyBytes)
		}
		return errs.NewMalformedPayloadError("JSON", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errs.NewMalformedPayloadError("JSON", io.EOF)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// parseID reads a uuid path parameter
func parseID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(param, "must be a UUID")
	}
	return id, nil
}

// intQuery reads a positive integer query parameter, or def when it is absent
// or unusable
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// writeMutation answers a write with its record and notice
func writeMutation[T any](responder Responder, w http.ResponseWriter, status int, m services.Mutation[T], err error) {
	if err != nil {
		responder.WriteError(w, err)
		return
	}
	responder.WriteJSONStatus(w, status, m)
}
