package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"product-api/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code. The status
// is already sent when encoding fails, so the error is only logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// statusFor maps an error kind to its HTTP status code.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindInvalidInput, model.KindValidationFailed:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError classifies err and writes the matching status and envelope.
// Store failures are logged with their cause; the client only sees a
// generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	resp := model.ErrorResponse{Message: model.MsgServerError}
	kind := model.KindStoreFailure

	var de *model.DomainError
	if errors.As(err, &de) {
		kind = de.Kind
		if kind != model.KindStoreFailure {
			resp.Message = de.Message
			resp.Errors = de.Details
		}
	}

	status := statusFor(kind)
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error().Err(err)
	}
	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("kind", kind.String()).
		Int("status", status).
		Msg("request failed")

	writeJSON(w, status, resp, logger)
}

// parseID reads the id query parameter as a base-10 integer.
func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		return 0, model.ErrInvalidID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, model.ErrInvalidID
	}
	return id, nil
}

// decodePayload reads a JSON object body. Numbers are kept as json.Number
// so the validator sees their literal text. An empty body is an empty
// object.
func decodePayload(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return nil, model.ErrInvalidBody
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, model.ErrInvalidBody
	}
	if dec.More() {
		return nil, model.ErrInvalidBody
	}
	return payload, nil
}
