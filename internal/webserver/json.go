package webserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeJSONBody decodes exactly one JSON value from the request body.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
