package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/quizify/internal/quizgen"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON reads a single JSON value from the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// writeGenerationError maps a generator failure onto the extraction
// endpoint's status codes.
func writeGenerationError(w http.ResponseWriter, err error) {
	var (
		ve *quizgen.ValidationError
		ue *quizgen.UpstreamError
		ee *quizgen.ExtractionError
		se *quizgen.SchemaError
	)
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, quizgen.ErrNoProvider):
		jsonError(w, quizgen.ErrNoProvider.Error(), http.StatusInternalServerError)
	case errors.As(err, &ee):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": ee.Error(),
			"raw":   ee.Raw,
		})
	case errors.As(err, &se):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": se.Error(),
			"field": se.Field,
		})
	case errors.As(err, &ue):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "generation service error",
			"details": ue.Details(),
		})
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}
