package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1_048_576

// ErrorResponse writes a standard JSON error response including request ID.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, Response{
		Success:   false,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// WriteJSONResponse encodes the data to JSON and writes the response header and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		// status is already on the wire
		reqID := middleware.GetReqID(r.Context())
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
	}
}

// DecodeJSONBody reads and decodes a JSON request body safely.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", unmarshalTypeError.Field, unmarshalTypeError.Type)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			fieldName = strings.Trim(fieldName, `"`)
			return fmt.Errorf("body contains unknown key %q", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		case errors.As(err, &invalidUnmarshalError):
			panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))

		default:
			return fmt.Errorf("error decoding JSON body: %w", err)
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
