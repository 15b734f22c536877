package common

import (
	"encoding/json"
	"net/http"

	"github.com/TestingSDK2/produco-backend/app"
	"github.com/pkg/errors"
)

// HandlerFuncWithCTX - type is an adapter to use handlerfunc with ctx
type HandlerFuncWithCTX func(*app.Context, http.ResponseWriter, *http.Request) error

// StatusCodeRecorder keeps the status written by a handler
type StatusCodeRecorder struct {
	http.ResponseWriter
	http.Hijacker
	StatusCode int
}

func (r *StatusCodeRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// WriteJSON writes v with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into v. An oversized body is returned
// as is so it can be answered with 413.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return &app.ValidationError{Message: errors.Wrap(err, "unable to decode payload json").Error()}
	}
	return nil
}
