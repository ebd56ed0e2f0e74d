// Package httpjson provides the small set of response and request-body
// helpers shared by all API features.
//
// Success responses are JSON with status 200 unless a handler says
// otherwise. Error responses are JSON objects of the form
//
//	{ "message": "..." }
//
// with two deliberate plain-text exceptions carried over from the
// original surface: unsupported-verb notices and a handful of favorites
// edge cases.
package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies; none of the API payloads are large.
const maxBodyBytes = 1 << 20 // 1 MiB

// Write serializes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error object {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Text writes a plain-text body with the given status.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// MethodNotSupported writes the 403 plain-text notice used for verbs the
// resource deliberately does not support, e.g.
//
//	PUT operation not supported on /campsites
func MethodNotSupported(w http.ResponseWriter, verb, path string) {
	Text(w, http.StatusForbidden, fmt.Sprintf("%s operation not supported on %s", verb, path))
}

// Decode parses the request body as JSON into v, enforcing the body size
// cap and rejecting unknown garbage after the value.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
