package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeInternal       = "internal_error"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Error: &apiError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondEncoded writes the envelope around data, which is already encoded
// JSON and is copied into the body unchanged.
func respondEncoded(w http.ResponseWriter, status int, data []byte) {
	head, err := marshalJSON(apiResponse{Success: status >= 200 && status < 300})
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := append(withRawField(head, "data", data), '\n')
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// marshalJSON encodes v without HTML escaping and without the trailing
// newline an Encoder adds.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// withRawField appends "key": raw as the last member of the encoded
// object obj. raw is not re-encoded; empty raw becomes null.
func withRawField(obj []byte, key string, raw []byte) []byte {
	if len(raw) == 0 {
		raw = []byte("null")
	}
	out := make([]byte, 0, len(obj)+len(key)+len(raw)+4)
	out = append(out, obj[:len(obj)-1]...)
	if len(bytes.TrimSpace(obj[1:len(obj)-1])) > 0 {
		out = append(out, ',')
	}
	out = append(out, '"')
	out = append(out, key...)
	out = append(out, `":`...)
	out = append(out, raw...)
	return append(out, '}')
}
