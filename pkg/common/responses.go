package common

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Payload interface{} `json:"payload"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// RespondJSON sends a payload wrapped in the envelope
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeEnvelope(w, status, Envelope{
		Success: status >= 200 && status < 300,
		Payload: payload,
	})
}

// RespondError sends an error envelope
func RespondError(w http.ResponseWriter, status int, info ErrorInfo) error {
	return writeEnvelope(w, status, Envelope{
		Success: false,
		Error:   &info,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(env)
}

// ExtractRequestID extracts the request ID from the request context or headers
func ExtractRequestID(r *http.Request) string {
	if id, ok := GetRequestID(r.Context()); ok {
		return id
	}
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Amzn-Trace-Id"); id != "" {
		return id
	}
	return ""
}

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
