package httpapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the JSON body of every API response. Exactly one of Data and
// Error is set.
type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *apiError  `json:"error,omitempty"`
}

// apiError carries a machine-readable code plus optional structured details,
// e.g. quota denial payloads.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string, details any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &apiError{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
