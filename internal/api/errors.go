package api

import (
	"encoding/json"
	"net/http"

	"foodorder/internal/errors"
)

const (
	msgUnknownResource = "Unknown resource."
	msgServerError     = "Server error."
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
		Code:  string(errors.CodeOf(err)),
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		resp.Details = appErr.Details
	}

	json.NewEncoder(w).Encode(resp)
}

// WriteAppError writes err with a status derived from its code.
func WriteAppError(w http.ResponseWriter, err error) {
	WriteError(w, err, MapErrorToStatus(errors.CodeOf(err)))
}

// MapErrorToStatus maps error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.RestaurantNotFound:
		return http.StatusNotFound // 404
	case errors.ItemNotFound:
		return http.StatusNotFound // 404
	case errors.InvalidOrder:
		return http.StatusBadRequest // 400
	case errors.CatalogUnavailable:
		return http.StatusInternalServerError // 500
	case errors.RateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// UnknownResource writes the plain-text 404 used for every unmatched route.
func UnknownResource(w http.ResponseWriter) {
	writeText(w, http.StatusNotFound, msgUnknownResource)
}

// ServerError writes the plain-text 500 used by page and static routes.
func ServerError(w http.ResponseWriter) {
	writeText(w, http.StatusInternalServerError, msgServerError)
}
