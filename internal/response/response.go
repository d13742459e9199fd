package response

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON envelope for every non-validation reply.
type Response struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode,omitempty"`
}

// FieldError names one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is returned with 422.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

func SendJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func SendSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	SendJSON(w, statusCode, Response{Status: "success", Message: message, Data: data})
}

func SendSuccessNoData(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, Response{Status: "success", Message: message})
}

// SendError writes a generic error. The message must not carry internal detail.
func SendError(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, Response{Status: errorStatus(statusCode), Message: message, StatusCode: statusCode})
}

func SendValidationErrors(w http.ResponseWriter, errs []FieldError) {
	SendJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: errs})
}

func errorStatus(statusCode int) string {
	switch statusCode {
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusServiceUnavailable:
		return "Service unavailable"
	default:
		return "Bad request"
	}
}
