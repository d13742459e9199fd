package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	SendSuccess(w, http.StatusCreated, "Registration successful", map[string]string{"accessToken": "t"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","message":"Registration successful","data":{"accessToken":"t"}}`, w.Body.String())
}

func TestSendSuccessNoData(t *testing.T) {
	w := httptest.NewRecorder()
	SendSuccessNoData(w, http.StatusOK, "User added to organisation successfully")

	assert.JSONEq(t, `{"status":"success","message":"User added to organisation successfully"}`, w.Body.String())
}

func TestSendError(t *testing.T) {
	tests := []struct {
		code   int
		status string
	}{
		{http.StatusBadRequest, "Bad request"},
		{http.StatusUnauthorized, "Bad request"},
		{http.StatusForbidden, "Forbidden"},
		{http.StatusNotFound, "Not found"},
		{http.StatusServiceUnavailable, "Service unavailable"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		SendError(w, tt.code, "nope")

		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.code, w.Code)
		assert.Equal(t, tt.status, body.Status)
		assert.Equal(t, tt.code, body.StatusCode)
		assert.Equal(t, "nope", body.Message)
	}
}

func TestSendValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	SendValidationErrors(w, []FieldError{{Field: "email", Message: "Email is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"errors":[{"field":"email","message":"Email is required"}]}`, w.Body.String())
}
