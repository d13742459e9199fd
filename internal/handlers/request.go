package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"orgauth/internal/response"
)

const maxBodyBytes = 1 << 20

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

var registerFields = []string{"firstName", "lastName", "email", "password"}

func (r *RegisterRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required.Error("First name is required")),
		validation.Field(&r.LastName, validation.Required.Error("Last name is required")),
		validation.Field(&r.Email, validation.Required.Error("Email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var loginFields = []string{"email", "password"}

func (r *LoginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

type CreateOrganisationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var createOrganisationFields = []string{"name"}

func (r CreateOrganisationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Name is required")),
	)
}

type AddOrganisationUserRequest struct {
	UserID string `json:"userId"`
}

var addOrganisationUserFields = []string{"userId"}

func (r AddOrganisationUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required.Error("User ID is required")),
	)
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// fieldErrors flattens ozzo-validation errors in the given field order.
func fieldErrors(err error, fields []string) ([]response.FieldError, bool) {
	errs, ok := err.(validation.Errors)
	if !ok {
		return nil, false
	}
	out := make([]response.FieldError, 0, len(errs))
	for _, field := range fields {
		if fieldErr, ok := errs[field]; ok {
			out = append(out, response.FieldError{Field: field, Message: fieldErr.Error()})
		}
	}
	return out, true
}

func (h *Handler) sendValidationErrors(w http.ResponseWriter, err error, fields []string) {
	errs, ok := fieldErrors(err, fields)
	if !ok {
		h.log.WithError(err).Error("validating request")
		SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	SendValidationErrors(w, errs)
}
