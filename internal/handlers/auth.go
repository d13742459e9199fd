package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"orgauth/internal/middleware"
	"orgauth/internal/models"
	"orgauth/internal/store"
)

const (
	msgRegistrationFailed = "Registration unsuccessful"
	msgAuthFailed         = "Authentication failed"
)

type AuthResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

func defaultOrganisationName(firstName string) string {
	return fmt.Sprintf("%s's Organisation", firstName)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		h.sendValidationErrors(w, err, registerFields)
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.WithError(err).Error("hashing password")
		SendError(w, http.StatusBadRequest, msgRegistrationFailed)
		return
	}

	user := &models.User{
		ID:        h.newID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Phone:     req.Phone,
	}
	org := &models.Organisation{
		ID:   h.newID(),
		Name: defaultOrganisationName(user.FirstName),
	}

	// Sign before persisting so a signing failure leaves nothing behind.
	token, err := h.tokens.Sign(user.ID, user.Email)
	if err != nil {
		h.log.WithError(err).Error("signing access token")
		SendError(w, http.StatusBadRequest, msgRegistrationFailed)
		return
	}

	if err := h.store.RegisterUser(r.Context(), user, org); err != nil {
		entry := h.log.WithError(err)
		if errors.Is(err, store.ErrDuplicateKey) {
			entry.Info("registration rejected")
		} else {
			entry.Error("registering user")
		}
		SendError(w, http.StatusBadRequest, msgRegistrationFailed)
		return
	}

	h.log.WithField("user_id", user.ID).Info("user registered")
	SendSuccess(w, http.StatusCreated, "Registration successful", AuthResponse{AccessToken: token, User: *user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.normalize()
	if err := req.Validate(); err != nil {
		h.sendValidationErrors(w, err, loginFields)
		return
	}

	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.WithError(err).Error("looking up user")
		}
		SendError(w, http.StatusUnauthorized, msgAuthFailed)
		return
	}
	if err := h.hasher.Compare(user.Password, req.Password); err != nil {
		SendError(w, http.StatusUnauthorized, msgAuthFailed)
		return
	}

	token, err := h.tokens.Sign(user.ID, user.Email)
	if err != nil {
		h.log.WithError(err).Error("signing access token")
		SendError(w, http.StatusUnauthorized, msgAuthFailed)
		return
	}

	SendSuccess(w, http.StatusOK, "Login successful", AuthResponse{AccessToken: token, User: *user})
}

// Logout revokes the caller's token until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		SendError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if h.revoker == nil {
		SendError(w, http.StatusBadRequest, "Logout unsuccessful")
		return
	}

	if err := h.revoker.Revoke(r.Context(), identity.TokenID, identity.ExpiresAt); err != nil {
		h.log.WithError(err).Error("revoking token")
		SendError(w, http.StatusBadRequest, "Logout unsuccessful")
		return
	}

	SendSuccessNoData(w, http.StatusOK, "Logout successful")
}
