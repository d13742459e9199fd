package handlers

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orgauth/internal/auth"
	"orgauth/internal/store"
)

// Handler serves the auth and organisation endpoints. revoker may be nil.
type Handler struct {
	store   store.Store
	hasher  auth.PasswordHasher
	tokens  *auth.TokenService
	revoker auth.Revoker
	log     logrus.FieldLogger
	newID   func() string
}

func New(st store.Store, hasher auth.PasswordHasher, tokens *auth.TokenService, revoker auth.Revoker, log logrus.FieldLogger) *Handler {
	return &Handler{
		store:   st,
		hasher:  hasher,
		tokens:  tokens,
		revoker: revoker,
		log:     log,
		newID:   uuid.NewString,
	}
}

// RevocationEnabled reports whether logout can revoke tokens.
func (h *Handler) RevocationEnabled() bool {
	return h.revoker != nil
}
