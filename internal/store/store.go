// Package store persists users, organisations and their memberships.
package store

import (
	"context"
	"errors"

	"orgauth/internal/models"
)

var (
	// ErrNotFound indicates a referenced user or organisation does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateKey indicates a unique constraint (user email) was violated.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Store is the credential store used by the HTTP handlers.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	CreateOrganisation(ctx context.Context, org *models.Organisation) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindOrganisationByID(ctx context.Context, id string) (*models.Organisation, error)
	// AddMembership links a user to an organisation. Adding an existing membership is a no-op.
	AddMembership(ctx context.Context, userID, orgID string) error
	ListOrganisationsForUser(ctx context.Context, userID string) ([]models.Organisation, error)
	ListUsersForOrganisation(ctx context.Context, orgID string) ([]models.User, error)
	// RegisterUser creates the user, the organisation and the membership between them
	// as a single unit: either all three exist afterwards or none do.
	RegisterUser(ctx context.Context, user *models.User, org *models.Organisation) error
	Ping(ctx context.Context) error
}
