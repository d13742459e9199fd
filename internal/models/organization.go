package models

import "time"

type Organisation struct {
	ID          string    `json:"orgId" db:"org_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Membership links a user to an organisation. (UserID, OrgID) is unique.
type Membership struct {
	UserID    string    `json:"userId" db:"user_id"`
	OrgID     string    `json:"orgId" db:"org_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
