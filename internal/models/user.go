package models

import (
	"encoding/json"
	"time"
)

// User is a registered account. Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        string    `json:"userId" db:"user_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// MarshalJSON writes phone as null when it was never given.
func (u User) MarshalJSON() ([]byte, error) {
	type user User
	var phone *string
	if u.Phone != "" {
		phone = &u.Phone
	}
	return json.Marshal(struct {
		user
		Phone *string `json:"phone"`
	}{user: user(u), Phone: phone})
}
