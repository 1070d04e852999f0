package models

import "time"

// User is a persisted identity record. PasswordHash holds the bcrypt hash
// of the password, never the raw secret, and is excluded from every JSON
// representation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
