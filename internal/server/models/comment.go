package models

import "time"

// Comment is a user-owned comment attached to a page via CpaID.
// UserID is stamped from the authenticated identity at creation and is
// never taken from a client payload.
type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Title     string    `json:"title,omitempty"`
	UserID    string    `json:"userId"`
	CpaID     string    `json:"cpaId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
