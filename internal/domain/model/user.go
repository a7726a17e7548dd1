package model

import (
	"time"
)

// Photo references an object stored on the external media host.
type Photo struct {
	URL        string `json:"url"`
	ExternalID string `json:"external_id"`
}

// Account holds the public profile fields of a user.
type Account struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	FirstName   string `json:"firstname"`
	Description string `json:"description"`
	Photo       *Photo `json:"photo,omitempty"`
}

// User is the full identity record. Token, salt and hash are the bearer
// credential and password material; they never appear in JSON responses.
type User struct {
	ID        string    `json:"id"`
	Account   Account   `json:"account"`
	Rooms     []string  `json:"rooms"` // owned room ids, chronological
	Token     string    `json:"-"`
	Salt      string    `json:"-"`
	Hash      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the view of a user exposed on unauthenticated routes
// and embedded in room detail responses.
type PublicProfile struct {
	ID      string  `json:"id"`
	Account Account `json:"account"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{ID: u.ID, Account: u.Account}
}
