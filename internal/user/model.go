package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Contact      string    `json:"contact"`
	ProfilePic   string    `json:"profilePic"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account has a local password.
// OAuth-only accounts store an empty hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Profile is the sanitized projection returned to clients.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	ProfilePic string `json:"profilePic"`
}

// Profile returns the client-facing projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		Name:       u.Name,
		Email:      u.Email,
		Contact:    u.Contact,
		ProfilePic: u.ProfilePic,
	}
}
