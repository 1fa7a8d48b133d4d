package models

import (
	"time"
)

// Account represents a registered user. Accounts are created on first
// sign-in from the identity the provider asserts, and are never deleted.
type Account struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	University *string   `json:"university,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicAccount is the subset of account fields exposed to other users,
// e.g. as a message sender or room participant.
type PublicAccount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Public converts an account to its externally visible form.
func (a *Account) Public() PublicAccount {
	return PublicAccount{ID: a.ID, Name: a.Name, Image: a.Image}
}

// UpdateProfileRequest is the body for profile updates.
type UpdateProfileRequest struct {
	University string `json:"university"`
}
