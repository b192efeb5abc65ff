package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user as stored under the accounts key.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicAccount is the part of an Account that is safe to return to clients.
type PublicAccount struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Public strips the password hash.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
	}
}
