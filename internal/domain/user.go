package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account that can own rooms. Room participation
// does not require one.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

func NewUser(email, passwordHash, name string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
}
