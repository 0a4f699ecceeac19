package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a member of a single room. The session token is the
// reconnect identity; anonymous participants carry no user link.
type Participant struct {
	ID           uuid.UUID
	RoomID       uuid.UUID
	Name         string
	Competence   string
	IsAdmin      bool
	SessionToken string
	UserID       *uuid.UUID
	JoinedAt     time.Time
}

func NewParticipant(roomID uuid.UUID, name, competence string, isAdmin bool, sessionToken string, userID *uuid.UUID) *Participant {
	return &Participant{
		ID:           uuid.New(),
		RoomID:       roomID,
		Name:         name,
		Competence:   competence,
		IsAdmin:      isAdmin,
		SessionToken: sessionToken,
		UserID:       userID,
		JoinedAt:     time.Now().UTC(),
	}
}
