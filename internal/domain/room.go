package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

const linkBytes = 16

type EstimationType string

const (
	EstimationStoryPoints EstimationType = "story_points"
	EstimationHours       EstimationType = "hours"
)

var (
	storyPointScale = []string{"0.5", "1", "2", "3", "5", "8", "13", "21", "34", "55", "89"}
	hourScale       = []string{"1", "2", "4", "8", "16", "24", "32", "40", "48", "56", "64"}
)

func (t EstimationType) Valid() bool {
	return t == EstimationStoryPoints || t == EstimationHours
}

// Scale returns the estimate values a client may pick for this unit.
func (t EstimationType) Scale() []string {
	if t == EstimationHours {
		return hourScale
	}
	return storyPointScale
}

// Room is a planning session joined through an unguessable link.
type Room struct {
	ID             uuid.UUID
	Name           string
	EstimationType EstimationType
	Link           string
	CurrentStoryID *uuid.UUID
	OwnerID        *uuid.UUID
	CreatedAt      time.Time
	Participants   []*Participant
	Stories        []*Story
}

// NewRoom constructs a room with a generated id and link token.
func NewRoom(name string, estimationType EstimationType, ownerID *uuid.UUID) *Room {
	return &Room{
		ID:             uuid.New(),
		Name:           name,
		EstimationType: estimationType,
		Link:           NewLink(),
		OwnerID:        ownerID,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewLink returns a fixed-length hex token for joining a room.
func NewLink() string {
	buf := make([]byte, linkBytes)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
