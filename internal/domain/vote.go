package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single participant's estimate for a story. At most one vote
// exists per (story, participant); resubmission overwrites it. Name and
// competence are snapshotted at vote time.
type Vote struct {
	ID              uuid.UUID
	StoryID         uuid.UUID
	ParticipantID   uuid.UUID
	ParticipantName string
	Competence      string
	Points          string
	CreatedAt       time.Time
}

func NewVote(storyID uuid.UUID, p *Participant, points string) *Vote {
	return &Vote{
		ID:              uuid.New(),
		StoryID:         storyID,
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		Competence:      p.Competence,
		Points:          points,
		CreatedAt:       time.Now().UTC(),
	}
}
