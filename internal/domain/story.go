package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxStoriesPerRoom caps the backlog; inserting past it evicts the
// lowest-ranked stories.
const MaxStoriesPerRoom = 100

type VotingState string

const (
	VotingNotStarted VotingState = "not_started"
	VotingOpen       VotingState = "voting"
	VotingRevealed   VotingState = "revealed"
	VotingCompleted  VotingState = "completed"
)

// Story is one estimation item in a room's ordered backlog.
type Story struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	Title         string
	Description   string
	VotingState   VotingState
	FinalEstimate *string
	CreatedBy     uuid.UUID
	OrderPosition int
	CreatedAt     time.Time
}

func NewStory(roomID uuid.UUID, title, description string, createdBy uuid.UUID) *Story {
	return &Story{
		ID:          uuid.New(),
		RoomID:      roomID,
		Title:       title,
		Description: description,
		VotingState: VotingNotStarted,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// StoryInput is one entry of a bulk create request.
type StoryInput struct {
	Title       string
	Description string
}

// StoryOrder reassigns a story's position within its room.
type StoryOrder struct {
	StoryID       uuid.UUID
	OrderPosition int
}

// SimilarStory is a completed story whose final estimate matched a
// queried value, annotated with the competence the voter asked about.
type SimilarStory struct {
	Title      string
	Points     string
	Competence string
}
