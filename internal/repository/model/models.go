package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	LastLogin    *time.Time
}

type Room struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"size:255;not null"`
	EstimationType string     `gorm:"size:50;not null"`
	Link           string     `gorm:"size:64;uniqueIndex;not null"`
	CurrentStoryID *uuid.UUID `gorm:"type:uuid"`
	OwnerID        *uuid.UUID `gorm:"type:uuid;index"`
	Owner          *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time  `gorm:"not null"`
	Participants   []Participant `gorm:"constraint:OnDelete:CASCADE"`
	Stories        []Story       `gorm:"constraint:OnDelete:CASCADE"`
}

type Participant struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name         string     `gorm:"size:255;not null"`
	Competence   string     `gorm:"size:50;not null"`
	IsAdmin      bool       `gorm:"not null;default:false"`
	SessionToken *string    `gorm:"size:255;index"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	User         *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	JoinedAt     time.Time  `gorm:"not null"`
}

type Story struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Title         string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	VotingState   string    `gorm:"size:50;not null;default:not_started"`
	FinalEstimate *string   `gorm:"size:50"`
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null"`
	OrderPosition int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	Votes         []Vote    `gorm:"constraint:OnDelete:CASCADE"`
}

type Vote struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoryID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_story_participant"`
	ParticipantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_story_participant;constraint:OnDelete:CASCADE"`
	ParticipantName string    `gorm:"size:255;not null"`
	Competence      string    `gorm:"size:50;not null"`
	Points          string    `gorm:"size:50;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}
