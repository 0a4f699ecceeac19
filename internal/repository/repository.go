package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomLinkExists      = errors.New("room link already exists")
	ErrRoomAlreadyOwned    = errors.New("room already has an owner")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserEmailExists     = errors.New("user with email already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrStoryNotFound       = errors.New("story not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

type RoomRepository interface {
	// CreateWithCreator persists the room together with its admin
	// participant in one transaction.
	CreateWithCreator(ctx context.Context, room *domain.Room, creator *domain.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	GetByLink(ctx context.Context, link string) (*domain.Room, error)
	SetCurrentStory(ctx context.Context, roomID uuid.UUID, storyID *uuid.UUID) error
	// Claim sets the owner only while the room has none; a previously
	// claimed room yields ErrRoomAlreadyOwned.
	Claim(ctx context.Context, roomID, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error)
}

type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	GetBySession(ctx context.Context, roomID uuid.UUID, sessionToken string) (*domain.Participant, error)
	FindAdminByIdentity(ctx context.Context, roomID uuid.UUID, name, competence string) (*domain.Participant, error)
	FindByUser(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error)
	// Rebind attaches a new session token (and optional user) to an
	// existing participant.
	Rebind(ctx context.Context, id uuid.UUID, sessionToken string, userID *uuid.UUID) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, competence string, userID *uuid.UUID) error
	SetAdmin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error)
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
}

type StoryRepository interface {
	// Create assigns the next order position and enforces the per-room
	// retention cap, all in one transaction.
	Create(ctx context.Context, story *domain.Story) error
	CreateBulk(ctx context.Context, stories []*domain.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error)
	Update(ctx context.Context, id uuid.UUID, title, description string) (*domain.Story, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder applies the position pairs atomically, touching only rows
	// of the given room.
	Reorder(ctx context.Context, roomID uuid.UUID, orders []domain.StoryOrder) error
	SetVotingState(ctx context.Context, id uuid.UUID, state domain.VotingState) error
	// SetVotingStateClearVotes flips the state and purges the story's
	// votes in one transaction.
	SetVotingStateClearVotes(ctx context.Context, id uuid.UUID, state domain.VotingState) error
	Finalize(ctx context.Context, id uuid.UUID, estimate string) error
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Story, error)
	FindByFinalEstimate(ctx context.Context, roomID uuid.UUID, estimate string, limit int) ([]*domain.Story, error)
}

type VoteRepository interface {
	// Upsert inserts the vote or overwrites the existing one for the
	// same (story, participant) pair.
	Upsert(ctx context.Context, vote *domain.Vote) error
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]*domain.Vote, error)
	CountByStory(ctx context.Context, storyID uuid.UUID) (int, error)
	DeleteByStory(ctx context.Context, storyID uuid.UUID) error
}
