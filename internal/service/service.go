package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
)

var (
	ErrUnauthorized       = errors.New("participant is not an admin")
	ErrNotParticipant     = errors.New("user is not a participant of the room")
	ErrRoomAlreadyOwned   = errors.New("room already has an owner")
	ErrVotingClosed       = errors.New("voting is not open for this story")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type RoomInteractor interface {
	CreateRoom(ctx context.Context, name string, estimationType domain.EstimationType, creatorName, creatorCompetence string, ownerID *uuid.UUID) (*domain.Room, *domain.Participant, error)
	JoinRoom(ctx context.Context, link, name, competence, sessionToken string, userID *uuid.UUID) (*domain.Room, *domain.Participant, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	GetRoomByLink(ctx context.Context, link string) (*domain.Room, error)
	ClaimRoom(ctx context.Context, roomID, userID uuid.UUID) error
	DeleteRoom(ctx context.Context, roomID, userID uuid.UUID) error
	MakeAdmin(ctx context.Context, actingID, targetID uuid.UUID) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, actingID, targetID uuid.UUID) (*domain.Participant, error)
}

type StoryInteractor interface {
	CreateStory(ctx context.Context, roomID uuid.UUID, title, description string, participantID uuid.UUID) (*domain.Story, error)
	CreateBulkStories(ctx context.Context, roomID uuid.UUID, inputs []domain.StoryInput, participantID uuid.UUID) ([]*domain.Story, error)
	UpdateStory(ctx context.Context, storyID uuid.UUID, title, description string, participantID uuid.UUID) (*domain.Story, error)
	DeleteStory(ctx context.Context, storyID, participantID uuid.UUID) (*domain.Story, error)
	ReorderStories(ctx context.Context, actingID, roomID uuid.UUID, orders []domain.StoryOrder) error
	SimilarStories(ctx context.Context, roomID uuid.UUID, value, competence string) ([]domain.SimilarStory, error)
}

// VoteProgress accompanies a submitted vote so clients can show how many
// estimates are in without seeing their values.
type VoteProgress struct {
	VoteCount        int
	ParticipantCount int
}

type VotingInteractor interface {
	// SetCurrentStory returns the new current story and, when a
	// mid-voting story was abandoned by the switch, its id.
	SetCurrentStory(ctx context.Context, actingID, roomID, storyID uuid.UUID) (*domain.Story, *uuid.UUID, error)
	StartVoting(ctx context.Context, actingID, storyID uuid.UUID) error
	SubmitVote(ctx context.Context, storyID, participantID uuid.UUID, points string) (VoteProgress, error)
	RevealVotes(ctx context.Context, actingID, storyID uuid.UUID) ([]*domain.Vote, error)
	FinalizeEstimate(ctx context.Context, actingID, storyID uuid.UUID, estimate string) error
}

type UserInteractor interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UserRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error)
}
