package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store  *repository.InMemoryStore
	rooms  *RoomService
	story  *StoryService
	voting *VotingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewInMemoryStore()

	return &testEnv{
		store:  store,
		rooms:  NewRoomService(store.Rooms(), store.Participants(), log),
		story:  NewStoryService(store.Stories(), store.Participants(), log),
		voting: NewVotingService(store.Rooms(), store.Stories(), store.Participants(), store.Votes(), log),
	}
}

// createRoom makes a room with an admin creator and returns both.
func (e *testEnv) createRoom(t *testing.T) (*domain.Room, *domain.Participant) {
	t.Helper()

	room, creator, err := e.rooms.CreateRoom(context.Background(), "sprint planning", domain.EstimationStoryPoints, "alice", "backend", nil)
	require.NoError(t, err)
	return room, creator
}

// join adds a fresh participant to the room.
func (e *testEnv) join(t *testing.T, link, name, competence, sessionToken string) *domain.Participant {
	t.Helper()

	_, p, err := e.rooms.JoinRoom(context.Background(), link, name, competence, sessionToken, nil)
	require.NoError(t, err)
	return p
}

// createStory adds a story authored by the given participant.
func (e *testEnv) createStory(t *testing.T, room *domain.Room, author *domain.Participant, title string) *domain.Story {
	t.Helper()

	story, err := e.story.CreateStory(context.Background(), room.ID, title, "", author.ID)
	require.NoError(t, err)
	return story
}
