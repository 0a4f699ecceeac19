package service

import (
	"context"
	"testing"

	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotingLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	bob := env.join(t, room.Link, "bob", "frontend", "sess-b")
	story := env.createStory(t, room, creator, "checkout page")

	current, interrupted, err := env.voting.SetCurrentStory(ctx, creator.ID, room.ID, story.ID)
	require.NoError(t, err)
	assert.Nil(t, interrupted)
	assert.Equal(t, story.ID, current.ID)

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))

	progress, err := env.voting.SubmitVote(ctx, story.ID, creator.ID, "5")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.VoteCount)
	assert.Equal(t, 2, progress.ParticipantCount)

	progress, err = env.voting.SubmitVote(ctx, story.ID, bob.ID, "8")
	require.NoError(t, err)
	assert.Equal(t, 2, progress.VoteCount)

	votes, err := env.voting.RevealVotes(ctx, creator.ID, story.ID)
	require.NoError(t, err)
	require.Len(t, votes, 2)

	got, err := env.store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingRevealed, got.VotingState)

	require.NoError(t, env.voting.FinalizeEstimate(ctx, creator.ID, story.ID, "8"))

	got, err = env.store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingCompleted, got.VotingState)
	require.NotNil(t, got.FinalEstimate)
	assert.Equal(t, "8", *got.FinalEstimate)
}

func TestSubmitVote_ResubmissionOverwrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "search api")

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))

	progress, err := env.voting.SubmitVote(ctx, story.ID, creator.ID, "3")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.VoteCount)

	progress, err = env.voting.SubmitVote(ctx, story.ID, creator.ID, "13")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.VoteCount)

	votes, err := env.store.Votes().ListByStory(ctx, story.ID)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "13", votes[0].Points)
}

func TestSubmitVote_ClosedStates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "not open yet")

	_, err := env.voting.SubmitVote(ctx, story.ID, creator.ID, "5")
	assert.ErrorIs(t, err, ErrVotingClosed)

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))
	_, err = env.voting.SubmitVote(ctx, story.ID, creator.ID, "5")
	require.NoError(t, err)

	_, err = env.voting.RevealVotes(ctx, creator.ID, story.ID)
	require.NoError(t, err)

	_, err = env.voting.SubmitVote(ctx, story.ID, creator.ID, "8")
	assert.ErrorIs(t, err, ErrVotingClosed)

	_, err = env.voting.SubmitVote(ctx, story.ID, creator.ID, "")
	assert.Error(t, err)
}

func TestSubmitVote_OutsiderRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "internal story")

	_, outsider, err := env.rooms.CreateRoom(ctx, "other room", domain.EstimationHours, "carol", "qa", nil)
	require.NoError(t, err)

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))
	_, err = env.voting.SubmitVote(ctx, story.ID, outsider.ID, "5")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestStartVoting_RestartClearsVotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "flaky round")

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))
	_, err := env.voting.SubmitVote(ctx, story.ID, creator.ID, "5")
	require.NoError(t, err)

	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, story.ID))

	count, err := env.store.Votes().CountByStory(ctx, story.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := env.store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingOpen, got.VotingState)
}

func TestSetCurrentStory_InterruptsOpenRound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	first := env.createStory(t, room, creator, "first")
	second := env.createStory(t, room, creator, "second")

	_, _, err := env.voting.SetCurrentStory(ctx, creator.ID, room.ID, first.ID)
	require.NoError(t, err)
	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, first.ID))
	_, err = env.voting.SubmitVote(ctx, first.ID, creator.ID, "5")
	require.NoError(t, err)

	_, interrupted, err := env.voting.SetCurrentStory(ctx, creator.ID, room.ID, second.ID)
	require.NoError(t, err)
	require.NotNil(t, interrupted)
	assert.Equal(t, first.ID, *interrupted)

	got, err := env.store.Stories().GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingNotStarted, got.VotingState)

	count, err := env.store.Votes().CountByStory(ctx, first.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetCurrentStory_NoInterruptWhenNotVoting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	first := env.createStory(t, room, creator, "first")
	second := env.createStory(t, room, creator, "second")

	_, _, err := env.voting.SetCurrentStory(ctx, creator.ID, room.ID, first.ID)
	require.NoError(t, err)

	// first is still not_started, so switching away keeps it untouched.
	_, interrupted, err := env.voting.SetCurrentStory(ctx, creator.ID, room.ID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, interrupted)

	// Re-selecting the current story is not an interruption either.
	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, second.ID))
	_, interrupted, err = env.voting.SetCurrentStory(ctx, creator.ID, room.ID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, interrupted)

	got, err := env.store.Stories().GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingOpen, got.VotingState)
}

func TestVoting_AdminGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	bob := env.join(t, room.Link, "bob", "frontend", "sess-b")
	story := env.createStory(t, room, creator, "gated")

	_, _, err := env.voting.SetCurrentStory(ctx, bob.ID, room.ID, story.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = env.voting.StartVoting(ctx, bob.ID, story.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.voting.RevealVotes(ctx, bob.ID, story.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = env.voting.FinalizeEstimate(ctx, bob.ID, story.ID, "5")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = env.voting.FinalizeEstimate(ctx, creator.ID, story.ID, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestVoting_CrossRoomStoryRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, adminA := env.createRoom(t)

	roomB, adminB, err := env.rooms.CreateRoom(ctx, "their room", domain.EstimationHours, "carol", "qa", nil)
	require.NoError(t, err)
	story := env.createStory(t, roomB, adminB, "theirs")

	// Admin of room A has no say over room B's lifecycle.
	err = env.voting.StartVoting(ctx, adminA.ID, story.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	_, err = env.voting.RevealVotes(ctx, adminA.ID, story.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	err = env.voting.FinalizeEstimate(ctx, adminA.ID, story.ID, "8")
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	got, err := env.store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VotingNotStarted, got.VotingState)
	assert.Nil(t, got.FinalEstimate)
}

func TestSetCurrentStory_StoryFromAnotherRoom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	otherRoom, otherAdmin, err := env.rooms.CreateRoom(ctx, "other", domain.EstimationHours, "carol", "qa", nil)
	require.NoError(t, err)
	foreign, err := env.story.CreateStory(ctx, otherRoom.ID, "foreign", "", otherAdmin.ID)
	require.NoError(t, err)

	_, _, err = env.voting.SetCurrentStory(ctx, creator.ID, room.ID, foreign.ID)
	assert.Error(t, err)
}
