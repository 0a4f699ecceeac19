package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	story := env.createStory(t, room, creator, "login flow")

	assert.Equal(t, domain.VotingNotStarted, story.VotingState)
	assert.Equal(t, 1, story.OrderPosition)
	assert.Nil(t, story.FinalEstimate)

	second := env.createStory(t, room, creator, "signup flow")
	assert.Equal(t, 2, second.OrderPosition)

	_, err := env.story.CreateStory(ctx, room.ID, "", "", creator.ID)
	assert.Error(t, err)
}

func TestCreateStory_NonMemberRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, _ := env.createRoom(t)

	_, otherAdmin, err := env.rooms.CreateRoom(ctx, "other", domain.EstimationHours, "carol", "qa", nil)
	require.NoError(t, err)

	_, err = env.story.CreateStory(ctx, room.ID, "sneaky", "", otherAdmin.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestCreateBulkStories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	stories, err := env.story.CreateBulkStories(ctx, room.ID, []domain.StoryInput{
		{Title: "one"},
		{Title: "two", Description: "with detail"},
		{Title: "three"},
	}, creator.ID)
	require.NoError(t, err)
	require.Len(t, stories, 3)

	assert.Equal(t, 1, stories[0].OrderPosition)
	assert.Equal(t, 2, stories[1].OrderPosition)
	assert.Equal(t, 3, stories[2].OrderPosition)

	_, err = env.story.CreateBulkStories(ctx, room.ID, nil, creator.ID)
	assert.Error(t, err)

	_, err = env.story.CreateBulkStories(ctx, room.ID, []domain.StoryInput{{Title: ""}}, creator.ID)
	assert.Error(t, err)
}

func TestStoryRetentionCap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	var first *domain.Story
	for i := 0; i < domain.MaxStoriesPerRoom; i++ {
		story := env.createStory(t, room, creator, fmt.Sprintf("story %03d", i))
		if first == nil {
			first = story
		}
	}

	// A vote on the oldest story must go away with it.
	require.NoError(t, env.voting.StartVoting(ctx, creator.ID, first.ID))
	_, err := env.voting.SubmitVote(ctx, first.ID, creator.ID, "5")
	require.NoError(t, err)

	env.createStory(t, room, creator, "one past the cap")

	snapshot, err := env.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, snapshot.Stories, domain.MaxStoriesPerRoom)

	_, err = env.story.DeleteStory(ctx, first.ID, creator.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	votes, err := env.store.Votes().ListByStory(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestStoryRetentionCap_BulkOvershoot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	for i := 0; i < domain.MaxStoriesPerRoom; i++ {
		env.createStory(t, room, creator, fmt.Sprintf("old %03d", i))
	}

	// Overshooting the cap by more than the cap itself must still
	// evict every excess row, not just the first hundred.
	inputs := make([]domain.StoryInput, 0, 150)
	for i := 0; i < 150; i++ {
		inputs = append(inputs, domain.StoryInput{Title: fmt.Sprintf("new %03d", i)})
	}
	_, err := env.story.CreateBulkStories(ctx, room.ID, inputs, creator.ID)
	require.NoError(t, err)

	snapshot, err := env.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Stories, domain.MaxStoriesPerRoom)
	for _, s := range snapshot.Stories {
		assert.Contains(t, s.Title, "new")
	}
}

func TestUpdateStory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "draft title")

	updated, err := env.story.UpdateStory(ctx, story.ID, "final title", "now with text", creator.ID)
	require.NoError(t, err)
	assert.Equal(t, "final title", updated.Title)
	assert.Equal(t, "now with text", updated.Description)

	_, err = env.story.UpdateStory(ctx, story.ID, "", "", creator.ID)
	assert.Error(t, err)
}

func TestDeleteStory_ReturnsDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	story := env.createStory(t, room, creator, "doomed")

	deleted, err := env.story.DeleteStory(ctx, story.ID, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, story.ID, deleted.ID)

	_, err = env.story.DeleteStory(ctx, story.ID, creator.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)
}

func TestReorderStories_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)
	bob := env.join(t, room.Link, "bob", "frontend", "sess-b")

	a := env.createStory(t, room, creator, "a")
	b := env.createStory(t, room, creator, "b")

	err := env.story.ReorderStories(ctx, bob.ID, room.ID, []domain.StoryOrder{
		{StoryID: a.ID, OrderPosition: 2},
		{StoryID: b.ID, OrderPosition: 1},
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.story.ReorderStories(ctx, creator.ID, room.ID, []domain.StoryOrder{
		{StoryID: a.ID, OrderPosition: 2},
		{StoryID: b.ID, OrderPosition: 1},
	}))

	snapshot, err := env.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, snapshot.Stories, 2)
	assert.Equal(t, b.ID, snapshot.Stories[0].ID)
	assert.Equal(t, a.ID, snapshot.Stories[1].ID)
}

func TestStoryMutation_CrossRoomRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, memberA := env.createRoom(t)

	roomB, adminB, err := env.rooms.CreateRoom(ctx, "their room", domain.EstimationHours, "carol", "qa", nil)
	require.NoError(t, err)
	story := env.createStory(t, roomB, adminB, "theirs")

	_, err = env.story.UpdateStory(ctx, story.ID, "hijacked", "", memberA.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	_, err = env.story.DeleteStory(ctx, story.ID, memberA.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)

	got, err := env.store.Stories().GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "theirs", got.Title)
}

func TestSimilarStories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room, creator := env.createRoom(t)

	for i := 0; i < 12; i++ {
		story := env.createStory(t, room, creator, fmt.Sprintf("done %02d", i))
		require.NoError(t, env.voting.FinalizeEstimate(ctx, creator.ID, story.ID, "8"))
	}
	other := env.createStory(t, room, creator, "different estimate")
	require.NoError(t, env.voting.FinalizeEstimate(ctx, creator.ID, other.ID, "13"))
	env.createStory(t, room, creator, "never estimated")

	similar, err := env.story.SimilarStories(ctx, room.ID, "8", "backend")
	require.NoError(t, err)

	assert.Len(t, similar, 10)
	for _, s := range similar {
		assert.Equal(t, "8", s.Points)
		assert.Equal(t, "backend", s.Competence)
		assert.NotEqual(t, "different estimate", s.Title)
		assert.NotEqual(t, "never estimated", s.Title)
	}

	none, err := env.story.SimilarStories(ctx, room.ID, "55", "backend")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = env.story.SimilarStories(ctx, room.ID, "", "backend")
	assert.Error(t, err)
}
