package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/immxrtalbeast/planning-poker/internal/auth"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *repository.InMemoryStore) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewInMemoryStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return NewUserService(repository.NewInMemoryUserRepository(), store.Rooms(), tokens, log), store
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	got, loginToken, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, loginToken)

	fresh, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLogin)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice@example.com", "another-pass", "alice 2")
	assert.ErrorIs(t, err, repository.ErrUserEmailExists)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "", "pass", "alice")
	assert.Error(t, err)
	_, _, err = svc.Register(ctx, "alice@example.com", "", "alice")
	assert.Error(t, err)
	_, _, err = svc.Register(ctx, "alice@example.com", "pass", "")
	assert.Error(t, err)
}

func TestUserRooms(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)

	mine := domain.NewRoom("mine", domain.EstimationStoryPoints, &user.ID)
	require.NoError(t, store.Rooms().CreateWithCreator(ctx, mine, domain.NewParticipant(mine.ID, "alice", "backend", true, "", &user.ID)))

	theirs := domain.NewRoom("theirs", domain.EstimationHours, nil)
	require.NoError(t, store.Rooms().CreateWithCreator(ctx, theirs, domain.NewParticipant(theirs.ID, "bob", "qa", true, "", nil)))

	rooms, err := svc.UserRooms(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, mine.ID, rooms[0].ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Register(ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
