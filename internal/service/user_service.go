package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/auth"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/immxrtalbeast/planning-poker/lib/logger/sl"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  repository.UserRepository
	rooms  repository.RoomRepository
	tokens *auth.TokenManager
	log    *slog.Logger
}

func NewUserService(users repository.UserRepository, rooms repository.RoomRepository, tokens *auth.TokenManager, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{
		users:  users,
		rooms:  rooms,
		tokens: tokens,
		log:    log,
	}
}

func (s *UserService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	const op = "service.user.register"
	log := s.log.With(slog.String("op", op))

	if email == "" || password == "" || name == "" {
		return nil, "", errors.New("email, password and name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := domain.NewUser(email, string(hash), name)
	if err := s.users.Create(ctx, user); err != nil {
		log.Error("failed to create user", sl.Err(err))
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user registered", "user_id", user.ID.String())
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "service.user.login"
	log := s.log.With(slog.String("op", op))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Error("failed to update last login", sl.Err(err))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user logged in", "user_id", user.ID.String())
	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UserRooms(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	return s.rooms.ListByOwner(ctx, userID)
}
