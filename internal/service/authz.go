package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
)

// requireAdmin is the single authorization gate for admin-only commands.
// Every admin-gated operation resolves the acting participant here and
// gets a uniform ErrUnauthorized back.
func requireAdmin(ctx context.Context, participants repository.ParticipantRepository, actingID uuid.UUID) (*domain.Participant, error) {
	acting, err := participants.GetByID(ctx, actingID)
	if err != nil {
		return nil, err
	}
	if !acting.IsAdmin {
		return nil, ErrUnauthorized
	}
	return acting, nil
}
