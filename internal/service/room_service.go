package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/immxrtalbeast/planning-poker/lib/logger/sl"
)

type RoomService struct {
	rooms        repository.RoomRepository
	participants repository.ParticipantRepository
	log          *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, participants repository.ParticipantRepository, log *slog.Logger) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms:        rooms,
		participants: participants,
		log:          log,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, name string, estimationType domain.EstimationType, creatorName, creatorCompetence string, ownerID *uuid.UUID) (*domain.Room, *domain.Participant, error) {
	const op = "service.room.create"
	log := s.log.With(slog.String("op", op))

	if name == "" {
		return nil, nil, errors.New("room name is required")
	}
	if !estimationType.Valid() {
		return nil, nil, errors.New("unknown estimation type")
	}
	if creatorName == "" {
		return nil, nil, errors.New("creator name is required")
	}

	for {
		room := domain.NewRoom(name, estimationType, ownerID)
		creator := domain.NewParticipant(room.ID, creatorName, creatorCompetence, true, "", ownerID)

		if err := s.rooms.CreateWithCreator(ctx, room, creator); err != nil {
			if errors.Is(err, repository.ErrRoomLinkExists) {
				continue
			}
			log.Error("failed to create room", sl.Err(err))
			return nil, nil, err
		}

		log.Info("room created",
			"room_id", room.ID.String(),
			"estimation_type", string(estimationType),
		)
		room.Participants = []*domain.Participant{creator}
		return room, creator, nil
	}
}

func (s *RoomService) JoinRoom(ctx context.Context, link, name, competence, sessionToken string, userID *uuid.UUID) (*domain.Room, *domain.Participant, error) {
	const op = "service.room.join"
	log := s.log.With(slog.String("op", op))

	if name == "" {
		return nil, nil, errors.New("participant name is required")
	}

	room, err := s.rooms.GetByLink(ctx, link)
	if err != nil {
		return nil, nil, err
	}
	log = log.With(slog.String("room_id", room.ID.String()))

	participant, err := s.resolveParticipant(ctx, room.ID, name, competence, sessionToken, userID)
	if err != nil {
		log.Error("failed to resolve participant", sl.Err(err))
		return nil, nil, err
	}

	// Re-read so the snapshot reflects the join itself.
	room, err = s.rooms.GetByID(ctx, room.ID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("participant joined",
		"participant_id", participant.ID.String(),
		"is_admin", participant.IsAdmin,
	)
	return room, participant, nil
}

// resolveParticipant matches a joiner to a participant row: a session
// token match is a reconnect, an admin with the same identity is the
// creator coming back from a lost session, anyone else is new.
func (s *RoomService) resolveParticipant(ctx context.Context, roomID uuid.UUID, name, competence, sessionToken string, userID *uuid.UUID) (*domain.Participant, error) {
	if sessionToken != "" {
		existing, err := s.participants.GetBySession(ctx, roomID, sessionToken)
		if err == nil {
			if err := s.participants.UpdateProfile(ctx, existing.ID, name, competence, userID); err != nil {
				return nil, err
			}
			existing.Name = name
			existing.Competence = competence
			existing.UserID = userID
			return existing, nil
		}
		if !errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, err
		}
	}

	if reclaimed, err := s.reclaimCreatorIdentity(ctx, roomID, name, competence, sessionToken, userID); err != nil {
		return nil, err
	} else if reclaimed != nil {
		return reclaimed, nil
	}

	participant := domain.NewParticipant(roomID, name, competence, false, sessionToken, userID)
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

// reclaimCreatorIdentity rebinds an unknown joiner to an existing admin
// participant with the same (name, competence) pair, so the room creator
// does not get duplicated after losing browser state. The match has no
// cryptographic binding: anyone who knows the creator's name and
// competence before the creator reconnects can take over that row.
func (s *RoomService) reclaimCreatorIdentity(ctx context.Context, roomID uuid.UUID, name, competence, sessionToken string, userID *uuid.UUID) (*domain.Participant, error) {
	creator, err := s.participants.FindAdminByIdentity(ctx, roomID, name, competence)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.participants.Rebind(ctx, creator.ID, sessionToken, userID); err != nil {
		return nil, err
	}
	s.log.Info("creator identity reclaimed",
		"room_id", roomID.String(),
		"participant_id", creator.ID.String(),
	)
	creator.SessionToken = sessionToken
	creator.UserID = userID
	return creator, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomService) GetRoomByLink(ctx context.Context, link string) (*domain.Room, error) {
	return s.rooms.GetByLink(ctx, link)
}

func (s *RoomService) ClaimRoom(ctx context.Context, roomID, userID uuid.UUID) error {
	const op = "service.room.claim"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID.String()))

	if _, err := s.participants.FindByUser(ctx, roomID, userID); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrNotParticipant
		}
		return err
	}

	if err := s.rooms.Claim(ctx, roomID, userID); err != nil {
		if errors.Is(err, repository.ErrRoomAlreadyOwned) {
			return ErrRoomAlreadyOwned
		}
		return err
	}

	log.Info("room claimed", "user_id", userID.String())
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, roomID, userID uuid.UUID) error {
	const op = "service.room.delete"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID.String()))

	acting, err := s.participants.FindByUser(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if !acting.IsAdmin {
		return ErrUnauthorized
	}

	if err := s.rooms.Delete(ctx, roomID); err != nil {
		log.Error("failed to delete room", sl.Err(err))
		return err
	}

	log.Info("room deleted", "user_id", userID.String())
	return nil
}

func (s *RoomService) MakeAdmin(ctx context.Context, actingID, targetID uuid.UUID) (*domain.Participant, error) {
	if _, err := requireAdmin(ctx, s.participants, actingID); err != nil {
		return nil, err
	}

	target, err := s.participants.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.participants.SetAdmin(ctx, target.ID); err != nil {
		return nil, err
	}

	s.log.Info("participant promoted",
		"participant_id", target.ID.String(),
		"room_id", target.RoomID.String(),
	)
	target.IsAdmin = true
	return target, nil
}

func (s *RoomService) RemoveParticipant(ctx context.Context, actingID, targetID uuid.UUID) (*domain.Participant, error) {
	if actingID == targetID {
		return nil, errors.New("cannot remove yourself")
	}

	acting, err := requireAdmin(ctx, s.participants, actingID)
	if err != nil {
		return nil, err
	}

	target, err := s.participants.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.RoomID != acting.RoomID {
		return nil, ErrUnauthorized
	}

	if err := s.participants.Delete(ctx, target.ID); err != nil {
		return nil, err
	}

	s.log.Info("participant removed",
		"participant_id", target.ID.String(),
		"room_id", target.RoomID.String(),
	)
	return target, nil
}
