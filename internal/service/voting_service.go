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

// VotingService drives the per-story lifecycle:
// not_started -> voting -> revealed -> completed, with a restart
// (voting -> voting, votes cleared) and an interrupt when the room's
// current story is switched away mid-vote.
type VotingService struct {
	rooms        repository.RoomRepository
	stories      repository.StoryRepository
	participants repository.ParticipantRepository
	votes        repository.VoteRepository
	log          *slog.Logger
}

func NewVotingService(
	rooms repository.RoomRepository,
	stories repository.StoryRepository,
	participants repository.ParticipantRepository,
	votes repository.VoteRepository,
	log *slog.Logger,
) *VotingService {
	if log == nil {
		log = slog.Default()
	}
	return &VotingService{
		rooms:        rooms,
		stories:      stories,
		participants: participants,
		votes:        votes,
		log:          log,
	}
}

// adminStory resolves the acting admin and the story, rejecting stories
// outside the admin's room. Cross-room story ids read as not found.
func (s *VotingService) adminStory(ctx context.Context, actingID, storyID uuid.UUID) (*domain.Story, error) {
	acting, err := requireAdmin(ctx, s.participants, actingID)
	if err != nil {
		return nil, err
	}

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.RoomID != acting.RoomID {
		return nil, repository.ErrStoryNotFound
	}
	return story, nil
}

func (s *VotingService) SetCurrentStory(ctx context.Context, actingID, roomID, storyID uuid.UUID) (*domain.Story, *uuid.UUID, error) {
	const op = "service.voting.setCurrentStory"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID.String()))

	if _, err := requireAdmin(ctx, s.participants, actingID); err != nil {
		return nil, nil, err
	}

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}
	if story.RoomID != roomID {
		return nil, nil, repository.ErrStoryNotFound
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	// Navigating away from a story mid-vote invalidates that round:
	// the abandoned story goes back to not_started with its votes purged.
	var interrupted *uuid.UUID
	if room.CurrentStoryID != nil && *room.CurrentStoryID != storyID {
		prev, err := s.stories.GetByID(ctx, *room.CurrentStoryID)
		if err == nil && prev.VotingState == domain.VotingOpen {
			if err := s.stories.SetVotingStateClearVotes(ctx, prev.ID, domain.VotingNotStarted); err != nil {
				return nil, nil, err
			}
			prevID := prev.ID
			interrupted = &prevID
			log.Info("voting interrupted", "story_id", prevID.String())
		} else if err != nil && !errors.Is(err, repository.ErrStoryNotFound) {
			return nil, nil, err
		}
	}

	if err := s.rooms.SetCurrentStory(ctx, roomID, &storyID); err != nil {
		return nil, nil, err
	}

	log.Info("current story set", "story_id", storyID.String())
	return story, interrupted, nil
}

// StartVoting opens (or restarts) a round: prior votes are always cleared.
func (s *VotingService) StartVoting(ctx context.Context, actingID, storyID uuid.UUID) error {
	const op = "service.voting.start"
	log := s.log.With(slog.String("op", op), slog.String("story_id", storyID.String()))

	if _, err := s.adminStory(ctx, actingID, storyID); err != nil {
		return err
	}

	if err := s.stories.SetVotingStateClearVotes(ctx, storyID, domain.VotingOpen); err != nil {
		log.Error("failed to start voting", sl.Err(err))
		return err
	}

	log.Info("voting started")
	return nil
}

func (s *VotingService) SubmitVote(ctx context.Context, storyID, participantID uuid.UUID, points string) (VoteProgress, error) {
	const op = "service.voting.submit"
	log := s.log.With(slog.String("op", op), slog.String("story_id", storyID.String()))

	if points == "" {
		return VoteProgress{}, errors.New("points value is required")
	}

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return VoteProgress{}, err
	}
	if story.VotingState != domain.VotingOpen {
		return VoteProgress{}, ErrVotingClosed
	}

	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return VoteProgress{}, err
	}
	if participant.RoomID != story.RoomID {
		return VoteProgress{}, ErrNotParticipant
	}

	if err := s.votes.Upsert(ctx, domain.NewVote(storyID, participant, points)); err != nil {
		log.Error("failed to store vote", sl.Err(err))
		return VoteProgress{}, err
	}

	voteCount, err := s.votes.CountByStory(ctx, storyID)
	if err != nil {
		return VoteProgress{}, err
	}
	participantCount, err := s.participants.CountByRoom(ctx, story.RoomID)
	if err != nil {
		return VoteProgress{}, err
	}

	log.Info("vote submitted",
		"participant_id", participantID.String(),
		"vote_count", voteCount,
	)
	return VoteProgress{VoteCount: voteCount, ParticipantCount: participantCount}, nil
}

func (s *VotingService) RevealVotes(ctx context.Context, actingID, storyID uuid.UUID) ([]*domain.Vote, error) {
	const op = "service.voting.reveal"
	log := s.log.With(slog.String("op", op), slog.String("story_id", storyID.String()))

	if _, err := s.adminStory(ctx, actingID, storyID); err != nil {
		return nil, err
	}

	if err := s.stories.SetVotingState(ctx, storyID, domain.VotingRevealed); err != nil {
		return nil, err
	}

	votes, err := s.votes.ListByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	log.Info("votes revealed", "count", len(votes))
	return votes, nil
}

func (s *VotingService) FinalizeEstimate(ctx context.Context, actingID, storyID uuid.UUID, estimate string) error {
	const op = "service.voting.finalize"
	log := s.log.With(slog.String("op", op), slog.String("story_id", storyID.String()))

	if estimate == "" {
		return errors.New("final estimate is required")
	}
	if _, err := s.adminStory(ctx, actingID, storyID); err != nil {
		return err
	}

	if err := s.stories.Finalize(ctx, storyID, estimate); err != nil {
		log.Error("failed to finalize estimate", sl.Err(err))
		return err
	}

	log.Info("estimate finalized", "final_estimate", estimate)
	return nil
}
