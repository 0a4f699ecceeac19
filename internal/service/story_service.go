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

const similarStoriesLimit = 10

type StoryService struct {
	stories      repository.StoryRepository
	participants repository.ParticipantRepository
	log          *slog.Logger
}

func NewStoryService(stories repository.StoryRepository, participants repository.ParticipantRepository, log *slog.Logger) *StoryService {
	if log == nil {
		log = slog.Default()
	}
	return &StoryService{
		stories:      stories,
		participants: participants,
		log:          log,
	}
}

func (s *StoryService) CreateStory(ctx context.Context, roomID uuid.UUID, title, description string, participantID uuid.UUID) (*domain.Story, error) {
	const op = "service.story.create"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID.String()))

	if title == "" {
		return nil, errors.New("story title is required")
	}
	if err := s.ensureMember(ctx, roomID, participantID); err != nil {
		return nil, err
	}

	story := domain.NewStory(roomID, title, description, participantID)
	if err := s.stories.Create(ctx, story); err != nil {
		log.Error("failed to create story", sl.Err(err))
		return nil, err
	}

	log.Info("story created", "story_id", story.ID.String())
	return story, nil
}

func (s *StoryService) CreateBulkStories(ctx context.Context, roomID uuid.UUID, inputs []domain.StoryInput, participantID uuid.UUID) ([]*domain.Story, error) {
	const op = "service.story.createBulk"
	log := s.log.With(slog.String("op", op), slog.String("room_id", roomID.String()))

	if len(inputs) == 0 {
		return nil, errors.New("story list is empty")
	}
	if err := s.ensureMember(ctx, roomID, participantID); err != nil {
		return nil, err
	}

	stories := make([]*domain.Story, 0, len(inputs))
	for _, in := range inputs {
		if in.Title == "" {
			return nil, errors.New("story title is required")
		}
		stories = append(stories, domain.NewStory(roomID, in.Title, in.Description, participantID))
	}

	if err := s.stories.CreateBulk(ctx, stories); err != nil {
		log.Error("failed to create stories", sl.Err(err))
		return nil, err
	}

	log.Info("stories created", "count", len(stories))
	return stories, nil
}

func (s *StoryService) ensureMember(ctx context.Context, roomID, participantID uuid.UUID) error {
	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if participant.RoomID != roomID {
		return ErrNotParticipant
	}
	return nil
}

func (s *StoryService) UpdateStory(ctx context.Context, storyID uuid.UUID, title, description string, participantID uuid.UUID) (*domain.Story, error) {
	if title == "" {
		return nil, errors.New("story title is required")
	}
	if _, err := s.memberStory(ctx, storyID, participantID); err != nil {
		return nil, err
	}
	return s.stories.Update(ctx, storyID, title, description)
}

func (s *StoryService) DeleteStory(ctx context.Context, storyID, participantID uuid.UUID) (*domain.Story, error) {
	story, err := s.memberStory(ctx, storyID, participantID)
	if err != nil {
		return nil, err
	}
	if err := s.stories.Delete(ctx, storyID); err != nil {
		return nil, err
	}
	s.log.Info("story deleted",
		"story_id", storyID.String(),
		"room_id", story.RoomID.String(),
	)
	return story, nil
}

// memberStory resolves the story and rejects it when the acting
// participant belongs to a different room. Cross-room ids read as
// not found.
func (s *StoryService) memberStory(ctx context.Context, storyID, participantID uuid.UUID) (*domain.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant.RoomID != story.RoomID {
		return nil, repository.ErrStoryNotFound
	}
	return story, nil
}

func (s *StoryService) ReorderStories(ctx context.Context, actingID, roomID uuid.UUID, orders []domain.StoryOrder) error {
	if _, err := requireAdmin(ctx, s.participants, actingID); err != nil {
		return err
	}
	if len(orders) == 0 {
		return errors.New("story order list is empty")
	}
	return s.stories.Reorder(ctx, roomID, orders)
}

// SimilarStories returns completed stories whose final estimate exactly
// matches value, newest first. The competence is an annotation for the
// asking voter, not a stored fact.
func (s *StoryService) SimilarStories(ctx context.Context, roomID uuid.UUID, value, competence string) ([]domain.SimilarStory, error) {
	if value == "" {
		return nil, errors.New("vote value is required")
	}

	stories, err := s.stories.FindByFinalEstimate(ctx, roomID, value, similarStoriesLimit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.SimilarStory, 0, len(stories))
	for _, story := range stories {
		result = append(result, domain.SimilarStory{
			Title:      story.Title,
			Points:     *story.FinalEstimate,
			Competence: competence,
		})
	}
	return result, nil
}
