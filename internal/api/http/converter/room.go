package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
)

type RoomResponse struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	EstimationType string                `json:"estimation_type"`
	Link           string                `json:"link"`
	CurrentStoryID *uuid.UUID            `json:"current_story_id,omitempty"`
	OwnerID        *uuid.UUID            `json:"owner_id,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	Participants   []ParticipantResponse `json:"participants"`
	Stories        []StoryResponse       `json:"stories"`
}

type ParticipantResponse struct {
	ID         uuid.UUID  `json:"id"`
	RoomID     uuid.UUID  `json:"room_id"`
	Name       string     `json:"name"`
	Competence string     `json:"competence"`
	IsAdmin    bool       `json:"is_admin"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	JoinedAt   time.Time  `json:"joined_at"`
}

type StoryResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	VotingState   string    `json:"voting_state"`
	FinalEstimate *string   `json:"final_estimate"`
	CreatedBy     uuid.UUID `json:"created_by"`
	OrderPosition int       `json:"order_position"`
	CreatedAt     time.Time `json:"created_at"`
}

type VoteResponse struct {
	ParticipantID   uuid.UUID `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Competence      string    `json:"competence"`
	Points          string    `json:"points"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type SimilarStoryResponse struct {
	Title      string `json:"title"`
	Points     string `json:"points"`
	Competence string `json:"competence"`
}

func RoomToApi(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:             r.ID,
		Name:           r.Name,
		EstimationType: string(r.EstimationType),
		Link:           r.Link,
		CurrentStoryID: r.CurrentStoryID,
		OwnerID:        r.OwnerID,
		CreatedAt:      r.CreatedAt,
		Participants:   ParticipantsToApi(r.Participants),
		Stories:        StoriesToApi(r.Stories),
	}
}

func ParticipantToApi(p *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		ID:         p.ID,
		RoomID:     p.RoomID,
		Name:       p.Name,
		Competence: p.Competence,
		IsAdmin:    p.IsAdmin,
		UserID:     p.UserID,
		JoinedAt:   p.JoinedAt,
	}
}

func ParticipantsToApi(participants []*domain.Participant) []ParticipantResponse {
	result := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, ParticipantToApi(p))
	}
	return result
}

func StoryToApi(s *domain.Story) StoryResponse {
	return StoryResponse{
		ID:            s.ID,
		RoomID:        s.RoomID,
		Title:         s.Title,
		Description:   s.Description,
		VotingState:   string(s.VotingState),
		FinalEstimate: s.FinalEstimate,
		CreatedBy:     s.CreatedBy,
		OrderPosition: s.OrderPosition,
		CreatedAt:     s.CreatedAt,
	}
}

func StoriesToApi(stories []*domain.Story) []StoryResponse {
	result := make([]StoryResponse, 0, len(stories))
	for _, s := range stories {
		result = append(result, StoryToApi(s))
	}
	return result
}

func VoteToApi(v *domain.Vote) VoteResponse {
	return VoteResponse{
		ParticipantID:   v.ParticipantID,
		ParticipantName: v.ParticipantName,
		Competence:      v.Competence,
		Points:          v.Points,
	}
}

func VotesToApi(votes []*domain.Vote) []VoteResponse {
	result := make([]VoteResponse, 0, len(votes))
	for _, v := range votes {
		result = append(result, VoteToApi(v))
	}
	return result
}

func UserToApi(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func SimilarStoriesToApi(stories []domain.SimilarStory) []SimilarStoryResponse {
	result := make([]SimilarStoryResponse, 0, len(stories))
	for _, s := range stories {
		result = append(result, SimilarStoryResponse{
			Title:      s.Title,
			Points:     s.Points,
			Competence: s.Competence,
		})
	}
	return result
}
