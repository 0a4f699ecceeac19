package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelUser(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserEmailExists
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(&user), nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toDomainUser(&user), nil
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("last_login", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type PostgresRoomRepository struct {
	db *gorm.DB
}

func NewPostgresRoomRepository(db *gorm.DB) *PostgresRoomRepository {
	return &PostgresRoomRepository{db: db}
}

func (r *PostgresRoomRepository) CreateWithCreator(ctx context.Context, room *domain.Room, creator *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil || creator == nil {
		return errors.New("room and creator are required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toModelRoom(room)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRoomLinkExists
			}
			return err
		}
		return tx.Create(toModelParticipant(creator)).Error
	})
}

func (r *PostgresRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	return r.getRoom(ctx, "id = ?", id)
}

func (r *PostgresRoomRepository) GetByLink(ctx context.Context, link string) (*domain.Room, error) {
	return r.getRoom(ctx, "link = ?", link)
}

func (r *PostgresRoomRepository) getRoom(ctx context.Context, query string, arg any) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Stories", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_position ASC")
		}).
		First(&room, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return toDomainRoom(&room), nil
}

func (r *PostgresRoomRepository) SetCurrentStory(ctx context.Context, roomID uuid.UUID, storyID *uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", roomID).Update("current_story_id", storyID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) Claim(ctx context.Context, roomID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Single conditional statement so two concurrent claims cannot both win.
	res := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND owner_id IS NULL", roomID).
		Update("owner_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRoomNotFound
		}
		return ErrRoomAlreadyOwned
	}
	return nil
}

func (r *PostgresRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *PostgresRoomRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Room, 0, len(rooms))
	for i := range rooms {
		result = append(result, toDomainRoom(&rooms[i]))
	}
	return result, nil
}

type PostgresParticipantRepository struct {
	db *gorm.DB
}

func NewPostgresParticipantRepository(db *gorm.DB) *PostgresParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

func (r *PostgresParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return errors.New("participant is nil")
	}
	return r.db.WithContext(ctx).Create(toModelParticipant(p)).Error
}

func (r *PostgresParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	return r.getParticipant(ctx, "id = ?", id)
}

func (r *PostgresParticipantRepository) GetBySession(ctx context.Context, roomID uuid.UUID, sessionToken string) (*domain.Participant, error) {
	return r.getParticipant(ctx, "room_id = ? AND session_token = ?", roomID, sessionToken)
}

func (r *PostgresParticipantRepository) FindAdminByIdentity(ctx context.Context, roomID uuid.UUID, name, competence string) (*domain.Participant, error) {
	return r.getParticipant(ctx, "room_id = ? AND name = ? AND competence = ? AND is_admin = true", roomID, name, competence)
}

func (r *PostgresParticipantRepository) FindByUser(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error) {
	return r.getParticipant(ctx, "room_id = ? AND user_id = ?", roomID, userID)
}

func (r *PostgresParticipantRepository) getParticipant(ctx context.Context, query string, args ...any) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p model.Participant
	if err := r.db.WithContext(ctx).Where(query, args...).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return toDomainParticipant(&p), nil
}

func (r *PostgresParticipantRepository) Rebind(ctx context.Context, id uuid.UUID, sessionToken string, userID *uuid.UUID) error {
	updates := map[string]any{"user_id": userID}
	if sessionToken == "" {
		updates["session_token"] = gorm.Expr("NULL")
	} else {
		updates["session_token"] = sessionToken
	}
	return r.updateParticipant(ctx, id, updates)
}

func (r *PostgresParticipantRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, competence string, userID *uuid.UUID) error {
	return r.updateParticipant(ctx, id, map[string]any{
		"name":       name,
		"competence": competence,
		"user_id":    userID,
	})
}

func (r *PostgresParticipantRepository) SetAdmin(ctx context.Context, id uuid.UUID) error {
	return r.updateParticipant(ctx, id, map[string]any{"is_admin": true})
}

func (r *PostgresParticipantRepository) updateParticipant(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Participant{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *PostgresParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Participant{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrParticipantNotFound
		}
		return nil
	})
}

func (r *PostgresParticipantRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.Participant
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Participant, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainParticipant(&rows[i]))
	}
	return result, nil
}

func (r *PostgresParticipantRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Participant{}).Where("room_id = ?", roomID).Count(&count).Error
	return int(count), err
}

type PostgresStoryRepository struct {
	db *gorm.DB
}

func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

func (r *PostgresStoryRepository) Create(ctx context.Context, story *domain.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if story == nil {
		return errors.New("story is nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextOrderPosition(tx, story.RoomID)
		if err != nil {
			return err
		}
		story.OrderPosition = pos

		if err := tx.Create(toModelStory(story)).Error; err != nil {
			return err
		}
		return enforceStoryLimit(tx, story.RoomID)
	})
}

func (r *PostgresStoryRepository) CreateBulk(ctx context.Context, stories []*domain.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(stories) == 0 {
		return nil
	}

	roomID := stories[0].RoomID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pos, err := nextOrderPosition(tx, roomID)
		if err != nil {
			return err
		}

		rows := make([]model.Story, 0, len(stories))
		for i, story := range stories {
			story.OrderPosition = pos + i
			rows = append(rows, *toModelStory(story))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return enforceStoryLimit(tx, roomID)
	})
}

func nextOrderPosition(tx *gorm.DB, roomID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(&model.Story{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(MAX(order_position), 0) + 1").
		Scan(&next).Error
	return next, err
}

// enforceStoryLimit evicts the lowest-ranked stories beyond the room cap,
// votes included.
func enforceStoryLimit(tx *gorm.DB, roomID uuid.UUID) error {
	// No LIMIT: a large bulk insert can overshoot the cap by more than
	// one page of rows, and every excess row has to go.
	var excess []uuid.UUID
	err := tx.Model(&model.Story{}).
		Where("room_id = ?", roomID).
		Order("order_position DESC").
		Offset(domain.MaxStoriesPerRoom).
		Limit(-1).
		Pluck("id", &excess).Error
	if err != nil {
		return err
	}
	if len(excess) == 0 {
		return nil
	}

	if err := tx.Where("story_id IN ?", excess).Delete(&model.Vote{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", excess).Delete(&model.Story{}).Error
}

func (r *PostgresStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var story model.Story
	if err := r.db.WithContext(ctx).First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return toDomainStory(&story), nil
}

func (r *PostgresStoryRepository) Update(ctx context.Context, id uuid.UUID, title, description string) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(&model.Story{}).Where("id = ?", id).Updates(map[string]any{
		"title":       title,
		"description": description,
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStoryNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresStoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("story_id = ?", id).Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Story{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStoryNotFound
		}
		return nil
	})
}

func (r *PostgresStoryRepository) Reorder(ctx context.Context, roomID uuid.UUID, orders []domain.StoryOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			err := tx.Model(&model.Story{}).
				Where("id = ? AND room_id = ?", o.StoryID, roomID).
				Update("order_position", o.OrderPosition).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresStoryRepository) SetVotingState(ctx context.Context, id uuid.UUID, state domain.VotingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Story{}).Where("id = ?", id).Update("voting_state", string(state))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *PostgresStoryRepository) SetVotingStateClearVotes(ctx context.Context, id uuid.UUID, state domain.VotingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Story{}).Where("id = ?", id).Update("voting_state", string(state))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStoryNotFound
		}
		return tx.Where("story_id = ?", id).Delete(&model.Vote{}).Error
	})
}

func (r *PostgresStoryRepository) Finalize(ctx context.Context, id uuid.UUID, estimate string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Story{}).Where("id = ?", id).Updates(map[string]any{
		"voting_state":   string(domain.VotingCompleted),
		"final_estimate": estimate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStoryNotFound
	}
	return nil
}

func (r *PostgresStoryRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.Story
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("order_position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Story, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainStory(&rows[i]))
	}
	return result, nil
}

func (r *PostgresStoryRepository) FindByFinalEstimate(ctx context.Context, roomID uuid.UUID, estimate string, limit int) ([]*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.Story
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND voting_state = ? AND final_estimate = ?", roomID, string(domain.VotingCompleted), estimate).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Story, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainStory(&rows[i]))
	}
	return result, nil
}

type PostgresVoteRepository struct {
	db *gorm.DB
}

func NewPostgresVoteRepository(db *gorm.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

func (r *PostgresVoteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if vote == nil {
		return errors.New("vote is nil")
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}, {Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"participant_name", "competence", "points"}),
	}).Create(toModelVote(vote)).Error
}

func (r *PostgresVoteRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []model.Vote
	err := r.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Vote, 0, len(rows))
	for i := range rows {
		result = append(result, toDomainVote(&rows[i]))
	}
	return result, nil
}

func (r *PostgresVoteRepository) CountByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vote{}).Where("story_id = ?", storyID).Count(&count).Error
	return int(count), err
}

func (r *PostgresVoteRepository) DeleteByStory(ctx context.Context, storyID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("story_id = ?", storyID).Delete(&model.Vote{}).Error
}

func toModelUser(u *domain.User) *model.User {
	return &model.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt.UTC(),
		LastLogin:    u.LastLogin,
	}
}

func toDomainUser(u *model.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		CreatedAt:    u.CreatedAt.UTC(),
		LastLogin:    u.LastLogin,
	}
}

func toModelRoom(r *domain.Room) *model.Room {
	return &model.Room{
		ID:             r.ID,
		Name:           r.Name,
		EstimationType: string(r.EstimationType),
		Link:           r.Link,
		CurrentStoryID: r.CurrentStoryID,
		OwnerID:        r.OwnerID,
		CreatedAt:      r.CreatedAt.UTC(),
	}
}

func toDomainRoom(r *model.Room) *domain.Room {
	participants := make([]*domain.Participant, 0, len(r.Participants))
	for i := range r.Participants {
		participants = append(participants, toDomainParticipant(&r.Participants[i]))
	}

	stories := make([]*domain.Story, 0, len(r.Stories))
	for i := range r.Stories {
		stories = append(stories, toDomainStory(&r.Stories[i]))
	}

	return &domain.Room{
		ID:             r.ID,
		Name:           r.Name,
		EstimationType: domain.EstimationType(r.EstimationType),
		Link:           r.Link,
		CurrentStoryID: r.CurrentStoryID,
		OwnerID:        r.OwnerID,
		CreatedAt:      r.CreatedAt.UTC(),
		Participants:   participants,
		Stories:        stories,
	}
}

func toModelParticipant(p *domain.Participant) *model.Participant {
	var token *string
	if p.SessionToken != "" {
		t := p.SessionToken
		token = &t
	}
	return &model.Participant{
		ID:           p.ID,
		RoomID:       p.RoomID,
		Name:         p.Name,
		Competence:   p.Competence,
		IsAdmin:      p.IsAdmin,
		SessionToken: token,
		UserID:       p.UserID,
		JoinedAt:     p.JoinedAt.UTC(),
	}
}

func toDomainParticipant(p *model.Participant) *domain.Participant {
	token := ""
	if p.SessionToken != nil {
		token = *p.SessionToken
	}
	return &domain.Participant{
		ID:           p.ID,
		RoomID:       p.RoomID,
		Name:         p.Name,
		Competence:   p.Competence,
		IsAdmin:      p.IsAdmin,
		SessionToken: token,
		UserID:       p.UserID,
		JoinedAt:     p.JoinedAt.UTC(),
	}
}

func toModelStory(s *domain.Story) *model.Story {
	return &model.Story{
		ID:            s.ID,
		RoomID:        s.RoomID,
		Title:         s.Title,
		Description:   s.Description,
		VotingState:   string(s.VotingState),
		FinalEstimate: s.FinalEstimate,
		CreatedBy:     s.CreatedBy,
		OrderPosition: s.OrderPosition,
		CreatedAt:     s.CreatedAt.UTC(),
	}
}

func toDomainStory(s *model.Story) *domain.Story {
	return &domain.Story{
		ID:            s.ID,
		RoomID:        s.RoomID,
		Title:         s.Title,
		Description:   s.Description,
		VotingState:   domain.VotingState(s.VotingState),
		FinalEstimate: s.FinalEstimate,
		CreatedBy:     s.CreatedBy,
		OrderPosition: s.OrderPosition,
		CreatedAt:     s.CreatedAt.UTC(),
	}
}

func toModelVote(v *domain.Vote) *model.Vote {
	return &model.Vote{
		ID:              v.ID,
		StoryID:         v.StoryID,
		ParticipantID:   v.ParticipantID,
		ParticipantName: v.ParticipantName,
		Competence:      v.Competence,
		Points:          v.Points,
		CreatedAt:       v.CreatedAt.UTC(),
	}
}

func toDomainVote(v *model.Vote) *domain.Vote {
	return &domain.Vote{
		ID:              v.ID,
		StoryID:         v.StoryID,
		ParticipantID:   v.ParticipantID,
		ParticipantName: v.ParticipantName,
		Competence:      v.Competence,
		Points:          v.Points,
		CreatedAt:       v.CreatedAt.UTC(),
	}
}
