package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
)

// In-memory implementations of the repositories. They back the service
// tests and keep the same sentinel error contract as the Postgres ones.

type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*domain.User
	emails map[string]uuid.UUID
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[uuid.UUID]*domain.User),
		emails: make(map[string]uuid.UUID),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emails[user.Email]; ok {
		return ErrUserEmailExists
	}

	u := *user
	r.users[u.ID] = &u
	r.emails[u.Email] = u.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.users[id]
	return &u, nil
}

func (r *InMemoryUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	now := time.Now().UTC()
	user.LastLogin = &now
	return nil
}

// InMemoryStore holds the room-scoped tables together so the room,
// participant, story and vote repositories can share cascade semantics.
type InMemoryStore struct {
	mu           sync.RWMutex
	rooms        map[uuid.UUID]*domain.Room
	links        map[string]uuid.UUID
	participants map[uuid.UUID]*domain.Participant
	stories      map[uuid.UUID]*domain.Story
	votes        map[uuid.UUID]map[uuid.UUID]*domain.Vote // story -> participant -> vote
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		rooms:        make(map[uuid.UUID]*domain.Room),
		links:        make(map[string]uuid.UUID),
		participants: make(map[uuid.UUID]*domain.Participant),
		stories:      make(map[uuid.UUID]*domain.Story),
		votes:        make(map[uuid.UUID]map[uuid.UUID]*domain.Vote),
	}
}

func (s *InMemoryStore) Rooms() RoomRepository               { return &inMemoryRoomRepo{s} }
func (s *InMemoryStore) Participants() ParticipantRepository { return &inMemoryParticipantRepo{s} }
func (s *InMemoryStore) Stories() StoryRepository            { return &inMemoryStoryRepo{s} }
func (s *InMemoryStore) Votes() VoteRepository               { return &inMemoryVoteRepo{s} }

type inMemoryRoomRepo struct{ s *InMemoryStore }

func (r *inMemoryRoomRepo) CreateWithCreator(ctx context.Context, room *domain.Room, creator *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.links[room.Link]; ok {
		return ErrRoomLinkExists
	}

	rm := *room
	rm.Participants = nil
	rm.Stories = nil
	r.s.rooms[rm.ID] = &rm
	r.s.links[rm.Link] = rm.ID

	p := *creator
	r.s.participants[p.ID] = &p
	return nil
}

func (r *inMemoryRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.assembleRoom(id)
}

func (r *inMemoryRoomRepo) GetByLink(ctx context.Context, link string) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.links[link]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r.s.assembleRoom(id)
}

// assembleRoom snapshots a room with its participants (by join time) and
// stories (by order position). Caller holds the lock.
func (s *InMemoryStore) assembleRoom(id uuid.UUID) (*domain.Room, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}

	out := *room
	out.Participants = nil
	out.Stories = nil

	for _, p := range s.participants {
		if p.RoomID == id {
			cp := *p
			out.Participants = append(out.Participants, &cp)
		}
	}
	sort.Slice(out.Participants, func(i, j int) bool {
		return out.Participants[i].JoinedAt.Before(out.Participants[j].JoinedAt)
	})

	for _, st := range s.stories {
		if st.RoomID == id {
			cp := *st
			out.Stories = append(out.Stories, &cp)
		}
	}
	sort.Slice(out.Stories, func(i, j int) bool {
		return out.Stories[i].OrderPosition < out.Stories[j].OrderPosition
	})

	return &out, nil
}

func (r *inMemoryRoomRepo) SetCurrentStory(ctx context.Context, roomID uuid.UUID, storyID *uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.CurrentStoryID = storyID
	return nil
}

func (r *inMemoryRoomRepo) Claim(ctx context.Context, roomID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if room.OwnerID != nil {
		return ErrRoomAlreadyOwned
	}
	uid := userID
	room.OwnerID = &uid
	return nil
}

func (r *inMemoryRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return ErrRoomNotFound
	}

	for pid, p := range r.s.participants {
		if p.RoomID == id {
			delete(r.s.participants, pid)
		}
	}
	for sid, st := range r.s.stories {
		if st.RoomID == id {
			delete(r.s.stories, sid)
			delete(r.s.votes, sid)
		}
	}
	delete(r.s.links, room.Link)
	delete(r.s.rooms, id)
	return nil
}

func (r *inMemoryRoomRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Room
	for _, room := range r.s.rooms {
		if room.OwnerID != nil && *room.OwnerID == userID {
			cp := *room
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type inMemoryParticipantRepo struct{ s *InMemoryStore }

func (r *inMemoryParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *p
	r.s.participants[cp.ID] = &cp
	return nil
}

func (r *inMemoryParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryParticipantRepo) GetBySession(ctx context.Context, roomID uuid.UUID, sessionToken string) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.participants {
		if p.RoomID == roomID && p.SessionToken != "" && p.SessionToken == sessionToken {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (r *inMemoryParticipantRepo) FindAdminByIdentity(ctx context.Context, roomID uuid.UUID, name, competence string) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.participants {
		if p.RoomID == roomID && p.IsAdmin && p.Name == name && p.Competence == competence {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (r *inMemoryParticipantRepo) FindByUser(ctx context.Context, roomID, userID uuid.UUID) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.participants {
		if p.RoomID == roomID && p.UserID != nil && *p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (r *inMemoryParticipantRepo) Rebind(ctx context.Context, id uuid.UUID, sessionToken string, userID *uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	p.SessionToken = sessionToken
	p.UserID = userID
	return nil
}

func (r *inMemoryParticipantRepo) UpdateProfile(ctx context.Context, id uuid.UUID, name, competence string, userID *uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	p.Name = name
	p.Competence = competence
	p.UserID = userID
	return nil
}

func (r *inMemoryParticipantRepo) SetAdmin(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.participants[id]
	if !ok {
		return ErrParticipantNotFound
	}
	p.IsAdmin = true
	return nil
}

func (r *inMemoryParticipantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.participants[id]; !ok {
		return ErrParticipantNotFound
	}
	delete(r.s.participants, id)
	for _, storyVotes := range r.s.votes {
		delete(storyVotes, id)
	}
	return nil
}

func (r *inMemoryParticipantRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Participant
	for _, p := range r.s.participants {
		if p.RoomID == roomID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})
	return result, nil
}

func (r *inMemoryParticipantRepo) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, p := range r.s.participants {
		if p.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

type inMemoryStoryRepo struct{ s *InMemoryStore }

func (r *inMemoryStoryRepo) Create(ctx context.Context, story *domain.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story.OrderPosition = r.s.nextOrderPosition(story.RoomID)
	cp := *story
	r.s.stories[cp.ID] = &cp
	r.s.enforceStoryLimit(story.RoomID)
	return nil
}

func (r *inMemoryStoryRepo) CreateBulk(ctx context.Context, stories []*domain.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(stories) == 0 {
		return nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	roomID := stories[0].RoomID
	pos := r.s.nextOrderPosition(roomID)
	for i, story := range stories {
		story.OrderPosition = pos + i
		cp := *story
		r.s.stories[cp.ID] = &cp
	}
	r.s.enforceStoryLimit(roomID)
	return nil
}

// Caller holds the lock.
func (s *InMemoryStore) nextOrderPosition(roomID uuid.UUID) int {
	max := 0
	for _, st := range s.stories {
		if st.RoomID == roomID && st.OrderPosition > max {
			max = st.OrderPosition
		}
	}
	return max + 1
}

// Caller holds the lock.
func (s *InMemoryStore) enforceStoryLimit(roomID uuid.UUID) {
	var roomStories []*domain.Story
	for _, st := range s.stories {
		if st.RoomID == roomID {
			roomStories = append(roomStories, st)
		}
	}
	if len(roomStories) <= domain.MaxStoriesPerRoom {
		return
	}

	sort.Slice(roomStories, func(i, j int) bool {
		return roomStories[i].OrderPosition > roomStories[j].OrderPosition
	})
	for _, st := range roomStories[domain.MaxStoriesPerRoom:] {
		delete(s.stories, st.ID)
		delete(s.votes, st.ID)
	}
}

func (r *inMemoryStoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	story, ok := r.s.stories[id]
	if !ok {
		return nil, ErrStoryNotFound
	}
	cp := *story
	return &cp, nil
}

func (r *inMemoryStoryRepo) Update(ctx context.Context, id uuid.UUID, title, description string) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story, ok := r.s.stories[id]
	if !ok {
		return nil, ErrStoryNotFound
	}
	story.Title = title
	story.Description = description
	cp := *story
	return &cp, nil
}

func (r *inMemoryStoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stories[id]; !ok {
		return ErrStoryNotFound
	}
	delete(r.s.stories, id)
	delete(r.s.votes, id)
	return nil
}

func (r *inMemoryStoryRepo) Reorder(ctx context.Context, roomID uuid.UUID, orders []domain.StoryOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range orders {
		story, ok := r.s.stories[o.StoryID]
		if !ok || story.RoomID != roomID {
			continue
		}
		story.OrderPosition = o.OrderPosition
	}
	return nil
}

func (r *inMemoryStoryRepo) SetVotingState(ctx context.Context, id uuid.UUID, state domain.VotingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story, ok := r.s.stories[id]
	if !ok {
		return ErrStoryNotFound
	}
	story.VotingState = state
	return nil
}

func (r *inMemoryStoryRepo) SetVotingStateClearVotes(ctx context.Context, id uuid.UUID, state domain.VotingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story, ok := r.s.stories[id]
	if !ok {
		return ErrStoryNotFound
	}
	story.VotingState = state
	delete(r.s.votes, id)
	return nil
}

func (r *inMemoryStoryRepo) Finalize(ctx context.Context, id uuid.UUID, estimate string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story, ok := r.s.stories[id]
	if !ok {
		return ErrStoryNotFound
	}
	story.VotingState = domain.VotingCompleted
	story.FinalEstimate = &estimate
	return nil
}

func (r *inMemoryStoryRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Story
	for _, st := range r.s.stories {
		if st.RoomID == roomID {
			cp := *st
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderPosition < result[j].OrderPosition
	})
	return result, nil
}

func (r *inMemoryStoryRepo) FindByFinalEstimate(ctx context.Context, roomID uuid.UUID, estimate string, limit int) ([]*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Story
	for _, st := range r.s.stories {
		if st.RoomID == roomID && st.VotingState == domain.VotingCompleted &&
			st.FinalEstimate != nil && *st.FinalEstimate == estimate {
			cp := *st
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type inMemoryVoteRepo struct{ s *InMemoryStore }

func (r *inMemoryVoteRepo) Upsert(ctx context.Context, vote *domain.Vote) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	storyVotes, ok := r.s.votes[vote.StoryID]
	if !ok {
		storyVotes = make(map[uuid.UUID]*domain.Vote)
		r.s.votes[vote.StoryID] = storyVotes
	}

	if existing, ok := storyVotes[vote.ParticipantID]; ok {
		existing.ParticipantName = vote.ParticipantName
		existing.Competence = vote.Competence
		existing.Points = vote.Points
		return nil
	}

	cp := *vote
	storyVotes[cp.ParticipantID] = &cp
	return nil
}

func (r *inMemoryVoteRepo) ListByStory(ctx context.Context, storyID uuid.UUID) ([]*domain.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Vote
	for _, v := range r.s.votes[storyID] {
		cp := *v
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryVoteRepo) CountByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.votes[storyID]), nil
}

func (r *inMemoryVoteRepo) DeleteByStory(ctx context.Context, storyID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.votes, storyID)
	return nil
}
