package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/planning-poker/internal/api/http/converter"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/hub"
	"github.com/immxrtalbeast/planning-poker/internal/service"
	"github.com/immxrtalbeast/planning-poker/lib/logger/sl"
)

// Client -> server command types.
const (
	cmdJoinRoomByLink    = "join_room_by_link"
	cmdCreateStory       = "create_story"
	cmdCreateBulkStories = "create_bulk_stories"
	cmdUpdateStory       = "update_story"
	cmdDeleteStory       = "delete_story"
	cmdReorderStories    = "reorder_stories"
	cmdSetCurrentStory   = "set_current_story"
	cmdStartVoting       = "start_voting"
	cmdSubmitVote        = "submit_vote"
	cmdRevealVotes       = "reveal_votes"
	cmdFinalizeEstimate  = "finalize_estimate"
	cmdGetSimilarStories = "get_similar_stories"
	cmdMakeAdmin         = "make_admin"
	cmdRemoveParticipant = "remove_participant"
)

// Server -> client event types.
const (
	evRoomJoined                = "room_joined"
	evParticipantJoined         = "participant_joined"
	evStoryCreated              = "story_created"
	evBulkStoriesCreated        = "bulk_stories_created"
	evStoryUpdated              = "story_updated"
	evStoryDeleted              = "story_deleted"
	evStoriesReordered          = "stories_reordered"
	evCurrentStorySet           = "current_story_set"
	evVotingInterrupted         = "voting_interrupted"
	evVotingStarted             = "voting_started"
	evVoteSubmitted             = "vote_submitted"
	evVotesRevealed             = "votes_revealed"
	evEstimateFinalized         = "estimate_finalized"
	evSimilarStories            = "similar_stories"
	evAdminPromoted             = "admin_promoted"
	evParticipantRemoved        = "participant_removed"
	evParticipantRemovedByAdmin = "participant_removed_by_admin"
	evParticipantsUpdated       = "participants_updated"
	evError                     = "error"
)

type command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SocketController struct {
	rooms    service.RoomInteractor
	stories  service.StoryInteractor
	voting   service.VotingInteractor
	hub      *hub.Hub
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewSocketController(
	rooms service.RoomInteractor,
	stories service.StoryInteractor,
	voting service.VotingInteractor,
	h *hub.Hub,
	log *slog.Logger,
) *SocketController {
	if log == nil {
		log = slog.Default()
	}
	return &SocketController{
		rooms:   rooms,
		stories: stories,
		voting:  voting,
		hub:     h,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// session is the per-connection state established by a successful join.
type session struct {
	roomID        uuid.UUID
	participantID uuid.UUID
	userID        *uuid.UUID
	client        *hub.Client
}

// Serve owns one websocket connection: the first accepted command must be
// join_room_by_link, after which the room's commands are dispatched one at
// a time until the socket closes.
func (c *SocketController) Serve(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to upgrade connection")
		return
	}
	defer conn.Close()

	sess := &session{userID: optionalUserID(ctx)}

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			c.teardown(sess)
			return
		}

		if sess.client == nil {
			if cmd.Type != cmdJoinRoomByLink {
				_ = conn.WriteJSON(hub.Event{Type: evError, Payload: gin.H{"message": "join the room first"}})
				continue
			}
			if err := c.handleJoin(conn, sess, cmd.Payload); err != nil {
				_ = conn.WriteJSON(hub.Event{Type: evError, Payload: gin.H{"message": err.Error()}})
			}
			continue
		}

		if err := c.dispatch(sess, cmd); err != nil {
			// The acting client alone hears about the failure.
			c.sendToClient(sess.client, hub.Event{Type: evError, Payload: gin.H{"message": err.Error()}})
		}
	}
}

func (c *SocketController) teardown(sess *session) {
	if sess.client == nil {
		return
	}
	c.hub.Unsubscribe(sess.client)
	c.broadcastRoster(sess.roomID)
	sess.client = nil
}

func (c *SocketController) handleJoin(conn *websocket.Conn, sess *session, payload json.RawMessage) error {
	var req struct {
		Link         string `json:"encrypted_link"`
		Name         string `json:"name"`
		Competence   string `json:"competence"`
		SessionToken string `json:"session_id"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return errors.New("invalid join payload")
	}

	room, participant, err := c.rooms.JoinRoom(context.Background(), req.Link, req.Name, req.Competence, req.SessionToken, sess.userID)
	if err != nil {
		c.log.Info("join rejected", sl.Err(err))
		return err
	}

	sess.roomID = room.ID
	sess.participantID = participant.ID
	sess.client = c.hub.Subscribe(room.ID, participant.ID)

	go writePump(conn, sess.client)

	var currentStory *converter.StoryResponse
	if room.CurrentStoryID != nil {
		for _, story := range room.Stories {
			if story.ID == *room.CurrentStoryID {
				resp := converter.StoryToApi(story)
				currentStory = &resp
				break
			}
		}
	}

	c.sendToClient(sess.client, hub.Event{Type: evRoomJoined, Payload: gin.H{
		"room_id":          room.ID,
		"room_name":        room.Name,
		"estimation_type":  string(room.EstimationType),
		"estimation_scale": room.EstimationType.Scale(),
		"participant":      converter.ParticipantToApi(participant),
		"participants":     converter.ParticipantsToApi(room.Participants),
		"stories":          converter.StoriesToApi(room.Stories),
		"current_story":    currentStory,
	}})

	c.hub.BroadcastExcept(room.ID, participant.ID, hub.Event{Type: evParticipantJoined, Payload: gin.H{
		"participant": converter.ParticipantToApi(participant),
	}})
	c.broadcastRoster(room.ID)
	return nil
}

// writePump forwards queued events to the socket until the hub closes the
// queue (leave or kick) or the write fails.
func writePump(conn *websocket.Conn, client *hub.Client) {
	for msg := range client.Receive() {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	conn.Close()
}

func (c *SocketController) sendToClient(client *hub.Client, event hub.Event) {
	c.hub.Send(client.RoomID, client.ParticipantID, event)
}

func (c *SocketController) broadcastRoster(roomID uuid.UUID) {
	c.hub.Broadcast(roomID, hub.Event{Type: evParticipantsUpdated, Payload: gin.H{
		"participant_ids": c.hub.ConnectedIDs(roomID),
	}})
}

func (c *SocketController) dispatch(sess *session, cmd command) error {
	ctx := context.Background()

	switch cmd.Type {
	case cmdJoinRoomByLink:
		return errors.New("already joined")

	case cmdCreateStory:
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		story, err := c.stories.CreateStory(ctx, sess.roomID, req.Title, req.Description, sess.participantID)
		if err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evStoryCreated, Payload: gin.H{
			"story": converter.StoryToApi(story),
		}})

	case cmdCreateBulkStories:
		var req struct {
			Stories []struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"stories"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		inputs := make([]domain.StoryInput, 0, len(req.Stories))
		for _, s := range req.Stories {
			inputs = append(inputs, domain.StoryInput{Title: s.Title, Description: s.Description})
		}
		stories, err := c.stories.CreateBulkStories(ctx, sess.roomID, inputs, sess.participantID)
		if err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evBulkStoriesCreated, Payload: gin.H{
			"stories": converter.StoriesToApi(stories),
		}})

	case cmdUpdateStory:
		var req struct {
			StoryID     uuid.UUID `json:"story_id"`
			Title       string    `json:"title"`
			Description string    `json:"description"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		story, err := c.stories.UpdateStory(ctx, req.StoryID, req.Title, req.Description, sess.participantID)
		if err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evStoryUpdated, Payload: gin.H{
			"story": converter.StoryToApi(story),
		}})

	case cmdDeleteStory:
		var req struct {
			StoryID uuid.UUID `json:"story_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		if _, err := c.stories.DeleteStory(ctx, req.StoryID, sess.participantID); err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evStoryDeleted, Payload: gin.H{
			"story_id": req.StoryID,
		}})

	case cmdReorderStories:
		var req struct {
			StoryOrders []struct {
				StoryID       uuid.UUID `json:"story_id"`
				OrderPosition int       `json:"order_position"`
			} `json:"story_orders"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		orders := make([]domain.StoryOrder, 0, len(req.StoryOrders))
		for _, o := range req.StoryOrders {
			orders = append(orders, domain.StoryOrder{StoryID: o.StoryID, OrderPosition: o.OrderPosition})
		}
		if err := c.stories.ReorderStories(ctx, sess.participantID, sess.roomID, orders); err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evStoriesReordered, Payload: gin.H{
			"story_orders": req.StoryOrders,
		}})

	case cmdSetCurrentStory:
		var req struct {
			StoryID uuid.UUID `json:"story_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		story, interrupted, err := c.voting.SetCurrentStory(ctx, sess.participantID, sess.roomID, req.StoryID)
		if err != nil {
			return err
		}
		if interrupted != nil {
			c.hub.Broadcast(sess.roomID, hub.Event{Type: evVotingInterrupted, Payload: gin.H{
				"story_id": *interrupted,
			}})
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evCurrentStorySet, Payload: gin.H{
			"story": converter.StoryToApi(story),
		}})

	case cmdStartVoting:
		var req struct {
			StoryID uuid.UUID `json:"story_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		if err := c.voting.StartVoting(ctx, sess.participantID, req.StoryID); err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evVotingStarted, Payload: gin.H{
			"story_id": req.StoryID,
		}})

	case cmdSubmitVote:
		var req struct {
			StoryID uuid.UUID `json:"story_id"`
			Points  string    `json:"points"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		progress, err := c.voting.SubmitVote(ctx, req.StoryID, sess.participantID, req.Points)
		if err != nil {
			return err
		}
		// Aggregate counts only: values stay blind until reveal.
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evVoteSubmitted, Payload: gin.H{
			"vote_count":        progress.VoteCount,
			"participant_count": progress.ParticipantCount,
		}})

	case cmdRevealVotes:
		var req struct {
			StoryID uuid.UUID `json:"story_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		votes, err := c.voting.RevealVotes(ctx, sess.participantID, req.StoryID)
		if err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evVotesRevealed, Payload: gin.H{
			"story_id": req.StoryID,
			"votes":    converter.VotesToApi(votes),
		}})

	case cmdFinalizeEstimate:
		var req struct {
			StoryID       uuid.UUID `json:"story_id"`
			FinalEstimate string    `json:"final_estimate"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		if err := c.voting.FinalizeEstimate(ctx, sess.participantID, req.StoryID, req.FinalEstimate); err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evEstimateFinalized, Payload: gin.H{
			"story_id":       req.StoryID,
			"final_estimate": req.FinalEstimate,
		}})

	case cmdGetSimilarStories:
		var req struct {
			VoteValue  string `json:"vote_value"`
			Competence string `json:"competence"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		stories, err := c.stories.SimilarStories(ctx, sess.roomID, req.VoteValue, req.Competence)
		if err != nil {
			return err
		}
		// Targeted reply to the asking voter, not a broadcast.
		c.sendToClient(sess.client, hub.Event{Type: evSimilarStories, Payload: gin.H{
			"stories": converter.SimilarStoriesToApi(stories),
		}})

	case cmdMakeAdmin:
		var req struct {
			TargetParticipantID uuid.UUID `json:"target_participant_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		target, err := c.rooms.MakeAdmin(ctx, sess.participantID, req.TargetParticipantID)
		if err != nil {
			return err
		}
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evAdminPromoted, Payload: gin.H{
			"participant": converter.ParticipantToApi(target),
		}})

	case cmdRemoveParticipant:
		var req struct {
			TargetParticipantID uuid.UUID `json:"target_participant_id"`
		}
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return errors.New("invalid payload")
		}
		target, err := c.rooms.RemoveParticipant(ctx, sess.participantID, req.TargetParticipantID)
		if err != nil {
			return err
		}
		c.hub.Send(sess.roomID, target.ID, hub.Event{Type: evParticipantRemoved, Payload: gin.H{
			"participant_id": target.ID,
			"message":        "you were removed from the room",
		}})
		c.hub.Kick(sess.roomID, target.ID)
		c.hub.Broadcast(sess.roomID, hub.Event{Type: evParticipantRemovedByAdmin, Payload: gin.H{
			"participant_id": target.ID,
		}})
		c.broadcastRoster(sess.roomID)

	default:
		return errors.New("unsupported command type: " + cmd.Type)
	}

	return nil
}
