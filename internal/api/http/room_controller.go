package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/api/http/converter"
	"github.com/immxrtalbeast/planning-poker/internal/domain"
	"github.com/immxrtalbeast/planning-poker/internal/repository"
	"github.com/immxrtalbeast/planning-poker/internal/service"
)

type RoomController struct {
	rooms service.RoomInteractor
	users service.UserInteractor
}

func NewRoomController(rooms service.RoomInteractor, users service.UserInteractor) *RoomController {
	return &RoomController{rooms: rooms, users: users}
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type request struct {
		Name              string `json:"name" binding:"required"`
		EstimationType    string `json:"estimation_type" binding:"required"`
		CreatorName       string `json:"creator_name" binding:"required"`
		CreatorCompetence string `json:"creator_competence"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	estimationType := domain.EstimationType(req.EstimationType)
	if !estimationType.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown estimation type"})
		return
	}

	room, creator, err := c.rooms.CreateRoom(
		ctx.Request.Context(),
		req.Name,
		estimationType,
		req.CreatorName,
		req.CreatorCompetence,
		optionalUserID(ctx),
	)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"room_link":   room.Link,
		"room":        converter.RoomToApi(room),
		"participant": converter.ParticipantToApi(creator),
	})
}

func (c *RoomController) GetRoomByLink(ctx *gin.Context) {
	room, err := c.rooms.GetRoomByLink(ctx.Request.Context(), ctx.Param("link"))
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) ClaimRoom(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	userID, ok := userIDFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	if err := c.rooms.ClaimRoom(ctx.Request.Context(), roomID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrNotParticipant):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this room"})
		case errors.Is(err, service.ErrRoomAlreadyOwned):
			ctx.JSON(http.StatusConflict, gin.H{"error": "room already has an owner"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	roomID, err := uuid.Parse(ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	userID, ok := userIDFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	if err := c.rooms.DeleteRoom(ctx.Request.Context(), roomID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrUnauthorized):
			ctx.JSON(http.StatusForbidden, gin.H{"error": "only admins can delete the room"})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *RoomController) MyRooms(ctx *gin.Context) {
	userID, ok := userIDFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	rooms, err := c.users.UserRooms(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := make([]*converter.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, converter.RoomToApi(room))
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": result})
}
