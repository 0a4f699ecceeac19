package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/planning-poker/internal/auth"
)

const userIDKey = "userID"

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	// Browsers cannot set headers on websocket upgrades.
	return ctx.Query("token")
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// AuthOptional resolves the acting user when a valid token is present and
// carries on anonymously otherwise.
func AuthOptional(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if userID, err := tokens.Parse(token); err == nil {
				ctx.Set(userIDKey, userID)
			}
		}
		ctx.Next()
	}
}

func userIDFrom(ctx *gin.Context) (uuid.UUID, bool) {
	val, ok := ctx.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}

func optionalUserID(ctx *gin.Context) *uuid.UUID {
	if id, ok := userIDFrom(ctx); ok {
		return &id
	}
	return nil
}
