package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/planning-poker/internal/auth"
)

func SetupRouter(
	roomController *RoomController,
	userController *UserController,
	socketController *SocketController,
	tokens *auth.TokenManager,
) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	users := api.Group("/users")
	users.POST("/register", userController.Register)
	users.POST("/login", userController.Login)
	users.GET("/me", AuthRequired(tokens), userController.Me)

	rooms := api.Group("/rooms")
	rooms.POST("", AuthOptional(tokens), roomController.CreateRoom)
	rooms.GET("/link/:link", roomController.GetRoomByLink)
	rooms.GET("/my", AuthRequired(tokens), roomController.MyRooms)
	rooms.POST("/:roomID/claim", AuthRequired(tokens), roomController.ClaimRoom)
	rooms.DELETE("/:roomID", AuthRequired(tokens), roomController.DeleteRoom)

	router.GET("/ws", AuthOptional(tokens), socketController.Serve)

	return router
}
