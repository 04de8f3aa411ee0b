package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"secret-hitler/internal/api/ws"
	"secret-hitler/internal/room"
)

// logMiddleware logs the method, path, status and duration of each request.
func logMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
			"remote":   c.ClientIP(),
		}).Info("HTTP Request")
	}
}

func NewRouter(rm *room.Manager, hub *ws.Hub, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logMiddleware(logger))

	// WebSocket event feed
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.POST("/create-room", CreateRoomHandler(rm))
	r.POST("/join-room", JoinRoomHandler(rm))
	r.POST("/leave-room", LeaveRoomHandler(rm))
	r.POST("/reorder-players", ReorderPlayersHandler(rm))
	r.POST("/start-game", StartGameHandler(rm))
	r.GET("/room-state", RoomStateHandler(rm))

	// --- GAME ENDPOINTS ---
	r.POST("/nominate", NominateHandler(rm))
	r.POST("/vote", VoteHandler(rm))
	r.POST("/discard-policy", DiscardPolicyHandler(rm))
	r.POST("/enact-policy", EnactPolicyHandler(rm))
	r.POST("/veto", VetoHandler(rm))
	r.POST("/use-power", UsePowerHandler(rm))
	r.POST("/investigate-loyalty", UsePowerHandler(rm))
	r.GET("/game-state", GameStateHandler(rm))
	r.GET("/my-role", MyRoleHandler(rm))

	return r
}
