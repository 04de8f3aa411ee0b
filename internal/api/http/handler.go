package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"secret-hitler/internal/game"
	"secret-hitler/internal/room"
)

// respondError maps the engine's error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		validation *game.ValidationError
		phase      *game.PhaseError
		notFound   *game.NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &phase):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// @Summary Create new room
// @Description Create a new room with the caller as its first player and creator
// @Tags Room
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /create-room [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_name required"})
			return
		}
		rx, p, err := rm.CreateRoom(req.PlayerName)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room_code": rx.Code, "player_id": p.ID})
	}
}

// @Summary Join a room
// @Description Join an existing lobby by room code
// @Tags Room
// @Accept json
// @Produce json
// @Param request body JoinRoomRequest true "Room code and player name"
// @Success 200 {object} map[string]interface{}
// @Router /join-room [post]
func JoinRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_name required"})
			return
		}
		p, err := rm.JoinRoom(req.RoomCode, req.PlayerName)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"room_code": req.RoomCode, "player_id": p.ID})
	}
}

// @Summary Leave a room
// @Description Leave a lobby before the game starts
// @Tags Room
// @Accept json
// @Produce json
// @Param request body LeaveRoomRequest true "Room code and player id"
// @Success 200 {object} map[string]interface{}
// @Router /leave-room [post]
func LeaveRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LeaveRoomRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_id required"})
			return
		}
		if err := rm.LeaveRoom(req.RoomCode, req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Reorder players
// @Description Creator rearranges the seating order while in the lobby
// @Tags Room
// @Accept json
// @Produce json
// @Param request body ReorderPlayersRequest true "Full permutation of seated player ids"
// @Success 200 {object} map[string]interface{}
// @Router /reorder-players [post]
func ReorderPlayersHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderPlayersRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and order required"})
			return
		}
		if err := rm.ReorderPlayers(req.RoomCode, req.PlayerID, req.Order); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Start the game
// @Description Creator starts the game; roles are dealt and the first round opens
// @Tags Room
// @Accept json
// @Produce json
// @Param request body StartGameRequest true "Room code and creator id"
// @Success 200 {object} map[string]interface{}
// @Router /start-game [post]
func StartGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StartGameRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_id required"})
			return
		}
		if err := rm.StartGame(req.RoomCode, req.PlayerID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Nominate a chancellor
// @Description President nominates an eligible chancellor candidate
// @Tags Game
// @Accept json
// @Produce json
// @Param request body NominateRequest true "Nomination"
// @Success 200 {object} map[string]interface{}
// @Router /nominate [post]
func NominateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NominateRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and chancellor_id required"})
			return
		}
		if err := rm.Nominate(req.RoomCode, req.PlayerID, req.ChancellorID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Cast a ballot
// @Description Vote on the proposed government; re-votes overwrite until the election resolves
// @Tags Game
// @Accept json
// @Produce json
// @Param request body VoteRequest true "Ballot"
// @Success 200 {object} map[string]interface{}
// @Router /vote [post]
func VoteHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VoteRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || req.Vote == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and vote required"})
			return
		}
		if err := rm.CastVote(req.RoomCode, req.PlayerID, *req.Vote); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Discard a policy
// @Description President discards one of the three drawn policies
// @Tags Game
// @Accept json
// @Produce json
// @Param request body PolicyRequest true "Policy to discard"
// @Success 200 {object} map[string]interface{}
// @Router /discard-policy [post]
func DiscardPolicyHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PolicyRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || !req.Policy.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and policy required"})
			return
		}
		if err := rm.DiscardPolicy(req.RoomCode, req.PlayerID, req.Policy); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Enact a policy
// @Description Chancellor enacts one of the two remaining policies
// @Tags Game
// @Accept json
// @Produce json
// @Param request body PolicyRequest true "Policy to enact"
// @Success 200 {object} map[string]interface{}
// @Router /enact-policy [post]
func EnactPolicyHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PolicyRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || !req.Policy.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and policy required"})
			return
		}
		if err := rm.EnactPolicy(req.RoomCode, req.PlayerID, req.Policy); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Request or answer a veto
// @Description Chancellor requests a veto (approve=true); president then approves or rejects it
// @Tags Game
// @Accept json
// @Produce json
// @Param request body VetoRequest true "Veto action"
// @Success 200 {object} map[string]interface{}
// @Router /veto [post]
func VetoHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VetoRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || req.Approve == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code, player_id and approve required"})
			return
		}
		if err := rm.Veto(req.RoomCode, req.PlayerID, *req.Approve); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// @Summary Use the pending executive power
// @Description President resolves the unlocked power; the private outcome is returned to the caller
// @Tags Game
// @Accept json
// @Produce json
// @Param request body UsePowerRequest true "Power target"
// @Success 200 {object} room.PowerResult
// @Router /use-power [post]
func UsePowerHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UsePowerRequest
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_id required"})
			return
		}
		result, err := rm.UsePower(req.RoomCode, req.PlayerID, req.TargetID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// @Summary Get room state
// @Description Lobby-level view of a room
// @Tags Room
// @Produce json
// @Param room_code query string true "Room Code"
// @Success 200 {object} room.RoomView
// @Router /room-state [get]
func RoomStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("room_code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code required"})
			return
		}
		view, err := rm.RoomState(code)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary Get game state
// @Description Redacted view of the game; pass player_id to include your own hand
// @Tags Game
// @Produce json
// @Param room_code query string true "Room Code"
// @Param player_id query string false "Requesting player id"
// @Success 200 {object} room.GameView
// @Router /game-state [get]
func GameStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("room_code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code required"})
			return
		}
		var viewer uuid.UUID
		if raw := c.Query("player_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid player_id"})
				return
			}
			viewer = id
		}
		view, err := rm.GameState(code, viewer)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary Get own role
// @Description The requesting player's secret role and known teammates
// @Tags Game
// @Produce json
// @Param room_code query string true "Room Code"
// @Param player_id query string true "Player ID"
// @Success 200 {object} room.RoleView
// @Router /my-role [get]
func MyRoleHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("room_code")
		playerID, err := uuid.Parse(c.Query("player_id"))
		if code == "" || err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_code and player_id required"})
			return
		}
		view, err := rm.MyRole(code, playerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
