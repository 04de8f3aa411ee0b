package http

import (
	"github.com/google/uuid"

	"secret-hitler/internal/game"
)

// CreateRoomRequest represents the payload for /create-room.
type CreateRoomRequest struct {
	PlayerName string `json:"player_name"`
}

// JoinRoomRequest represents the payload for joining an existing room.
type JoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// LeaveRoomRequest represents the payload for leaving a lobby.
type LeaveRoomRequest struct {
	RoomCode string    `json:"room_code"`
	PlayerID uuid.UUID `json:"player_id"`
}

// ReorderPlayersRequest carries a full permutation of the seated players.
type ReorderPlayersRequest struct {
	RoomCode string      `json:"room_code"`
	PlayerID uuid.UUID   `json:"player_id"`
	Order    []uuid.UUID `json:"order"`
}

// StartGameRequest represents the payload for /start-game.
type StartGameRequest struct {
	RoomCode string    `json:"room_code"`
	PlayerID uuid.UUID `json:"player_id"`
}

// NominateRequest is the president's chancellor pick.
type NominateRequest struct {
	RoomCode     string    `json:"room_code"`
	PlayerID     uuid.UUID `json:"player_id"`
	ChancellorID uuid.UUID `json:"chancellor_id"`
}

// VoteRequest is one ballot; true is ja, false is nein.
type VoteRequest struct {
	RoomCode string    `json:"room_code"`
	PlayerID uuid.UUID `json:"player_id"`
	Vote     *bool     `json:"vote"`
}

// PolicyRequest carries a policy choice for /discard-policy and /enact-policy.
type PolicyRequest struct {
	RoomCode string          `json:"room_code"`
	PlayerID uuid.UUID       `json:"player_id"`
	Policy   game.PolicyType `json:"policy"`
}

// VetoRequest is either the chancellor's request (approve=true) or the
// president's answer.
type VetoRequest struct {
	RoomCode string    `json:"room_code"`
	PlayerID uuid.UUID `json:"player_id"`
	Approve  *bool     `json:"approve"`
}

// UsePowerRequest resolves the pending executive action. TargetID is
// required for investigation, execution and special election.
type UsePowerRequest struct {
	RoomCode string    `json:"room_code"`
	PlayerID uuid.UUID `json:"player_id"`
	TargetID uuid.UUID `json:"target_id"`
}
