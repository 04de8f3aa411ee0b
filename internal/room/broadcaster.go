package room

import "github.com/google/uuid"

// Broadcaster fans events out to a room's subscribers. Delivery is
// best-effort and must never run while the room's lock is held.
type Broadcaster interface {
	Broadcast(roomCode string, action string, data interface{})
	BroadcastTo(roomCode string, playerID uuid.UUID, action string, data interface{})
}
