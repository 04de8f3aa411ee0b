package room

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"secret-hitler/internal/game"
)

// Status is the lifecycle of a room.
type Status string

const (
	StatusLobby      Status = "LOBBY"
	StatusInProgress Status = "IN_PROGRESS"
)

// Player is one seat in a room. Seat order is turn order. IsAlive flips to
// false only via the execution power; players are never removed mid-game.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SeatIndex int       `json:"seat_index"`
	IsAlive   bool      `json:"is_alive"`
}

// Room is the aggregate for one game: lobby membership plus, once started,
// the game state. All mutations for a room serialize on mu; rooms are
// independent of each other. Queries copy what they need under the lock and
// build responses outside it.
type Room struct {
	Code      string
	CreatorID uuid.UUID
	Players   []*Player
	Status    Status
	Game      *game.State
	CreatedAt time.Time

	mu sync.Mutex
}

// Store is the registry the manager keeps rooms in.
type Store interface {
	GetRoom(code string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(code string)
}

// player finds a seat by id. Caller holds the lock.
func (r *Room) player(id uuid.UUID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// alive returns the living players in seat order. Caller holds the lock.
func (r *Room) alive() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if p.IsAlive {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) aliveCount() int {
	n := 0
	for _, p := range r.Players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

func (r *Room) aliveSet() map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(r.Players))
	for _, p := range r.Players {
		if p.IsAlive {
			out[p.ID] = true
		}
	}
	return out
}

// nextAliveSeat walks the seat order circularly and returns the first living
// player after the given one. Works even when the reference player is dead,
// which happens when a president executes themselves.
func (r *Room) nextAliveSeat(after uuid.UUID) uuid.UUID {
	start := 0
	for i, p := range r.Players {
		if p.ID == after {
			start = i
			break
		}
	}
	n := len(r.Players)
	for off := 1; off <= n; off++ {
		p := r.Players[(start+off)%n]
		if p.IsAlive {
			return p.ID
		}
	}
	return uuid.Nil
}

// eligibleNominees applies the term-limit rules: alive players minus the
// president, the previous chancellor, and the previous president - the last
// exclusion is lifted when fewer than 5 players remain alive.
func (r *Room) eligibleNominees(s *game.State) []uuid.UUID {
	excludePrevPresident := r.aliveCount() >= 5
	var out []uuid.UUID
	for _, p := range r.alive() {
		if p.ID == s.PresidentID {
			continue
		}
		if p.ID == s.PreviousChancellorID {
			continue
		}
		if excludePrevPresident && p.ID == s.PreviousPresidentID {
			continue
		}
		out = append(out, p.ID)
	}
	return out
}
