package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// Team is the side a player secretly belongs to.
type Team string

const (
	TeamLiberal Team = "LIBERAL"
	TeamFascist Team = "FASCIST"
)

// Teammate is one entry of a player's private teammate list.
type Teammate struct {
	PlayerID uuid.UUID `json:"player_id"`
	IsHitler bool      `json:"is_hitler"`
}

// Role is a player's secret assignment. Teammates is computed per assignee
// and must never be derivable from any other player's data.
type Role struct {
	Team      Team       `json:"team"`
	IsHitler  bool       `json:"is_hitler"`
	Teammates []Teammate `json:"teammates"`
}

// fascistCount returns the number of non-Hitler fascists for a player count.
// 5-6 players: 1, 7-8: 2, 9-10: 3.
func fascistCount(players int) int {
	switch {
	case players <= 6:
		return 1
	case players <= 8:
		return 2
	default:
		return 3
	}
}

// AssignRoles distributes one Hitler, the fascist quota for the player count
// and liberals for the remainder, uniformly at random from rng.
//
// Visibility: fascists (non-Hitler) always see the full fascist roster
// including Hitler. Hitler sees fascist teammates only in games of 6 or
// fewer players. Liberals see nobody.
func AssignRoles(rng *rand.Rand, playerIDs []uuid.UUID) (map[uuid.UUID]*Role, error) {
	n := len(playerIDs)
	if n < MinPlayers || n > MaxPlayers {
		return nil, Validationf("need %d to %d players, have %d", MinPlayers, MaxPlayers, n)
	}

	order := make([]uuid.UUID, n)
	copy(order, playerIDs)
	rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	hitlerID := order[0]
	fascists := order[1 : 1+fascistCount(n)]

	roster := []Teammate{{PlayerID: hitlerID, IsHitler: true}}
	for _, id := range fascists {
		roster = append(roster, Teammate{PlayerID: id})
	}

	roles := make(map[uuid.UUID]*Role, n)
	roles[hitlerID] = &Role{Team: TeamFascist, IsHitler: true}
	if n <= 6 {
		roles[hitlerID].Teammates = withoutSelf(roster, hitlerID)
	}
	for _, id := range fascists {
		roles[id] = &Role{Team: TeamFascist, Teammates: withoutSelf(roster, id)}
	}
	for _, id := range order[1+len(fascists):] {
		roles[id] = &Role{Team: TeamLiberal}
	}
	return roles, nil
}

func withoutSelf(roster []Teammate, self uuid.UUID) []Teammate {
	out := make([]Teammate, 0, len(roster)-1)
	for _, tm := range roster {
		if tm.PlayerID != self {
			out = append(out, tm)
		}
	}
	return out
}
