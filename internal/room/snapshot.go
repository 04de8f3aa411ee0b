package room

import (
	"sort"

	"github.com/google/uuid"

	"secret-hitler/internal/game"
)

// PlayerView is the public projection of a seated player.
type PlayerView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SeatIndex int       `json:"seat_index"`
	IsAlive   bool      `json:"is_alive"`
}

// RoomView is the lobby-level projection of a room.
type RoomView struct {
	Code        string       `json:"code"`
	CreatorID   uuid.UUID    `json:"creator_id"`
	Status      Status       `json:"status"`
	Players     []PlayerView `json:"players"`
	PlayerCount int          `json:"player_count"`
	CanStart    bool         `json:"can_start"`
}

// GameView is the public projection of an in-progress game. Secret state
// (roles, hands, peeked cards) never appears here; the requesting player's
// own hand is attached only when viewerID identifies the holder.
type GameView struct {
	RoundNumber int        `json:"round_number"`
	Phase       game.Phase `json:"phase"`

	PresidentID           *uuid.UUID `json:"president_id,omitempty"`
	ChancellorID          *uuid.UUID `json:"chancellor_id,omitempty"`
	NominatedChancellorID *uuid.UUID `json:"nominated_chancellor_id,omitempty"`
	PreviousPresidentID   *uuid.UUID `json:"previous_president_id,omitempty"`
	PreviousChancellorID  *uuid.UUID `json:"previous_chancellor_id,omitempty"`

	LiberalPolicies int `json:"liberal_policies"`
	FascistPolicies int `json:"fascist_policies"`
	ElectionTracker int `json:"election_tracker"`
	DrawPileSize    int `json:"draw_pile_size"`
	DiscardPileSize int `json:"discard_pile_size"`

	EligibleChancellorNominees []uuid.UUID `json:"eligible_chancellor_nominees,omitempty"`

	// During an ELECTION only the ids of players who have voted are public;
	// once the election has resolved the full ballots are.
	VotedPlayerIDs []uuid.UUID        `json:"voted_player_ids,omitempty"`
	Votes          map[uuid.UUID]bool `json:"votes,omitempty"`
	VetoRequested  bool               `json:"veto_requested"`
	Power          game.Power         `json:"power,omitempty"`
	Investigated   []uuid.UUID        `json:"investigated_player_ids,omitempty"`
	Hand           []game.PolicyType  `json:"hand,omitempty"`

	GameOverReason string    `json:"game_over_reason,omitempty"`
	WinningTeam    game.Team `json:"winning_team,omitempty"`
}

// RoleView is a player's own secret role plus the teammates they are allowed
// to know about.
type RoleView struct {
	Team      game.Team      `json:"team"`
	IsHitler  bool           `json:"is_hitler"`
	Teammates []TeammateView `json:"teammates,omitempty"`
}

type TeammateView struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
	IsHitler bool      `json:"is_hitler"`
}

// RoomState returns the lobby projection of a room.
func (m *Manager) RoomState(code string) (*RoomView, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, &game.NotFoundError{What: "room"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	view := &RoomView{
		Code:        r.Code,
		CreatorID:   r.CreatorID,
		Status:      r.Status,
		Players:     make([]PlayerView, 0, len(r.Players)),
		PlayerCount: len(r.Players),
		CanStart:    r.Status == StatusLobby && len(r.Players) >= game.MinPlayers,
	}
	for _, p := range r.Players {
		view.Players = append(view.Players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			SeatIndex: p.SeatIndex,
			IsAlive:   p.IsAlive,
		})
	}
	return view, nil
}

// GameState returns the redacted game projection. viewerID may be uuid.Nil
// for a spectator view; a seated viewer additionally sees their own
// legislative hand or peeked cards when they hold them.
func (m *Manager) GameState(code string, viewerID uuid.UUID) (*GameView, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, &game.NotFoundError{What: "room"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.Game
	if r.Status != StatusInProgress || s == nil {
		return nil, game.Validationf("game not started")
	}

	view := &GameView{
		RoundNumber:           s.RoundNumber,
		Phase:                 s.Phase,
		PresidentID:           idPtr(s.PresidentID),
		ChancellorID:          idPtr(s.ChancellorID),
		NominatedChancellorID: idPtr(s.NominatedChancellorID),
		PreviousPresidentID:   idPtr(s.PreviousPresidentID),
		PreviousChancellorID:  idPtr(s.PreviousChancellorID),
		LiberalPolicies:       s.LiberalPolicies,
		FascistPolicies:       s.FascistPolicies,
		ElectionTracker:       s.ElectionTracker,
		DrawPileSize:          s.Deck.DrawCount(),
		DiscardPileSize:       s.Deck.DiscardCount(),
		VetoRequested:         s.VetoRequested,
		GameOverReason:        s.GameOverReason,
		WinningTeam:           s.WinningTeam,
	}

	if s.Phase == game.PhaseNomination {
		view.EligibleChancellorNominees = r.eligibleNominees(s)
	}
	if s.Tally != nil {
		if s.Phase == game.PhaseElection {
			voted := make([]uuid.UUID, 0, len(s.Tally.Votes()))
			for id := range s.Tally.Votes() {
				voted = append(voted, id)
			}
			sort.Slice(voted, func(i, j int) bool { return voted[i].String() < voted[j].String() })
			view.VotedPlayerIDs = voted
		} else {
			view.Votes = s.Tally.Votes()
		}
	}
	if s.Phase == game.PhaseExecutiveAction {
		view.Power = s.Power
	}
	if len(s.Investigated) > 0 {
		ids := make([]uuid.UUID, 0, len(s.Investigated))
		for id := range s.Investigated {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		view.Investigated = ids
	}

	switch viewerID {
	case uuid.Nil:
	case s.PresidentID:
		if len(s.PresidentPolicies) > 0 {
			view.Hand = append([]game.PolicyType(nil), s.PresidentPolicies...)
		} else if len(s.PeekedPolicies) > 0 {
			view.Hand = append([]game.PolicyType(nil), s.PeekedPolicies...)
		}
	case s.ChancellorID:
		if len(s.ChancellorPolicies) > 0 {
			view.Hand = append([]game.PolicyType(nil), s.ChancellorPolicies...)
		}
	}
	return view, nil
}

// MyRole returns the requesting player's secret role.
func (m *Manager) MyRole(code string, playerID uuid.UUID) (*RoleView, error) {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return nil, &game.NotFoundError{What: "room"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusInProgress || r.Game == nil {
		return nil, game.Validationf("game not started")
	}
	role := r.Game.RoleOf(playerID)
	if role == nil {
		return nil, &game.NotFoundError{What: "player"}
	}

	view := &RoleView{Team: role.Team, IsHitler: role.IsHitler}
	for _, tm := range role.Teammates {
		name := ""
		if p := r.player(tm.PlayerID); p != nil {
			name = p.Name
		}
		view.Teammates = append(view.Teammates, TeammateView{
			PlayerID: tm.PlayerID,
			Name:     name,
			IsHitler: tm.IsHitler,
		})
	}
	return view, nil
}

func idPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
