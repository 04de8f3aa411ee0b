package game

import (
	"github.com/google/uuid"
)

// Phase is the current position of the per-room state machine.
type Phase string

const (
	PhaseNomination            Phase = "NOMINATION"
	PhaseElection              Phase = "ELECTION"
	PhaseLegislativePresident  Phase = "LEGISLATIVE_PRESIDENT"
	PhaseLegislativeChancellor Phase = "LEGISLATIVE_CHANCELLOR"
	PhaseExecutiveAction       Phase = "EXECUTIVE_ACTION"
	PhaseGameOver              Phase = "GAME_OVER"
)

// State is the mutable game state of one room while it is in progress.
// It is owned by the room and only ever mutated under the room's lock.
// uuid.Nil means "none" for all the id fields.
type State struct {
	RoundNumber int

	PresidentID           uuid.UUID
	ChancellorID          uuid.UUID // last elected chancellor
	NominatedChancellorID uuid.UUID

	// Term-limit memory: the members of the last elected government.
	PreviousPresidentID  uuid.UUID
	PreviousChancellorID uuid.UUID

	// Set by a special election; rotation resumes from the seat after the
	// original president once this has been consumed.
	NextRegularPresidentID uuid.UUID

	Deck  *PolicyDeck
	Roles map[uuid.UUID]*Role
	Tally *VoteTally

	LiberalPolicies int
	FascistPolicies int
	ElectionTracker int

	// Legislative session payloads. PresidentPolicies is non-empty only in
	// LEGISLATIVE_PRESIDENT, ChancellorPolicies only in LEGISLATIVE_CHANCELLOR.
	PresidentPolicies  []PolicyType
	ChancellorPolicies []PolicyType
	VetoRequested      bool
	VetoRejected       bool

	// Executive action payloads, valid only in EXECUTIVE_ACTION.
	Power          Power
	PeekedPolicies []PolicyType

	Investigated map[uuid.UUID]bool

	Phase          Phase
	GameOverReason string
	WinningTeam    Team
}

// EnactPolicy bumps the matching track and resets the election tracker.
func (s *State) EnactPolicy(t PolicyType) {
	if t == PolicyLiberal {
		s.LiberalPolicies++
	} else {
		s.FascistPolicies++
	}
	s.ElectionTracker = 0
}

// RoleOf returns a player's secret role, or nil.
func (s *State) RoleOf(playerID uuid.UUID) *Role {
	return s.Roles[playerID]
}

// HitlerAlive reports whether the Hitler player is in the alive set.
func (s *State) HitlerAlive(alive map[uuid.UUID]bool) bool {
	for id, role := range s.Roles {
		if role.IsHitler {
			return alive[id]
		}
	}
	return false
}

// ClearLegislativeSession drops all per-session payloads.
func (s *State) ClearLegislativeSession() {
	s.PresidentPolicies = nil
	s.ChancellorPolicies = nil
	s.VetoRequested = false
	s.VetoRejected = false
}

// Finish parks the machine in the absorbing GAME_OVER state.
func (s *State) Finish(winner Team, reason string) {
	s.Phase = PhaseGameOver
	s.WinningTeam = winner
	s.GameOverReason = reason
	s.ClearLegislativeSession()
	s.Power = PowerNone
	s.PeekedPolicies = nil
}
