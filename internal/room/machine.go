package room

import (
	"errors"

	"github.com/google/uuid"

	"secret-hitler/internal/game"
)

// withGame runs one mutating operation against a room's game state. The
// room lock is held for the whole of fn; events fn returns are published
// after the lock is released, followed by the generic state-changed signal.
// An error means nothing was committed.
func (m *Manager) withGame(code string, fn func(r *Room, s *game.State) ([]event, error)) error {
	r, ok := m.store.GetRoom(code)
	if !ok {
		return &game.NotFoundError{What: "room"}
	}

	r.mu.Lock()
	if r.Status != StatusInProgress || r.Game == nil {
		r.mu.Unlock()
		return game.Validationf("game not started")
	}
	events, err := fn(r, r.Game)
	if err == nil {
		m.store.SaveRoom(r)
	}
	r.mu.Unlock()

	if err != nil {
		var iv *game.InvariantViolation
		if errors.As(err, &iv) {
			m.log.WithField("room", code).WithError(err).Error("invariant violation")
		}
		return err
	}
	events = append(events, broadcast(EventStateUpdated, nil))
	m.publish(code, events)
	return nil
}

// nextPresident picks who chairs the next nomination: the seat stored by a
// special election if one is pending, otherwise the next alive seat.
func (r *Room) nextPresident(s *game.State) uuid.UUID {
	if s.NextRegularPresidentID != uuid.Nil {
		id := s.NextRegularPresidentID
		s.NextRegularPresidentID = uuid.Nil
		if p := r.player(id); p != nil && p.IsAlive {
			return id
		}
		return r.nextAliveSeat(id)
	}
	return r.nextAliveSeat(s.PresidentID)
}

// openNomination rotates the presidency to the given player and resets the
// per-round state. The resolved ballots of the previous election stay
// readable until a new election begins.
func (r *Room) openNomination(s *game.State, president uuid.UUID) {
	s.PresidentID = president
	s.ChancellorID = uuid.Nil
	s.NominatedChancellorID = uuid.Nil
	s.ClearLegislativeSession()
	s.Power = game.PowerNone
	s.PeekedPolicies = nil
	s.Phase = game.PhaseNomination
	s.RoundNumber++
}

// Nominate is the president's chancellor pick. Valid nomination moves the
// room to ELECTION with a fresh tally.
func (m *Manager) Nominate(code string, presidentID, chancellorID uuid.UUID) error {
	return m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseNomination {
			return nil, &game.PhaseError{Action: "nominate", Phase: s.Phase}
		}
		if s.PresidentID != presidentID {
			return nil, game.Validationf("only the president can nominate a chancellor")
		}
		eligible := false
		for _, id := range r.eligibleNominees(s) {
			if id == chancellorID {
				eligible = true
				break
			}
		}
		if !eligible {
			return nil, game.Validationf("player is not an eligible chancellor nominee")
		}

		s.NominatedChancellorID = chancellorID
		voters := make([]uuid.UUID, 0, len(r.Players))
		for _, p := range r.alive() {
			if p.ID != s.PresidentID {
				voters = append(voters, p.ID)
			}
		}
		s.Tally = game.NewVoteTally(voters)
		s.Phase = game.PhaseElection
		return nil, nil
	})
}

// CastVote records a ballot; re-votes overwrite (last write wins). Once the
// final eligible voter has voted the election resolves in the same call.
func (m *Manager) CastVote(code string, playerID uuid.UUID, vote bool) error {
	return m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseElection {
			return nil, &game.PhaseError{Action: "vote", Phase: s.Phase}
		}
		if err := s.Tally.Cast(playerID, vote); err != nil {
			return nil, err
		}
		if !s.Tally.Complete() {
			return nil, nil
		}
		return m.resolveElection(r, s)
	})
}

func (m *Manager) resolveElection(r *Room, s *game.State) ([]event, error) {
	if s.Tally.Passed() {
		nominee := s.NominatedChancellorID
		events := []event{broadcast(EventElected, ElectedPayload{ChancellorID: nominee})}

		// Electing Hitler with three fascist policies on the board ends the
		// game before the government is seated.
		if role := s.RoleOf(nominee); role != nil && role.IsHitler && s.FascistPolicies >= 3 {
			s.Finish(game.TeamFascist, "Hitler was elected chancellor")
			return events, nil
		}

		s.ChancellorID = nominee
		s.NominatedChancellorID = uuid.Nil
		s.PreviousPresidentID = s.PresidentID
		s.PreviousChancellorID = nominee
		s.ElectionTracker = 0

		drawn, err := s.Deck.Draw(3)
		if err != nil {
			return nil, err
		}
		s.PresidentPolicies = drawn
		s.Phase = game.PhaseLegislativePresident
		events = append(events, private(s.PresidentID, EventPresidentPolicies, PoliciesPayload{Policies: drawn}))
		return events, nil
	}

	s.ElectionTracker++
	failed := FailedElectionPayload{
		NoVotes:         s.Tally.NoVoters(),
		ElectionTracker: s.ElectionTracker,
	}
	var events []event

	if s.ElectionTracker >= 3 {
		enacted, win, err := m.enactChaos(r, s)
		if err != nil {
			return nil, err
		}
		failed.PolicyType = &enacted
		events = append(events,
			broadcast(EventFailedElection, failed),
			broadcast(EventChaos, ChaosPayload{PolicyType: enacted}),
		)
		if win.Over {
			s.Finish(win.Winner, win.Reason)
			return events, nil
		}
	} else {
		events = append(events, broadcast(EventFailedElection, failed))
	}

	r.openNomination(s, r.nextPresident(s))
	return events, nil
}

// enactChaos auto-enacts the top deck card after three failed elections:
// tracker back to zero, term-limit memory cleared, no power granted.
func (m *Manager) enactChaos(r *Room, s *game.State) (game.PolicyType, game.WinResult, error) {
	top, err := s.Deck.Draw(1)
	if err != nil {
		return "", game.WinResult{}, err
	}
	s.EnactPolicy(top[0])
	s.PreviousPresidentID = uuid.Nil
	s.PreviousChancellorID = uuid.Nil
	win := game.EvaluateWin(s.LiberalPolicies, s.FascistPolicies, s.HitlerAlive(r.aliveSet()))
	return top[0], win, nil
}

// DiscardPolicy is the president discarding one of the three drawn cards;
// the other two pass to the chancellor.
func (m *Manager) DiscardPolicy(code string, playerID uuid.UUID, policy game.PolicyType) error {
	return m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseLegislativePresident {
			return nil, &game.PhaseError{Action: "discard a policy", Phase: s.Phase}
		}
		if s.PresidentID != playerID {
			return nil, game.Validationf("only the president can discard a policy")
		}
		remaining, ok := removeOne(s.PresidentPolicies, policy)
		if !ok {
			return nil, game.Validationf("policy is not in the drawn hand")
		}

		s.Deck.Discard(policy)
		s.PresidentPolicies = nil
		s.ChancellorPolicies = remaining
		s.Phase = game.PhaseLegislativeChancellor
		return []event{
			private(s.ChancellorID, EventChancellorPolicies, PoliciesPayload{Policies: remaining}),
		}, nil
	})
}

// EnactPolicy is the chancellor enacting one of the two remaining cards.
// A pending veto request blocks enactment until the president has answered.
func (m *Manager) EnactPolicy(code string, playerID uuid.UUID, policy game.PolicyType) error {
	return m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseLegislativeChancellor {
			return nil, &game.PhaseError{Action: "enact a policy", Phase: s.Phase}
		}
		if s.ChancellorID != playerID {
			return nil, game.Validationf("only the chancellor can enact a policy")
		}
		if s.VetoRequested {
			return nil, game.Validationf("veto decision is pending with the president")
		}
		remaining, ok := removeOne(s.ChancellorPolicies, policy)
		if !ok {
			return nil, game.Validationf("policy is not in the chancellor's hand")
		}

		s.Deck.Discard(remaining...)
		s.ClearLegislativeSession()
		s.EnactPolicy(policy)
		events := []event{broadcast(EventPolicyEnacted, PolicyEnactedPayload{PolicyType: policy})}

		win := game.EvaluateWin(s.LiberalPolicies, s.FascistPolicies, s.HitlerAlive(r.aliveSet()))
		if win.Over {
			s.Finish(win.Winner, win.Reason)
			return events, nil
		}

		// Powers unlock only when a fascist policy lands on the track.
		if policy == game.PolicyFascist {
			if power := game.PowerFor(r.aliveCount(), s.FascistPolicies); power != game.PowerNone {
				s.Phase = game.PhaseExecutiveAction
				s.Power = power
				if power == game.PowerPolicyPeek {
					top, err := s.Deck.Peek(3)
					if err != nil {
						return nil, err
					}
					s.PeekedPolicies = top
					events = append(events, private(s.PresidentID, EventPolicyPeek, PoliciesPayload{Policies: top}))
				}
				return events, nil
			}
		}

		r.openNomination(s, r.nextPresident(s))
		return events, nil
	})
}

// Veto handles both halves of the veto negotiation. The chancellor requests
// (approve must be true); the president then approves, discarding both cards
// and advancing the tracker, or rejects, forcing the chancellor to enact.
func (m *Manager) Veto(code string, playerID uuid.UUID, approve bool) error {
	return m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseLegislativeChancellor {
			return nil, &game.PhaseError{Action: "veto", Phase: s.Phase}
		}

		switch playerID {
		case s.ChancellorID:
			if s.FascistPolicies < game.FascistTrackLen-1 {
				return nil, game.Validationf("veto power unlocks at five fascist policies")
			}
			if !approve {
				return nil, game.Validationf("the chancellor initiates a veto, they cannot reject one")
			}
			if s.VetoRejected {
				return nil, game.Validationf("veto was already rejected this session")
			}
			if s.VetoRequested {
				return nil, game.Validationf("veto already requested")
			}
			s.VetoRequested = true
			return nil, nil

		case s.PresidentID:
			if !s.VetoRequested {
				return nil, game.Validationf("no veto has been requested")
			}
			if !approve {
				s.VetoRequested = false
				s.VetoRejected = true
				return []event{broadcast(EventVetoRejected, nil)}, nil
			}

			s.Deck.Discard(s.ChancellorPolicies...)
			s.ClearLegislativeSession()
			s.ElectionTracker++
			events := []event{broadcast(EventVetoed, VetoedPayload{})}

			if s.ElectionTracker >= 3 {
				enacted, win, err := m.enactChaos(r, s)
				if err != nil {
					return nil, err
				}
				events = append(events, broadcast(EventChaos, ChaosPayload{PolicyType: enacted}))
				if win.Over {
					s.Finish(win.Winner, win.Reason)
					return events, nil
				}
			}

			r.openNomination(s, r.nextPresident(s))
			return events, nil

		default:
			return nil, game.Validationf("only the president or chancellor can act on a veto")
		}
	})
}

// PowerResult carries the president-private outcome of an executive action.
type PowerResult struct {
	Power            game.Power        `json:"power"`
	Team             game.Team         `json:"team,omitempty"`     // investigation
	Policies         []game.PolicyType `json:"policies,omitempty"` // policy peek
	ExecutedPlayerID *uuid.UUID        `json:"executed_player_id,omitempty"`
}

// UsePower exercises the resolved presidential power exactly once. The phase
// leaves EXECUTIVE_ACTION on success, so duplicate submissions fail with a
// PhaseError.
func (m *Manager) UsePower(code string, playerID uuid.UUID, targetID uuid.UUID) (*PowerResult, error) {
	var result *PowerResult
	err := m.withGame(code, func(r *Room, s *game.State) ([]event, error) {
		if s.Phase != game.PhaseExecutiveAction {
			return nil, &game.PhaseError{Action: "use an executive power", Phase: s.Phase}
		}
		if s.PresidentID != playerID {
			return nil, game.Validationf("only the president can use executive powers")
		}
		if s.Power == game.PowerNone {
			return nil, &game.InvariantViolation{Msg: "executive action phase without a resolved power"}
		}

		res := &PowerResult{Power: s.Power}
		var events []event

		switch s.Power {
		case game.PowerInvestigate:
			role := s.RoleOf(targetID)
			if targetID == uuid.Nil || role == nil {
				return nil, game.Validationf("investigation requires a target player")
			}
			if targetID == playerID {
				return nil, game.Validationf("cannot investigate yourself")
			}
			if s.Investigated[targetID] {
				return nil, game.Validationf("player has already been investigated")
			}
			s.Investigated[targetID] = true
			res.Team = role.Team
			events = append(events,
				broadcast(EventLoyaltyInvestigated, LoyaltyInvestigatedPayload{PlayerID: targetID}),
				private(s.PresidentID, EventInvestigationResult, InvestigationResultPayload{PlayerID: targetID, Team: role.Team}),
			)

		case game.PowerPolicyPeek:
			res.Policies = s.PeekedPolicies

		case game.PowerExecution:
			target := r.player(targetID)
			if targetID == uuid.Nil || target == nil {
				return nil, game.Validationf("execution requires a target player")
			}
			if !target.IsAlive {
				return nil, game.Validationf("target player is already dead")
			}
			target.IsAlive = false
			res.ExecutedPlayerID = &target.ID
			events = append(events, broadcast(EventExecuted, ExecutedPayload{PlayerID: targetID}))

			win := game.EvaluateWin(s.LiberalPolicies, s.FascistPolicies, s.HitlerAlive(r.aliveSet()))
			if win.Over {
				s.Finish(win.Winner, win.Reason)
				result = res
				return events, nil
			}

		case game.PowerSpecialElection:
			target := r.player(targetID)
			if targetID == uuid.Nil || target == nil {
				return nil, game.Validationf("special election requires a target player")
			}
			if !target.IsAlive {
				return nil, game.Validationf("target player cannot preside")
			}
			// Regular rotation resumes from the seat after the current
			// president once the special government is done.
			s.NextRegularPresidentID = r.nextAliveSeat(s.PresidentID)
			r.openNomination(s, targetID)
			events = append(events, broadcast(EventSpecialElection, SpecialElectionPayload{PlayerID: targetID}))
			result = res
			return events, nil
		}

		r.openNomination(s, r.nextPresident(s))
		result = res
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func removeOne(hand []game.PolicyType, policy game.PolicyType) ([]game.PolicyType, bool) {
	for i, p := range hand {
		if p == policy {
			out := make([]game.PolicyType, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return nil, false
}
