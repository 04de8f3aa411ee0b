package room

import (
	"github.com/google/uuid"

	"secret-hitler/internal/game"
)

// Event actions pushed to subscribers. EventStateUpdated is the generic
// "something changed, re-fetch" signal; the rest are typed notifications.
// Any field a recipient is not authorized to see is delivered only on that
// player's private channel.
const (
	EventStateUpdated        = "game_state_updated"
	EventElected             = "elected"
	EventFailedElection      = "failed_election"
	EventChaos               = "chaos"
	EventPolicyEnacted       = "policy_enacted"
	EventExecuted            = "executed"
	EventVetoed              = "vetoed"
	EventVetoRejected        = "veto_rejected"
	EventSpecialElection     = "special_election"
	EventLoyaltyInvestigated = "loyalty_investigated"

	// Private actions.
	EventPresidentPolicies   = "president_policies"
	EventChancellorPolicies  = "chancellor_policies"
	EventPolicyPeek          = "policy_peek"
	EventInvestigationResult = "investigation_result"
)

type ElectedPayload struct {
	ChancellorID uuid.UUID `json:"chancellor_id"`
}

type FailedElectionPayload struct {
	NoVotes         []uuid.UUID      `json:"no_votes"`
	ElectionTracker int              `json:"election_tracker"`
	PolicyType      *game.PolicyType `json:"policy_type,omitempty"` // set when the failure triggered chaos
}

type ChaosPayload struct {
	PolicyType game.PolicyType `json:"policy_type"`
}

type PolicyEnactedPayload struct {
	PolicyType game.PolicyType `json:"policy_type"`
}

type ExecutedPayload struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type VetoedPayload struct {
	PolicyType *game.PolicyType `json:"policy_type,omitempty"`
}

type SpecialElectionPayload struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type LoyaltyInvestigatedPayload struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type PoliciesPayload struct {
	Policies []game.PolicyType `json:"policies"`
}

type InvestigationResultPayload struct {
	PlayerID uuid.UUID `json:"player_id"`
	Team     game.Team `json:"team"`
}

// event is a pending notification, collected while the room lock is held and
// published after it is released. to == uuid.Nil means broadcast to the room.
type event struct {
	action string
	data   interface{}
	to     uuid.UUID
}

func broadcast(action string, data interface{}) event {
	return event{action: action, data: data}
}

func private(to uuid.UUID, action string, data interface{}) event {
	return event{action: action, data: data, to: to}
}

func (m *Manager) publish(code string, events []event) {
	if m.bus == nil {
		return
	}
	for _, ev := range events {
		if ev.to == uuid.Nil {
			m.bus.Broadcast(code, ev.action, ev.data)
		} else {
			m.bus.BroadcastTo(code, ev.to, ev.action, ev.data)
		}
	}
}
