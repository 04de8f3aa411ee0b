package game

import "github.com/google/uuid"

// VoteTally collects the yes/no votes for one election. The sitting president
// does not vote in this variant; the tally is complete once every other alive
// player has a recorded vote. Re-voting before completion overwrites the
// previous ballot (last write wins).
type VoteTally struct {
	votes    map[uuid.UUID]bool
	eligible map[uuid.UUID]bool
}

// NewVoteTally starts an empty tally for the given eligible voter ids.
func NewVoteTally(eligible []uuid.UUID) *VoteTally {
	t := &VoteTally{
		votes:    make(map[uuid.UUID]bool, len(eligible)),
		eligible: make(map[uuid.UUID]bool, len(eligible)),
	}
	for _, id := range eligible {
		t.eligible[id] = true
	}
	return t
}

// Cast records or overwrites a player's vote.
func (t *VoteTally) Cast(playerID uuid.UUID, vote bool) error {
	if !t.eligible[playerID] {
		return Validationf("player is not an eligible voter")
	}
	t.votes[playerID] = vote
	return nil
}

// Complete reports whether every eligible voter has voted.
func (t *VoteTally) Complete() bool {
	return len(t.votes) == len(t.eligible)
}

// Passed resolves the election: strict majority of yes among cast votes.
// Ties fail.
func (t *VoteTally) Passed() bool {
	yes := 0
	for _, v := range t.votes {
		if v {
			yes++
		}
	}
	return yes*2 > len(t.votes)
}

// NoVoters returns the ids that voted no, for the failed-election notice.
func (t *VoteTally) NoVoters() []uuid.UUID {
	var out []uuid.UUID
	for id, v := range t.votes {
		if !v {
			out = append(out, id)
		}
	}
	return out
}

// Votes returns a copy of the recorded ballots.
func (t *VoteTally) Votes() map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(t.votes))
	for id, v := range t.votes {
		out[id] = v
	}
	return out
}
