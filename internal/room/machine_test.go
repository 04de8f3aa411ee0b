package room

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secret-hitler/internal/game"
)

// stackDeck replaces the room's deck with a fixed draw order, top card first,
// padded with liberals so long scenarios never exhaust it. Returns the total
// card count of the replacement deck.
func stackDeck(r *Room, cards ...game.PolicyType) int {
	padded := make([]game.PolicyType, 0, len(cards)+24)
	padded = append(padded, cards...)
	for i := 0; i < 24; i++ {
		padded = append(padded, game.PolicyLiberal)
	}
	r.Game.Deck = game.NewStackedPolicyDeck(rand.New(rand.NewSource(1)), padded)
	return len(padded)
}

// setPresident forces whose turn it is to nominate. Only valid between
// rounds, while the room sits in NOMINATION.
func setPresident(t *testing.T, r *Room, id uuid.UUID) {
	t.Helper()
	require.Equal(t, game.PhaseNomination, r.Game.Phase)
	r.Game.PresidentID = id
}

// voteAll has every eligible voter cast the same ballot, resolving the
// election on the last one.
func voteAll(t *testing.T, m *Manager, r *Room, vote bool) {
	t.Helper()
	for _, p := range r.alive() {
		if p.ID == r.Game.PresidentID {
			continue
		}
		require.NoError(t, m.CastVote(r.Code, p.ID, vote))
		if r.Game.Phase != game.PhaseElection {
			return
		}
	}
}

// electGovernment runs nomination and a unanimous yes vote.
func electGovernment(t *testing.T, m *Manager, r *Room, president, chancellor uuid.UUID) {
	t.Helper()
	setPresident(t, r, president)
	require.NoError(t, m.Nominate(r.Code, president, chancellor))
	voteAll(t, m, r, true)
}

// legislate walks a full legislative session enacting the wanted policy.
// The deck must have been stacked so the wanted card survives the discards.
func legislate(t *testing.T, m *Manager, r *Room, want game.PolicyType) {
	t.Helper()
	require.Equal(t, game.PhaseLegislativePresident, r.Game.Phase)

	discard := pickDiscard(t, r.Game.PresidentPolicies, want)
	require.NoError(t, m.DiscardPolicy(r.Code, r.Game.PresidentID, discard))
	require.NoError(t, m.EnactPolicy(r.Code, r.Game.ChancellorID, want))
}

// pickDiscard returns a card whose removal still leaves a copy of want.
func pickDiscard(t *testing.T, hand []game.PolicyType, want game.PolicyType) game.PolicyType {
	t.Helper()
	for i, c := range hand {
		rest := 0
		for j, o := range hand {
			if j != i && o == want {
				rest++
			}
		}
		if rest > 0 {
			return c
		}
	}
	t.Fatalf("hand %v cannot keep a %s", hand, want)
	return ""
}

func TestNominationOpensElection(t *testing.T) {
	m, mb, r, _ := setupGame(t, 5)
	president := r.Game.PresidentID

	nominees := r.eligibleNominees(r.Game)
	require.NotEmpty(t, nominees)
	require.NoError(t, m.Nominate(r.Code, president, nominees[0]))

	assert.Equal(t, game.PhaseElection, r.Game.Phase)
	assert.Equal(t, nominees[0], r.Game.NominatedChancellorID)
	assert.NotNil(t, mb.lastPublic(EventStateUpdated))

	// The president is not an eligible voter.
	err := m.CastVote(r.Code, president, true)
	var validation *game.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestNominateRejectsIneligible(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	president := r.Game.PresidentID

	var validation *game.ValidationError
	err := m.Nominate(r.Code, president, president)
	require.ErrorAs(t, err, &validation, "self nomination")

	err = m.Nominate(r.Code, president, uuid.New())
	require.ErrorAs(t, err, &validation, "unknown player")

	nominees := r.eligibleNominees(r.Game)
	err = m.Nominate(r.Code, nominees[0], nominees[0])
	require.ErrorAs(t, err, &validation, "non-president nominating")

	var phase *game.PhaseError
	require.NoError(t, m.Nominate(r.Code, president, nominees[0]))
	err = m.Nominate(r.Code, president, nominees[0])
	require.ErrorAs(t, err, &phase, "nomination after election opened")
}

func TestPassedElectionSeatsGovernment(t *testing.T) {
	m, mb, r, _ := setupGame(t, 5)
	stackDeck(r, game.PolicyLiberal, game.PolicyLiberal, game.PolicyFascist)
	president := r.Game.PresidentID
	chancellor := r.eligibleNominees(r.Game)[0]

	electGovernment(t, m, r, president, chancellor)

	assert.Equal(t, game.PhaseLegislativePresident, r.Game.Phase)
	assert.Equal(t, chancellor, r.Game.ChancellorID)
	assert.Equal(t, president, r.Game.PreviousPresidentID)
	assert.Equal(t, chancellor, r.Game.PreviousChancellorID)
	assert.Len(t, r.Game.PresidentPolicies, 3)

	require.NotNil(t, mb.lastPublic(EventElected))
	// The drawn hand goes to the president alone.
	require.NotNil(t, mb.lastPrivate(president, EventPresidentPolicies))
	assert.Nil(t, mb.lastPublic(EventPresidentPolicies))
}

func TestElectionLastWriteWins(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	president := r.Game.PresidentID
	chancellor := r.eligibleNominees(r.Game)[0]
	setPresident(t, r, president)
	require.NoError(t, m.Nominate(r.Code, president, chancellor))

	voters := []*Player{}
	for _, p := range r.alive() {
		if p.ID != president {
			voters = append(voters, p)
		}
	}
	require.Len(t, voters, 4)

	// First voter flips no -> yes before the tally completes.
	require.NoError(t, m.CastVote(r.Code, voters[0].ID, false))
	require.NoError(t, m.CastVote(r.Code, voters[0].ID, true))
	require.NoError(t, m.CastVote(r.Code, voters[1].ID, true))
	require.NoError(t, m.CastVote(r.Code, voters[2].ID, true))
	require.NoError(t, m.CastVote(r.Code, voters[3].ID, false))

	assert.Equal(t, game.PhaseLegislativePresident, r.Game.Phase, "3-1 passes")
}

func TestFailedElectionAdvancesTrackerAndPresidency(t *testing.T) {
	m, mb, r, _ := setupGame(t, 5)
	president := r.Game.PresidentID
	chancellor := r.eligibleNominees(r.Game)[0]

	setPresident(t, r, president)
	require.NoError(t, m.Nominate(r.Code, president, chancellor))
	voteAll(t, m, r, false)

	assert.Equal(t, game.PhaseNomination, r.Game.Phase)
	assert.Equal(t, 1, r.Game.ElectionTracker)
	assert.Equal(t, r.nextAliveSeat(president), r.Game.PresidentID)
	// Failed elections do not update term-limit memory.
	assert.Equal(t, uuid.Nil, r.Game.PreviousChancellorID)

	ev := mb.lastPublic(EventFailedElection)
	require.NotNil(t, ev)
	payload := ev.data.(FailedElectionPayload)
	assert.Equal(t, 1, payload.ElectionTracker)
	assert.Len(t, payload.NoVotes, 4)
	assert.Nil(t, payload.PolicyType)
}

func TestChaosAfterThreeFailedElections(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist)
	// Pretend a government served earlier so term-limit memory is set.
	r.Game.PreviousPresidentID = r.Players[0].ID
	r.Game.PreviousChancellorID = r.Players[1].ID

	for i := 0; i < 3; i++ {
		president := r.Game.PresidentID
		nominees := r.eligibleNominees(r.Game)
		require.NoError(t, m.Nominate(r.Code, president, nominees[0]))
		voteAll(t, m, r, false)
	}

	// Third failure: top card auto-enacted, tracker reset, memory cleared,
	// and no executive power even though fascist #1 normally grants one
	// with seven players.
	assert.Equal(t, 1, r.Game.FascistPolicies)
	assert.Equal(t, 0, r.Game.ElectionTracker)
	assert.Equal(t, uuid.Nil, r.Game.PreviousPresidentID)
	assert.Equal(t, uuid.Nil, r.Game.PreviousChancellorID)
	assert.Equal(t, game.PhaseNomination, r.Game.Phase)
	assert.Equal(t, game.PowerNone, r.Game.Power)

	ev := mb.lastPublic(EventChaos)
	require.NotNil(t, ev)
	assert.Equal(t, game.PolicyFascist, ev.data.(ChaosPayload).PolicyType)

	failed := mb.lastPublic(EventFailedElection)
	require.NotNil(t, failed)
	require.NotNil(t, failed.data.(FailedElectionPayload).PolicyType)
	assert.Equal(t, game.PolicyFascist, *failed.data.(FailedElectionPayload).PolicyType)
}

func TestTermLimitsExcludeLastGovernment(t *testing.T) {
	m, _, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyLiberal, game.PolicyLiberal, game.PolicyLiberal)
	president := r.Game.PresidentID
	chancellor := r.eligibleNominees(r.Game)[0]

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyLiberal)

	require.Equal(t, game.PhaseNomination, r.Game.Phase)
	nominees := r.eligibleNominees(r.Game)
	assert.NotContains(t, nominees, chancellor, "previous chancellor is term limited")
	assert.NotContains(t, nominees, president, "previous president is term limited")
	assert.NotContains(t, nominees, r.Game.PresidentID, "sitting president never nominable")
}

func TestHitlerChancellorAtThreeFascistPoliciesEndsGame(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	r.Game.FascistPolicies = 3
	hitler := findHitler(r)
	president := findLiberal(r)

	electGovernment(t, m, r, president, hitler)

	assert.Equal(t, game.PhaseGameOver, r.Game.Phase)
	assert.Equal(t, game.TeamFascist, r.Game.WinningTeam)
	assert.Equal(t, uuid.Nil, r.Game.ChancellorID, "government never seated")
	assert.Empty(t, r.Game.PresidentPolicies, "no cards drawn")
	require.NotNil(t, mb.lastPublic(EventElected))
}

func TestHitlerChancellorBelowThreeIsSafe(t *testing.T) {
	m, _, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyLiberal, game.PolicyLiberal, game.PolicyLiberal)
	r.Game.FascistPolicies = 2
	hitler := findHitler(r)
	president := findLiberal(r)

	electGovernment(t, m, r, president, hitler)
	assert.Equal(t, game.PhaseLegislativePresident, r.Game.Phase)
	assert.Equal(t, hitler, r.Game.ChancellorID)
}

func TestInvestigationPower(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)

	require.Equal(t, game.PhaseExecutiveAction, r.Game.Phase)
	require.Equal(t, game.PowerInvestigate, r.Game.Power)

	var validation *game.ValidationError
	_, err := m.UsePower(r.Code, president, president)
	require.ErrorAs(t, err, &validation, "self investigation")

	target := findFascist(r)
	if target == president {
		target = findHitler(r)
	}
	result, err := m.UsePower(r.Code, president, target)
	require.NoError(t, err)
	assert.Equal(t, game.TeamFascist, result.Team, "hitler and fascists both read FASCIST")

	// Public event names the target but not the result; the result reaches
	// the president privately.
	ev := mb.lastPublic(EventLoyaltyInvestigated)
	require.NotNil(t, ev)
	assert.Equal(t, target, ev.data.(LoyaltyInvestigatedPayload).PlayerID)
	priv := mb.lastPrivate(president, EventInvestigationResult)
	require.NotNil(t, priv)
	assert.Equal(t, game.TeamFascist, priv.data.(InvestigationResultPayload).Team)

	assert.Equal(t, game.PhaseNomination, r.Game.Phase)

	// The power is spent; a second use is a phase error.
	var phase *game.PhaseError
	_, err = m.UsePower(r.Code, r.Game.PresidentID, target)
	require.ErrorAs(t, err, &phase)

	// The same target can never be investigated again, by anyone.
	assert.True(t, r.Game.Investigated[target])
}

func TestInvestigatedTwiceRejected(t *testing.T) {
	m, _, r, _ := setupGame(t, 9)
	stackDeck(r,
		game.PolicyFascist, game.PolicyFascist, game.PolicyFascist,
		game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	target := findLiberal(r)

	// Fascist policies 1 and 2 both grant investigation with nine players.
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))
	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)
	require.Equal(t, game.PowerInvestigate, r.Game.Power)
	if target == r.Game.PresidentID {
		target = findFascist(r)
	}
	_, err := m.UsePower(r.Code, r.Game.PresidentID, target)
	require.NoError(t, err)

	president = r.Game.PresidentID
	chancellor = pickNomineeAvoiding(t, r, findHitler(r))
	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)
	require.Equal(t, game.PowerInvestigate, r.Game.Power)

	var validation *game.ValidationError
	_, err = m.UsePower(r.Code, r.Game.PresidentID, target)
	require.ErrorAs(t, err, &validation, "investigation is once per player for the whole game")
}

func TestPolicyPeekPower(t *testing.T) {
	m, mb, r, _ := setupGame(t, 5)
	stackDeck(r,
		game.PolicyFascist, game.PolicyFascist, game.PolicyFascist,
		game.PolicyFascist, game.PolicyLiberal, game.PolicyFascist)
	r.Game.FascistPolicies = 2
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)

	require.Equal(t, game.PhaseExecutiveAction, r.Game.Phase)
	require.Equal(t, game.PowerPolicyPeek, r.Game.Power)

	// The upcoming three cards went to the president on entry.
	priv := mb.lastPrivate(president, EventPolicyPeek)
	require.NotNil(t, priv)
	peeked := priv.data.(PoliciesPayload).Policies
	require.Len(t, peeked, 3)

	result, err := m.UsePower(r.Code, president, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, peeked, result.Policies)
	assert.Equal(t, game.PhaseNomination, r.Game.Phase)

	// Peek does not consume: the next legislative draw sees those cards.
	top, err := r.Game.Deck.Peek(3)
	require.NoError(t, err)
	assert.Equal(t, peeked, top)
}

func TestExecutionOfHitlerWinsForLiberals(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	r.Game.FascistPolicies = 3
	hitler := findHitler(r)
	president := findLiberal(r)
	chancellor := pickNomineeAvoiding(t, r, hitler, president)

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)

	require.Equal(t, game.PowerExecution, r.Game.Power)
	_, err := m.UsePower(r.Code, president, hitler)
	require.NoError(t, err)

	assert.Equal(t, game.PhaseGameOver, r.Game.Phase)
	assert.Equal(t, game.TeamLiberal, r.Game.WinningTeam)
	assert.False(t, r.player(hitler).IsAlive)

	ev := mb.lastPublic(EventExecuted)
	require.NotNil(t, ev)
	assert.Equal(t, hitler, ev.data.(ExecutedPayload).PlayerID)
}

func TestExecutionOfBystanderContinuesGame(t *testing.T) {
	m, _, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	r.Game.FascistPolicies = 3
	hitler := findHitler(r)
	president := findLiberal(r)
	chancellor := pickNomineeAvoiding(t, r, hitler, president)

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)
	require.Equal(t, game.PowerExecution, r.Game.Power)

	victim := pickNomineeAvoiding(t, r, hitler, president, chancellor)
	_, err := m.UsePower(r.Code, president, victim)
	require.NoError(t, err)

	assert.Equal(t, game.PhaseNomination, r.Game.Phase)
	assert.False(t, r.player(victim).IsAlive)
	assert.Equal(t, 6, r.aliveCount())

	// Dead players drop out of voting and nominations.
	assert.NotContains(t, r.eligibleNominees(r.Game), victim)

	var phase *game.PhaseError
	_, err = m.UsePower(r.Code, r.Game.PresidentID, victim)
	require.ErrorAs(t, err, &phase)
}

func TestSpecialElectionRotationResumes(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	r.Game.FascistPolicies = 1
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyFascist)
	require.Equal(t, game.PowerSpecialElection, r.Game.Power)

	target := pickNomineeAvoiding(t, r, president, chancellor, r.nextAliveSeat(president))
	_, err := m.UsePower(r.Code, president, target)
	require.NoError(t, err)

	assert.Equal(t, game.PhaseNomination, r.Game.Phase)
	assert.Equal(t, target, r.Game.PresidentID, "target presides immediately")
	ev := mb.lastPublic(EventSpecialElection)
	require.NotNil(t, ev)
	assert.Equal(t, target, ev.data.(SpecialElectionPayload).PlayerID)

	// Fail the special government's election; rotation resumes from the
	// seat after the original president, not after the target.
	nominees := r.eligibleNominees(r.Game)
	require.NoError(t, m.Nominate(r.Code, target, nominees[0]))
	voteAll(t, m, r, false)

	assert.Equal(t, r.nextAliveSeat(president), r.Game.PresidentID)
}

func TestVetoApproved(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	r.Game.FascistPolicies = 5
	hitler := findHitler(r)
	president := findLiberal(r)
	chancellor := pickNomineeAvoiding(t, r, hitler, president)

	electGovernment(t, m, r, president, chancellor)
	require.NoError(t, m.DiscardPolicy(r.Code, president, game.PolicyFascist))
	require.Equal(t, game.PhaseLegislativeChancellor, r.Game.Phase)

	require.NoError(t, m.Veto(r.Code, chancellor, true))
	assert.True(t, r.Game.VetoRequested)

	// Enactment is blocked while the president decides.
	var validation *game.ValidationError
	err := m.EnactPolicy(r.Code, chancellor, game.PolicyFascist)
	require.ErrorAs(t, err, &validation)

	require.NoError(t, m.Veto(r.Code, president, true))

	assert.Equal(t, game.PhaseNomination, r.Game.Phase)
	assert.Equal(t, 5, r.Game.FascistPolicies, "nothing enacted")
	assert.Equal(t, 1, r.Game.ElectionTracker, "veto counts as a failed government")
	assert.Empty(t, r.Game.ChancellorPolicies)
	require.NotNil(t, mb.lastPublic(EventVetoed))
}

func TestVetoRejectedForcesEnactment(t *testing.T) {
	m, mb, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	r.Game.FascistPolicies = 5
	hitler := findHitler(r)
	president := findLiberal(r)
	chancellor := pickNomineeAvoiding(t, r, hitler, president)

	electGovernment(t, m, r, president, chancellor)
	require.NoError(t, m.DiscardPolicy(r.Code, president, game.PolicyFascist))
	require.NoError(t, m.Veto(r.Code, chancellor, true))
	require.NoError(t, m.Veto(r.Code, president, false))

	require.NotNil(t, mb.lastPublic(EventVetoRejected))
	assert.False(t, r.Game.VetoRequested)

	// No second request this session.
	var validation *game.ValidationError
	err := m.Veto(r.Code, chancellor, true)
	require.ErrorAs(t, err, &validation)

	// The sixth fascist policy ends the game.
	require.NoError(t, m.EnactPolicy(r.Code, chancellor, game.PolicyFascist))
	assert.Equal(t, game.PhaseGameOver, r.Game.Phase)
	assert.Equal(t, game.TeamFascist, r.Game.WinningTeam)
}

func TestVetoLockedBelowFiveFascistPolicies(t *testing.T) {
	m, _, r, _ := setupGame(t, 7)
	stackDeck(r, game.PolicyFascist, game.PolicyLiberal, game.PolicyLiberal)
	r.Game.FascistPolicies = 4
	hitler := findHitler(r)
	president := findLiberal(r)
	chancellor := pickNomineeAvoiding(t, r, hitler, president)

	electGovernment(t, m, r, president, chancellor)
	require.NoError(t, m.DiscardPolicy(r.Code, president, game.PolicyFascist))

	var validation *game.ValidationError
	err := m.Veto(r.Code, chancellor, true)
	require.ErrorAs(t, err, &validation)
}

func TestLegislativeHandValidation(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyFascist)
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	electGovernment(t, m, r, president, chancellor)

	var validation *game.ValidationError
	err := m.DiscardPolicy(r.Code, president, game.PolicyLiberal)
	require.ErrorAs(t, err, &validation, "card not in hand")

	err = m.DiscardPolicy(r.Code, chancellor, game.PolicyFascist)
	require.ErrorAs(t, err, &validation, "only the president discards")

	require.NoError(t, m.DiscardPolicy(r.Code, president, game.PolicyFascist))

	err = m.EnactPolicy(r.Code, president, game.PolicyFascist)
	require.ErrorAs(t, err, &validation, "only the chancellor enacts")
}

func TestLiberalTrackWin(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	stackDeck(r, game.PolicyLiberal, game.PolicyLiberal, game.PolicyLiberal)
	r.Game.LiberalPolicies = 4
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyLiberal)

	assert.Equal(t, game.PhaseGameOver, r.Game.Phase)
	assert.Equal(t, game.TeamLiberal, r.Game.WinningTeam)

	// The machine is absorbing: every further action fails.
	var phase *game.PhaseError
	err := m.Nominate(r.Code, r.Game.PresidentID, chancellor)
	require.ErrorAs(t, err, &phase)
}

func TestGameStateRedaction(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	deckSize := stackDeck(r, game.PolicyFascist, game.PolicyFascist, game.PolicyLiberal)
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	setPresident(t, r, president)
	require.NoError(t, m.Nominate(r.Code, president, chancellor))

	// Mid-election: only who has voted is public, not how.
	voters := []uuid.UUID{}
	for _, p := range r.alive() {
		if p.ID != president {
			voters = append(voters, p.ID)
		}
	}
	require.NoError(t, m.CastVote(r.Code, voters[0], true))

	view, err := m.GameState(r.Code, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{voters[0]}, view.VotedPlayerIDs)
	assert.Empty(t, view.Votes)

	for _, id := range voters[1:] {
		require.NoError(t, m.CastVote(r.Code, id, true))
	}

	// After resolution the full ballots are public and stay readable.
	view, err = m.GameState(r.Code, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, view.Votes, 4)
	assert.Empty(t, view.VotedPlayerIDs)

	// Spectators never see the drawn hand; the president does.
	assert.Empty(t, view.Hand)
	presView, err := m.GameState(r.Code, president)
	require.NoError(t, err)
	assert.Len(t, presView.Hand, 3)

	chanView, err := m.GameState(r.Code, chancellor)
	require.NoError(t, err)
	assert.Empty(t, chanView.Hand, "chancellor has no hand yet")

	require.NoError(t, m.DiscardPolicy(r.Code, president, game.PolicyFascist))
	chanView, err = m.GameState(r.Code, chancellor)
	require.NoError(t, err)
	assert.Len(t, chanView.Hand, 2)

	// Card conservation holds against whatever deck the room carries: piles
	// plus enacted counters plus the three cards in the president's hand.
	assert.Equal(t, deckSize, view.DrawPileSize+view.DiscardPileSize+
		view.LiberalPolicies+view.FascistPolicies+3, "hand cards in flight")
}

func TestCardConservationThroughLegislation(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))

	// The real 17-card deck: piles plus enacted counters stay at 17 through
	// a full legislative session.
	electGovernment(t, m, r, president, chancellor)
	require.NoError(t, m.DiscardPolicy(r.Code, president, r.Game.PresidentPolicies[0]))
	require.NoError(t, m.EnactPolicy(r.Code, chancellor, r.Game.ChancellorPolicies[0]))

	s := r.Game
	assert.Equal(t, game.TotalCardCount,
		s.Deck.DrawCount()+s.Deck.DiscardCount()+s.LiberalPolicies+s.FascistPolicies)
	assert.Equal(t, 1, s.LiberalPolicies+s.FascistPolicies)
}

func TestRoundNumberAdvances(t *testing.T) {
	m, _, r, _ := setupGame(t, 5)
	stackDeck(r, game.PolicyLiberal, game.PolicyLiberal, game.PolicyLiberal)
	require.Equal(t, 1, r.Game.RoundNumber)

	president := r.Game.PresidentID
	chancellor := pickNomineeAvoiding(t, r, findHitler(r))
	electGovernment(t, m, r, president, chancellor)
	legislate(t, m, r, game.PolicyLiberal)

	assert.Equal(t, 2, r.Game.RoundNumber)
}

// pickNomineeAvoiding returns an eligible nominee that is none of the given
// ids.
func pickNomineeAvoiding(t *testing.T, r *Room, avoid ...uuid.UUID) uuid.UUID {
	t.Helper()
	for _, id := range r.eligibleNominees(r.Game) {
		blocked := false
		for _, a := range avoid {
			if id == a {
				blocked = true
				break
			}
		}
		if !blocked {
			return id
		}
	}
	t.Fatal("no eligible nominee outside the avoid set")
	return uuid.Nil
}
