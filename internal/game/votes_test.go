package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteTallyCompleteAndPassed(t *testing.T) {
	voters := testPlayerIDs(4)
	tally := NewVoteTally(voters)

	require.NoError(t, tally.Cast(voters[0], true))
	require.NoError(t, tally.Cast(voters[1], true))
	require.NoError(t, tally.Cast(voters[2], false))
	assert.False(t, tally.Complete())

	require.NoError(t, tally.Cast(voters[3], true))
	assert.True(t, tally.Complete())
	assert.True(t, tally.Passed())
}

func TestVoteTallyTieFails(t *testing.T) {
	voters := testPlayerIDs(4)
	tally := NewVoteTally(voters)
	for i, id := range voters {
		require.NoError(t, tally.Cast(id, i%2 == 0))
	}
	assert.True(t, tally.Complete())
	assert.False(t, tally.Passed())
}

func TestVoteTallyLastWriteWins(t *testing.T) {
	voters := testPlayerIDs(3)
	tally := NewVoteTally(voters)

	require.NoError(t, tally.Cast(voters[0], true))
	require.NoError(t, tally.Cast(voters[0], false))
	assert.False(t, tally.Complete())

	require.NoError(t, tally.Cast(voters[1], true))
	require.NoError(t, tally.Cast(voters[2], true))
	assert.True(t, tally.Complete())
	// The overwritten ballot counts as its final value only.
	assert.True(t, tally.Passed())
	assert.Equal(t, []uuid.UUID{voters[0]}, tally.NoVoters())
}

func TestVoteTallyRejectsIneligibleVoter(t *testing.T) {
	tally := NewVoteTally(testPlayerIDs(3))
	err := tally.Cast(uuid.New(), true)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
