package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateWin(t *testing.T) {
	cases := []struct {
		name        string
		liberal     int
		fascist     int
		hitlerAlive bool
		want        WinResult
	}{
		{"in progress", 2, 3, true, WinResult{}},
		{"hitler dead", 0, 0, false, WinResult{Over: true, Winner: TeamLiberal, Reason: "Hitler was executed"}},
		{"liberal track full", 5, 2, true, WinResult{Over: true, Winner: TeamLiberal, Reason: "five liberal policies enacted"}},
		{"fascist track full", 4, 6, true, WinResult{Over: true, Winner: TeamFascist, Reason: "six fascist policies enacted"}},
		{"hitler dead beats full fascist track", 0, 6, false, WinResult{Over: true, Winner: TeamLiberal, Reason: "Hitler was executed"}},
		{"one short on both tracks", 4, 5, true, WinResult{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateWin(tc.liberal, tc.fascist, tc.hitlerAlive))
		})
	}
}

func TestEnactPolicyResetsTracker(t *testing.T) {
	s := &State{ElectionTracker: 2}
	s.EnactPolicy(PolicyFascist)
	assert.Equal(t, 1, s.FascistPolicies)
	assert.Equal(t, 0, s.ElectionTracker)

	s.ElectionTracker = 1
	s.EnactPolicy(PolicyLiberal)
	assert.Equal(t, 1, s.LiberalPolicies)
	assert.Equal(t, 0, s.ElectionTracker)
}
