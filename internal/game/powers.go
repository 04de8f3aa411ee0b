package game

// Power is a one-time presidential action unlocked at a fascist-policy
// threshold, scaled by player count.
type Power string

const (
	PowerNone            Power = ""
	PowerInvestigate     Power = "INVESTIGATE_LOYALTY"
	PowerSpecialElection Power = "CALL_SPECIAL_ELECTION"
	PowerPolicyPeek      Power = "POLICY_PEEK"
	PowerExecution       Power = "EXECUTION"
)

var powerTables = map[int]map[int]Power{
	6: {
		3: PowerPolicyPeek,
		4: PowerExecution,
		5: PowerExecution,
	},
	8: {
		1: PowerInvestigate,
		2: PowerSpecialElection,
		3: PowerPolicyPeek,
		4: PowerExecution,
		5: PowerExecution,
	},
	10: {
		1: PowerInvestigate,
		2: PowerInvestigate,
		3: PowerSpecialElection,
		4: PowerExecution,
		5: PowerExecution,
	},
}

// PowerFor returns the power granted when the given fascist policy becomes
// enacted, or PowerNone. The 6th fascist policy ends the game before any
// lookup happens, so the tables stop at 5.
func PowerFor(playerCount, fascistPolicies int) Power {
	var table map[int]Power
	switch {
	case playerCount <= 6:
		table = powerTables[6]
	case playerCount <= 8:
		table = powerTables[8]
	default:
		table = powerTables[10]
	}
	return table[fascistPolicies]
}
