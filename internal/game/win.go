package game

// WinResult reports whether the game is over, who won and why.
type WinResult struct {
	Over   bool
	Winner Team
	Reason string
}

// EvaluateWin is run after every policy enactment (chaos included) and every
// execution. Hitler elected chancellor with three fascist policies is checked
// inside the election path instead, since it must pre-empt confirmation.
func EvaluateWin(liberalPolicies, fascistPolicies int, hitlerAlive bool) WinResult {
	if !hitlerAlive {
		return WinResult{Over: true, Winner: TeamLiberal, Reason: "Hitler was executed"}
	}
	if liberalPolicies >= LiberalTrackLen {
		return WinResult{Over: true, Winner: TeamLiberal, Reason: "five liberal policies enacted"}
	}
	if fascistPolicies >= FascistTrackLen {
		return WinResult{Over: true, Winner: TeamFascist, Reason: "six fascist policies enacted"}
	}
	return WinResult{}
}
