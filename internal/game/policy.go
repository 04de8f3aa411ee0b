package game

// PolicyType is the face of a policy card.
type PolicyType string

const (
	PolicyLiberal PolicyType = "LIBERAL"
	PolicyFascist PolicyType = "FASCIST"
)

const (
	LiberalCardCount = 6
	FascistCardCount = 11
	TotalCardCount   = LiberalCardCount + FascistCardCount

	LiberalTrackLen = 5
	FascistTrackLen = 6

	MinPlayers = 5
	MaxPlayers = 10
)

// Valid reports whether t is one of the two known card faces.
func (t PolicyType) Valid() bool {
	return t == PolicyLiberal || t == PolicyFascist
}
