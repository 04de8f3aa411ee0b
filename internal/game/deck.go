package game

import "math/rand"

// PolicyDeck holds the draw and discard piles. The two piles plus the enacted
// counters always sum to 17 cards (6 liberal, 11 fascist). Discard order is
// never observable by clients; a reshuffle folds the discard pile back into
// the draw pile and shuffles the whole thing.
type PolicyDeck struct {
	draw    []PolicyType
	discard []PolicyType
	rng     *rand.Rand
}

// NewPolicyDeck builds the standard 17-card deck shuffled with rng.
func NewPolicyDeck(rng *rand.Rand) *PolicyDeck {
	cards := make([]PolicyType, 0, TotalCardCount)
	for i := 0; i < LiberalCardCount; i++ {
		cards = append(cards, PolicyLiberal)
	}
	for i := 0; i < FascistCardCount; i++ {
		cards = append(cards, PolicyFascist)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &PolicyDeck{draw: cards, rng: rng}
}

// NewStackedPolicyDeck builds a deck with a fixed draw order, top card first.
// Reshuffles still use rng. Lets scripted scenarios control which cards come
// up; the card counts are the caller's responsibility.
func NewStackedPolicyDeck(rng *rand.Rand, cards []PolicyType) *PolicyDeck {
	draw := make([]PolicyType, len(cards))
	copy(draw, cards)
	return &PolicyDeck{draw: draw, rng: rng}
}

// Draw removes and returns the top n cards, reshuffling the discard pile into
// the draw pile first if the draw pile is short. Fewer than n cards across
// both piles cannot happen with at most 11 enactments; it is reported as an
// InvariantViolation, not a recoverable error.
func (d *PolicyDeck) Draw(n int) ([]PolicyType, error) {
	if err := d.reshuffleIfShort(n); err != nil {
		return nil, err
	}
	top := make([]PolicyType, n)
	copy(top, d.draw[:n])
	d.draw = d.draw[n:]
	return top, nil
}

// Peek returns the top n cards without removing them, reshuffling first the
// same way Draw does so the peek always has n cards to look at.
func (d *PolicyDeck) Peek(n int) ([]PolicyType, error) {
	if err := d.reshuffleIfShort(n); err != nil {
		return nil, err
	}
	top := make([]PolicyType, n)
	copy(top, d.draw[:n])
	return top, nil
}

// Discard appends cards face-down to the discard pile.
func (d *PolicyDeck) Discard(cards ...PolicyType) {
	d.discard = append(d.discard, cards...)
}

func (d *PolicyDeck) reshuffleIfShort(n int) error {
	if len(d.draw) >= n {
		return nil
	}
	if len(d.draw)+len(d.discard) < n {
		return &InvariantViolation{Msg: "policy deck exhausted"}
	}
	d.draw = append(d.draw, d.discard...)
	d.discard = nil
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
	return nil
}

// DrawCount returns the number of cards left in the draw pile.
func (d *PolicyDeck) DrawCount() int { return len(d.draw) }

// DiscardCount returns the number of cards in the discard pile.
func (d *PolicyDeck) DiscardCount() int { return len(d.discard) }
