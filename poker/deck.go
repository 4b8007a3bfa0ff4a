package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// ErrDuplicateCard is returned when a card appears twice where cards must be distinct.
var ErrDuplicateCard = errors.New("duplicate card")

// Deck is a standard 52-card deck dealt front to back.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // nil uses the process-wide source
}

// NewDeck creates a new deck shuffled with the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
	return d
}

// NewDeckFromCards creates a deck that deals exactly the given cards in order.
// Used to replay hands and to stack decks in tests.
func NewDeckFromCards(cards ...Card) (*Deck, error) {
	var seen Hand
	for _, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
		}
		if seen.Has(c) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen.Add(c)
	}
	return &Deck{cards: append([]Card(nil), cards...)}, nil
}

// Shuffle resets the deck and shuffles it using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
