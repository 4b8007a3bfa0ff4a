package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/lox/headsup/poker"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

// handConfig holds all configuration for creating a hand.
type handConfig struct {
	rng            *rand.Rand
	stacks         [2]int
	smallBlindSeat int
	smallBlind     int
	bigBlind       int

	names  [2]string
	number int
	deck   *poker.Deck // overrides rng for dealing
}

// NewHand posts the blinds, deals hole cards and returns a hand waiting on
// its first action. The RNG is required unless WithDeck supplies the cards.
//
// Example usage:
//
//	rng := randutil.New(42)
//	h, err := NewHand(rng, [2]int{1000, 1000}, 0, 50, 100,
//	    WithNames("alice", "bob"), WithHandNumber(3))
//
// NewHand panics on programmer misuse: no card source, a bad seat index,
// non-positive blinds or an empty stack.
func NewHand(rng *rand.Rand, stacks [2]int, smallBlindSeat, smallBlind, bigBlind int, opts ...HandOption) (*Hand, error) {
	cfg := &handConfig{
		rng:            rng,
		stacks:         stacks,
		smallBlindSeat: smallBlindSeat,
		smallBlind:     smallBlind,
		bigBlind:       bigBlind,
		names:          [2]string{"player0", "player1"},
		number:         1,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.rng == nil && cfg.deck == nil {
		panic("rng or deck is required for hand creation")
	}
	if smallBlindSeat != 0 && smallBlindSeat != 1 {
		panic(fmt.Sprintf("small blind seat %d out of range", smallBlindSeat))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		panic(fmt.Sprintf("invalid blinds %d/%d", smallBlind, bigBlind))
	}
	if stacks[0] <= 0 || stacks[1] <= 0 {
		panic(fmt.Sprintf("both stacks must be positive, got %v", stacks))
	}

	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(cfg.rng)
	}

	h := &Hand{
		Number:         cfg.number,
		SmallBlindSeat: smallBlindSeat,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		State:          PreflopBetting,
		Acting:         -1,
		deck:           deck,
		ledger:         NewLedger(2),
		startStacks:    stacks,
	}
	for i := range h.Seats {
		h.Seats[i] = &Seat{Name: cfg.names[i], Stack: stacks[i]}
	}

	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}
	h.postBlinds()

	// The small blind acts first preflop. Short blinds may already close the round.
	if err := h.advance(h.BigBlindSeat()); err != nil {
		return nil, err
	}
	return h, nil
}

// Option Functions

// WithNames sets the seat names shown to deciders and in logs.
func WithNames(seat0, seat1 string) HandOption {
	return func(c *handConfig) {
		c.names = [2]string{seat0, seat1}
	}
}

// WithHandNumber sets the hand's number within its match.
func WithHandNumber(n int) HandOption {
	return func(c *handConfig) {
		c.number = n
	}
}

// WithDeck sets a specific pre-arranged deck. Hole cards are dealt first
// (seat 0 then seat 1), then the flop, turn and river.
func WithDeck(deck *poker.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = deck
	}
}
