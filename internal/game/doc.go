// Package game implements a single heads-up No-Limit Hold'em hand.
//
// The main type is Hand, which owns the state of one hand: stacks, street
// bets, the pot ledger and the board. Seats act through Act and the hand
// moves itself through the streets, settling when one seat folds or the
// board is complete.
//
// # Basic Usage
//
//	h, err := game.NewHand(rng, [2]int{1000, 1000}, 0, 50, 100)
//	if err != nil {
//	    return err
//	}
//	h.Act(100)              // small blind calls
//	h.Act(game.CheckAmount) // big blind checks its option
//	if h.IsComplete() {
//	    result := h.Result()
//	}
//
// Actions are integers: -1 folds, 0 checks and a positive amount is the
// seat's total bet for the street. An illegal amount leaves the hand
// unchanged and returns an error wrapping ErrIllegalAction.
//
// # Deterministic Testing
//
// Pass a seeded *rand.Rand, or a stacked deck with WithDeck:
//
//	deck, _ := poker.NewDeckFromCards(cards...)
//	h, _ := game.NewHand(nil, stacks, 0, 50, 100, game.WithDeck(deck))
//
// # Architecture
//
// Hand delegates to small components:
//   - LegalActions: validates and classifies an action amount
//   - Ledger: records contributions and splits them into pots
//   - poker.Deck: deals cards from an injected RNG
//   - poker.BestHand: ranks each seat at showdown
//
// Engine drives a Hand by asking a Decider per seat for actions and reports
// progress to an Observer.
package game
