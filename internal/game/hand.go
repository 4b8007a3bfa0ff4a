package game

import (
	"errors"
	"fmt"

	"github.com/lox/headsup/poker"
)

// ErrHandOver is returned when acting on a hand that is no longer betting.
var ErrHandOver = errors.New("hand is not in a betting round")

// Seat is one player's state within a hand.
type Seat struct {
	Name   string
	Stack  int
	Bet    int // chips bet on the current street
	Folded bool
	Hole   [2]poker.Card
}

// canAct reports whether the seat still makes decisions this hand.
func (s *Seat) canAct() bool {
	return !s.Folded && s.Stack > 0
}

func (s *Seat) commit(chips int) {
	s.Stack -= chips
	s.Bet += chips
}

// Hand is a single heads-up hand. The small blind is the button: it acts
// first preflop and second on every later street.
type Hand struct {
	Number         int
	Seats          [2]*Seat
	SmallBlindSeat int
	SmallBlind     int
	BigBlind       int
	State          State
	Board          []poker.Card
	Acting         int // seat to act, -1 when no decision is pending
	CurrentBet     int // largest street bet

	acted       [2]bool
	ledger      *Ledger
	deck        *poker.Deck
	moves       []Move
	startStacks [2]int
	result      *Result
}

// BigBlindSeat returns the seat posting the big blind.
func (h *Hand) BigBlindSeat() int {
	return 1 - h.SmallBlindSeat
}

// Moves returns the actions taken so far.
func (h *Hand) Moves() []Move {
	return append([]Move(nil), h.moves...)
}

// Committed returns the seat's total chips in the hand, street bet included.
func (h *Hand) Committed(seat int) int {
	return h.ledger.Contribution(seat) + h.Seats[seat].Bet
}

// Pots returns the pots formed by completed streets. Bets on the current
// street are not included.
func (h *Hand) Pots() ([]Pot, error) {
	return h.ledger.Pots()
}

// Result returns the settled result, or nil before HandComplete.
func (h *Hand) Result() *Result {
	return h.result
}

// IsComplete reports whether the hand has been settled.
func (h *Hand) IsComplete() bool {
	return h.State == HandComplete
}

// Legal returns the legal actions for the acting seat.
func (h *Hand) Legal() (LegalActions, error) {
	if !h.State.Betting() || h.Acting < 0 {
		return LegalActions{}, ErrHandOver
	}
	s := h.Seats[h.Acting]
	return LegalActions{
		Seat:       h.Acting,
		Bet:        s.Bet,
		Stack:      s.Stack,
		CurrentBet: h.CurrentBet,
	}, nil
}

// Act applies amount for the acting seat: -1 folds, 0 checks and a positive
// amount is the seat's total street bet. An illegal amount leaves the hand
// unchanged and returns an error wrapping ErrIllegalAction.
func (h *Hand) Act(amount int) (Move, error) {
	legal, err := h.Legal()
	if err != nil {
		return Move{}, err
	}
	kind, err := legal.Check(amount)
	if err != nil {
		return Move{}, fmt.Errorf("seat %d: %w", h.Acting, err)
	}
	return h.apply(kind, amount, false)
}

// Fold folds the acting seat unconditionally. Used when a decider fails,
// times out or answers with an illegal action.
func (h *Hand) Fold() (Move, error) {
	if _, err := h.Legal(); err != nil {
		return Move{}, err
	}
	return h.apply(Fold, FoldAmount, true)
}

func (h *Hand) apply(kind ActionKind, amount int, implicit bool) (Move, error) {
	seat := h.Acting
	s := h.Seats[seat]
	m := Move{Seat: seat, Street: h.State, Kind: kind, Implicit: implicit}

	switch kind {
	case Fold:
		s.Folded = true
		h.ledger.Fold(seat)
	case Check:
	case Call:
		m.Added = min(h.CurrentBet-s.Bet, s.Stack)
		s.commit(m.Added)
	case Bet, Raise:
		m.Added = amount - s.Bet
		s.commit(m.Added)
		h.CurrentBet = s.Bet
		h.acted = [2]bool{} // the other seat must respond
	}
	h.acted[seat] = true
	m.Total = s.Bet
	m.AllIn = kind != Fold && s.Stack == 0
	h.moves = append(h.moves, m)

	return m, h.advance(seat)
}

// advance moves the action on after last acted, closing the round and
// dealing streets as needed.
func (h *Hand) advance(last int) error {
	if h.liveSeats() < 2 {
		h.rollBets()
		return h.settle(OutcomeFold)
	}

	if !h.roundComplete() {
		h.Acting = h.nextToAct(last)
		return nil
	}

	h.rollBets()
	if h.actors() < 2 || h.State == RiverBetting {
		if err := h.dealBoardTo(5); err != nil {
			return err
		}
		h.State = Showdown
		return h.settle(OutcomeShowdown)
	}

	if err := h.nextStreet(); err != nil {
		return err
	}
	h.Acting = h.BigBlindSeat()
	return nil
}

// roundComplete reports whether the current betting round is over.
func (h *Hand) roundComplete() bool {
	var actors []int
	for i, s := range h.Seats {
		if s.canAct() {
			actors = append(actors, i)
		}
	}
	switch len(actors) {
	case 0:
		return true
	case 1:
		// Nobody left to respond to: done once the last actor owes nothing.
		return h.Seats[actors[0]].Bet >= h.CurrentBet
	default:
		return h.acted[0] && h.acted[1] && h.Seats[0].Bet == h.Seats[1].Bet
	}
}

func (h *Hand) nextToAct(last int) int {
	if other := 1 - last; h.Seats[other].canAct() {
		return other
	}
	if h.Seats[last].canAct() {
		return last
	}
	return -1
}

func (h *Hand) liveSeats() int {
	n := 0
	for _, s := range h.Seats {
		if !s.Folded {
			n++
		}
	}
	return n
}

func (h *Hand) actors() int {
	n := 0
	for _, s := range h.Seats {
		if s.canAct() {
			n++
		}
	}
	return n
}

// rollBets moves street bets into the ledger.
func (h *Hand) rollBets() {
	for i, s := range h.Seats {
		h.ledger.Commit(i, s.Bet)
		s.Bet = 0
	}
	h.CurrentBet = 0
	h.acted = [2]bool{}
	h.Acting = -1
}

func (h *Hand) nextStreet() error {
	switch h.State {
	case PreflopBetting:
		h.State = FlopBetting
		return h.dealBoardTo(3)
	case FlopBetting:
		h.State = TurnBetting
		return h.dealBoardTo(4)
	case TurnBetting:
		h.State = RiverBetting
		return h.dealBoardTo(5)
	default:
		return fmt.Errorf("no street after %s", h.State)
	}
}

func (h *Hand) dealBoardTo(n int) error {
	if len(h.Board) >= n {
		return nil
	}
	cards, err := h.deck.Deal(n - len(h.Board))
	if err != nil {
		return fmt.Errorf("dealing board: %w", err)
	}
	h.Board = append(h.Board, cards...)
	return nil
}

func (h *Hand) dealHoleCards() error {
	for i, s := range h.Seats {
		cards, err := h.deck.Deal(2)
		if err != nil {
			return fmt.Errorf("dealing seat %d: %w", i, err)
		}
		s.Hole = [2]poker.Card{cards[0], cards[1]}
	}
	return nil
}

func (h *Hand) postBlinds() {
	sb := h.Seats[h.SmallBlindSeat]
	bb := h.Seats[h.BigBlindSeat()]
	sb.commit(min(h.SmallBlind, sb.Stack))
	bb.commit(min(h.BigBlind, bb.Stack))
	h.CurrentBet = max(sb.Bet, bb.Bet)
}
