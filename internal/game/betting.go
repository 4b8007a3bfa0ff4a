package game

import (
	"errors"
	"fmt"
)

// ErrIllegalAction is returned for an action the acting seat may not take.
var ErrIllegalAction = errors.New("illegal action")

// Action amounts sent by deciders. Any positive amount is the seat's total
// bet for the street.
const (
	FoldAmount  = -1
	CheckAmount = 0
)

// State is the position of a hand in its lifecycle.
type State int

const (
	PreflopBetting State = iota
	FlopBetting
	TurnBetting
	RiverBetting
	Showdown
	HandComplete
)

func (s State) String() string {
	switch s {
	case PreflopBetting:
		return "preflop"
	case FlopBetting:
		return "flop"
	case TurnBetting:
		return "turn"
	case RiverBetting:
		return "river"
	case Showdown:
		return "showdown"
	case HandComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Betting reports whether the state is one of the four betting rounds.
func (s State) Betting() bool {
	return s >= PreflopBetting && s <= RiverBetting
}

// ActionKind classifies a legal action.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
)

func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// MarshalText encodes the kind by name.
func (a ActionKind) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a kind name.
func (a *ActionKind) UnmarshalText(b []byte) error {
	for k := Fold; k <= Raise; k++ {
		if k.String() == string(b) {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", b)
}

// Move is an action applied to a hand.
type Move struct {
	Seat     int        `json:"seat"`
	Street   State      `json:"-"`
	Kind     ActionKind `json:"kind"`
	Total    int        `json:"total"` // seat's street bet after the move
	Added    int        `json:"added"` // chips moved from stack to the bet
	AllIn    bool       `json:"all_in,omitempty"`
	Implicit bool       `json:"implicit,omitempty"` // forced fold
}

// LegalActions describes what the acting seat may do.
type LegalActions struct {
	Seat       int
	Bet        int // seat's street bet so far
	Stack      int
	CurrentBet int // largest street bet
}

// ToCall returns the chips needed to match the current bet, capped at the stack.
func (l LegalActions) ToCall() int {
	return min(l.CurrentBet-l.Bet, l.Stack)
}

// CanCheck reports whether the seat owes nothing.
func (l LegalActions) CanCheck() bool {
	return l.CurrentBet == l.Bet
}

// MaxTotal is the largest street total the seat can reach: all-in.
func (l LegalActions) MaxTotal() int {
	return l.Bet + l.Stack
}

// CanRaise reports whether the seat has chips beyond a call.
func (l LegalActions) CanRaise() bool {
	return l.MaxTotal() > l.CurrentBet
}

// MinRaiseTo returns the smallest legal raise or opening bet total, or the
// all-in total when the stack is too short for a full raise.
func (l LegalActions) MinRaiseTo() int {
	target := 2 * l.CurrentBet
	if l.CurrentBet == 0 {
		target = 1
	}
	return min(target, l.MaxTotal())
}

// Check classifies amount, returning an error wrapping ErrIllegalAction when
// the seat may not take it.
func (l LegalActions) Check(amount int) (ActionKind, error) {
	switch {
	case amount == FoldAmount:
		if l.CanCheck() {
			return Fold, fmt.Errorf("%w: fold when check is free", ErrIllegalAction)
		}
		return Fold, nil
	case amount < FoldAmount:
		return Fold, fmt.Errorf("%w: amount %d", ErrIllegalAction, amount)
	case amount == CheckAmount, amount == l.CurrentBet:
		if l.CanCheck() {
			return Check, nil
		}
		if amount == CheckAmount {
			return Fold, fmt.Errorf("%w: check facing %d to call", ErrIllegalAction, l.CurrentBet-l.Bet)
		}
		return Call, nil
	case amount > l.MaxTotal():
		return Fold, fmt.Errorf("%w: total %d exceeds stack, max %d", ErrIllegalAction, amount, l.MaxTotal())
	case amount < l.CurrentBet:
		if amount == l.MaxTotal() {
			return Call, nil // all-in for less
		}
		return Fold, fmt.Errorf("%w: total %d below current bet %d", ErrIllegalAction, amount, l.CurrentBet)
	case l.CurrentBet == 0:
		return Bet, nil
	case amount >= 2*l.CurrentBet, amount == l.MaxTotal():
		return Raise, nil
	default:
		return Fold, fmt.Errorf("%w: raise to %d below minimum %d", ErrIllegalAction, amount, 2*l.CurrentBet)
	}
}
