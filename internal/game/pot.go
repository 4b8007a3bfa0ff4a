package game

import (
	"errors"
	"fmt"
	"slices"
)

// ErrPotMismatch means the pot layers do not add up to the chips committed.
// It indicates a bug and is fatal to the match.
var ErrPotMismatch = errors.New("pot total does not match contributions")

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Eligible []int // Seats that can win this pot
}

// Ledger records how many chips each seat has committed to the hand and
// splits them into layered pots.
type Ledger struct {
	contributions []int
	folded        []bool
}

// NewLedger creates an empty ledger for the given number of seats.
func NewLedger(seats int) *Ledger {
	return &Ledger{
		contributions: make([]int, seats),
		folded:        make([]bool, seats),
	}
}

// Commit adds amount to the seat's contribution.
func (l *Ledger) Commit(seat, amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("negative commit %d for seat %d", amount, seat))
	}
	l.contributions[seat] += amount
}

// Fold marks the seat as no longer eligible for any pot. Its chips stay in.
func (l *Ledger) Fold(seat int) {
	l.folded[seat] = true
}

// Folded reports whether the seat has folded.
func (l *Ledger) Folded(seat int) bool {
	return l.folded[seat]
}

// Contribution returns the chips the seat has committed so far.
func (l *Ledger) Contribution(seat int) int {
	return l.contributions[seat]
}

// Total returns the chips committed by all seats.
func (l *Ledger) Total() int {
	total := 0
	for _, c := range l.contributions {
		total += c
	}
	return total
}

// Pots layers the contributions into pots. Each distinct commitment level of
// a live seat closes a layer; every seat, folded or not, pays into a layer up
// to that level. A layer with one eligible seat is that seat's uncalled
// excess.
func (l *Ledger) Pots() ([]Pot, error) {
	var levels []int
	var live []int
	for seat, c := range l.contributions {
		if l.folded[seat] {
			continue
		}
		live = append(live, seat)
		if c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)

	var pots []Pot
	previous := 0
	for _, level := range levels {
		pot := Pot{}
		for seat, c := range l.contributions {
			pot.Amount += min(max(c, previous), level) - previous
			if !l.folded[seat] && c >= level {
				pot.Eligible = append(pot.Eligible, seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		previous = level
	}

	// Folded chips above the highest live level have nowhere else to go.
	excess := 0
	for _, c := range l.contributions {
		if c > previous {
			excess += c - previous
		}
	}
	if excess > 0 {
		if len(pots) == 0 {
			pots = append(pots, Pot{Eligible: live})
		}
		pots[len(pots)-1].Amount += excess
	}

	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	if total := l.Total(); sum != total {
		return nil, fmt.Errorf("%w: pots %d, committed %d", ErrPotMismatch, sum, total)
	}
	return pots, nil
}
