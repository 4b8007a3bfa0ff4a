package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// Outcome is how a hand ended.
type Outcome int

const (
	OutcomeFold Outcome = iota
	OutcomeShowdown
)

func (o Outcome) String() string {
	if o == OutcomeShowdown {
		return "showdown"
	}
	return "fold"
}

// Award is the distribution of one pot.
type Award struct {
	Pot     Pot
	Winners []int
	Shares  [2]int // chips won per seat from this pot
}

// Result is the settled outcome of a hand.
type Result struct {
	Outcome Outcome
	Board   []poker.Card
	Pots    []Pot
	Awards  []Award
	Payouts [2]int // chips received per seat
	Stacks  [2]int // stacks after payouts
	Net     [2]int // stack change over the hand

	// Showdown only.
	Scores [2]poker.HandScore
	Best   [2][5]poker.Card
}

// Winners returns the seats with a positive net result.
func (r *Result) Winners() []int {
	var seats []int
	for i, n := range r.Net {
		if n > 0 {
			seats = append(seats, i)
		}
	}
	return seats
}

// settle pays out every pot and completes the hand.
func (h *Hand) settle(outcome Outcome) error {
	pots, err := h.ledger.Pots()
	if err != nil {
		return fmt.Errorf("hand %d: %w", h.Number, err)
	}

	r := &Result{
		Outcome: outcome,
		Board:   append([]poker.Card(nil), h.Board...),
		Pots:    pots,
	}

	if outcome == OutcomeShowdown {
		for i, s := range h.Seats {
			if s.Folded {
				continue
			}
			cards := append([]poker.Card{s.Hole[0], s.Hole[1]}, h.Board...)
			score, best, err := poker.BestHand(cards...)
			if err != nil {
				return fmt.Errorf("evaluating seat %d: %w", i, err)
			}
			r.Scores[i] = score
			r.Best[i] = best
		}
	}

	for _, pot := range pots {
		award := Award{Pot: pot, Winners: h.potWinners(pot, outcome, r.Scores)}
		share := pot.Amount / len(award.Winners)
		for _, w := range award.Winners {
			award.Shares[w] = share
		}
		if odd := pot.Amount - share*len(award.Winners); odd > 0 {
			award.Shares[h.oddChipSeat(award.Winners)] += odd
		}
		for i, chips := range award.Shares {
			r.Payouts[i] += chips
		}
		r.Awards = append(r.Awards, award)
	}

	for i, s := range h.Seats {
		s.Stack += r.Payouts[i]
		r.Stacks[i] = s.Stack
		r.Net[i] = s.Stack - h.startStacks[i]
	}

	h.result = r
	h.State = HandComplete
	h.Acting = -1
	return nil
}

func (h *Hand) potWinners(pot Pot, outcome Outcome, scores [2]poker.HandScore) []int {
	if outcome == OutcomeFold || len(pot.Eligible) == 1 {
		return pot.Eligible
	}
	var winners []int
	var best poker.HandScore
	for _, seat := range pot.Eligible {
		switch s := scores[seat]; {
		case len(winners) == 0 || s > best:
			best = s
			winners = []int{seat}
		case s == best:
			winners = append(winners, seat)
		}
	}
	return winners
}

// oddChipSeat picks who receives chips that do not split evenly: the small
// blind when it shares the pot, otherwise the first winner after it.
func (h *Hand) oddChipSeat(winners []int) int {
	for i := 0; i < len(h.Seats); i++ {
		seat := (h.SmallBlindSeat + i) % len(h.Seats)
		for _, w := range winners {
			if w == seat {
				return seat
			}
		}
	}
	return winners[0]
}
