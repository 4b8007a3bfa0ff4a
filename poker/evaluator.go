package poker

import (
	"errors"
	"fmt"
)

// HandScore is the strength of a five card poker hand. Greater scores beat
// lesser ones and equal scores tie. The category lives in the bits above
// scoreShift, tie-break ranks four bits each below it.
type HandScore uint32

// HandCategory enumerates the categories of poker hands ordered from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const scoreShift = 20

var (
	// ErrInvalidHand is the base error for every evaluator input error.
	ErrInvalidHand = errors.New("invalid hand")

	ErrTooFewCards  = fmt.Errorf("%w: fewer than 5 cards", ErrInvalidHand)
	ErrTooManyCards = fmt.Errorf("%w: more than 7 cards", ErrInvalidHand)
)

// String returns a human-readable category name.
func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Category returns the type of hand (pair, flush, etc.).
func (s HandScore) Category() HandCategory {
	return HandCategory(s >> scoreShift)
}

// String returns the category name of the score.
func (s HandScore) String() string {
	return s.Category().String()
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func Compare(a, b HandScore) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// Evaluate scores the best five card hand that can be made from 5, 6 or 7 cards.
func Evaluate(cards ...Card) (HandScore, error) {
	score, _, err := BestHand(cards...)
	return score, err
}

// BestHand is Evaluate that also returns the five cards making the hand.
func BestHand(cards ...Card) (HandScore, [5]Card, error) {
	var best [5]Card
	if err := validateHand(cards); err != nil {
		return 0, best, err
	}

	var bestScore HandScore
	var five [5]Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						if s := scoreFive(&five); s > bestScore || best[0] == 0 {
							bestScore = s
							best = five
						}
					}
				}
			}
		}
	}
	return bestScore, best, nil
}

func validateHand(cards []Card) error {
	switch {
	case len(cards) < 5:
		return fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
	case len(cards) > 7:
		return fmt.Errorf("%w: got %d", ErrTooManyCards, len(cards))
	}
	var seen Hand
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %w: %#x", ErrInvalidHand, ErrInvalidCard, uint64(c))
		}
		if seen.Has(c) {
			return fmt.Errorf("%w: %w: %s", ErrInvalidHand, ErrDuplicateCard, c)
		}
		seen.Add(c)
	}
	return nil
}

type rankGroup struct {
	rank  Rank
	count uint8
}

// scoreFive classifies exactly five distinct cards.
func scoreFive(cards *[5]Card) HandScore {
	var counts [Ace + 1]uint8
	var rankMask uint16
	flush := true
	suit := cards[0].Suit()
	for _, c := range cards {
		r := c.Rank()
		counts[r]++
		rankMask |= 1 << r
		if c.Suit() != suit {
			flush = false
		}
	}

	// Groups ordered by size, then by rank, both descending.
	var groups [5]rankGroup
	n := 0
	for r := Ace; r >= Two; r-- {
		if counts[r] == 0 {
			continue
		}
		g := rankGroup{rank: r, count: counts[r]}
		i := n
		for i > 0 && groups[i-1].count < g.count {
			groups[i] = groups[i-1]
			i--
		}
		groups[i] = g
		n++
	}

	high := straightHigh(rankMask)
	switch {
	case flush && high != 0:
		return makeScore(StraightFlush, high)
	case groups[0].count == 4:
		return makeScore(FourOfAKind, groups[0].rank, groups[1].rank)
	case groups[0].count == 3 && groups[1].count == 2:
		return makeScore(FullHouse, groups[0].rank, groups[1].rank)
	case flush:
		return makeScore(Flush, groupRanks(groups[:n])...)
	case high != 0:
		return makeScore(Straight, high)
	case groups[0].count == 3:
		return makeScore(ThreeOfAKind, groupRanks(groups[:n])...)
	case groups[0].count == 2 && groups[1].count == 2:
		return makeScore(TwoPair, groupRanks(groups[:n])...)
	case groups[0].count == 2:
		return makeScore(Pair, groupRanks(groups[:n])...)
	default:
		return makeScore(HighCard, groupRanks(groups[:n])...)
	}
}

// straightHigh returns the top rank of a five rank straight in mask, Five for
// the wheel, or 0 when there is none.
func straightHigh(mask uint16) Rank {
	for high := Ace; high >= Six; high-- {
		run := uint16(0x1F) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	const wheel = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five
	if mask&wheel == wheel {
		return Five
	}
	return 0
}

func groupRanks(groups []rankGroup) []Rank {
	ranks := make([]Rank, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

func makeScore(cat HandCategory, ranks ...Rank) HandScore {
	s := HandScore(cat) << scoreShift
	for i, r := range ranks {
		s |= HandScore(r) << (4 * (4 - i))
	}
	return s
}
