package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Position is a seat's blind in a heads-up hand.
type Position int

const (
	SmallBlind Position = iota
	BigBlind
)

func (p Position) String() string {
	if p == BigBlind {
		return "big blind"
	}
	return "small blind"
}

// HandResult represents the outcome of a single hand for the tracked bot
type HandResult struct {
	NetBB          float64  // Net big blinds won/lost
	Position       Position // Blind the bot posted
	WentToShowdown bool
	PotChips       int // Total chips in the pot
	BigBlind       int // Big blind size, used to express the pot in bb
}

// PositionStats tracks statistics for one blind position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics accumulates hand results for one bot across matches
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // All values for median/percentile calculation

	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won by a fold
	ShowdownBB      float64 // BB from showdowns, wins and losses
	NonShowdownBB   float64 // BB from folds, wins and losses
	AllBB           float64 // Total BB for the ledger check

	PositionResults [2]PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int     // Pots >= 50bb
	BigPotsBB   float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a hand result
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if pos := result.Position; pos == SmallBlind || pos == BigBlind {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].SumBB += netBB
		s.PositionResults[pos].SumBB2 += netBB * netBB
	}

	var potBB float64
	if result.BigBlind > 0 {
		potBB = float64(result.PotChips) / float64(result.BigBlind)
	}
	if result.PotChips > s.MaxPotChips {
		s.MaxPotChips = result.PotChips
		s.MaxPotBB = potBB
	}
	if potBB >= 50 {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge adds every result recorded in other.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i := range s.PositionResults {
		s.PositionResults[i].Hands += other.PositionResults[i].Hands
		s.PositionResults[i].SumBB += other.PositionResults[i].SumBB
		s.PositionResults[i].SumBB2 += other.PositionResults[i].SumBB2
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result from the given blind
func (s *Statistics) PositionMean(pos Position) float64 {
	if pos != SmallBlind && pos != BigBlind {
		return 0
	}
	ps := s.PositionResults[pos]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	if n := s.PositionResults[SmallBlind].Hands + s.PositionResults[BigBlind].Hands; n != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", n, s.Hands)
	}
	return nil
}
