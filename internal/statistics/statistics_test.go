package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if err := stats.Validate(); err == nil || !strings.Contains(err.Error(), "invalid hands count") {
		t.Errorf("Expected invalid hands count error, got: %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{NetBB: 1.0, Position: SmallBlind, PotChips: 400, BigBlind: 100},
		{NetBB: -2.0, Position: BigBlind, WentToShowdown: true, PotChips: 800, BigBlind: 100},
		{NetBB: 3.0, Position: SmallBlind, WentToShowdown: true, PotChips: 1200, BigBlind: 100},
		{NetBB: 0.0, Position: BigBlind, PotChips: 200, BigBlind: 100},
		{NetBB: -1.0, Position: SmallBlind, PotChips: 600, BigBlind: 100},
	}
	for _, result := range results {
		stats.Add(result)
	}

	if stats.Hands != 5 {
		t.Errorf("Expected 5 hands, got %d", stats.Hands)
	}
	if math.Abs(stats.Mean()-0.2) > 1e-9 {
		t.Errorf("Expected mean of 0.2, got %f", stats.Mean())
	}
	if stats.Median() != 0.0 {
		t.Errorf("Expected median of 0.0, got %f", stats.Median())
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 non-showdown win, got %d and %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.PositionResults[SmallBlind].Hands != 3 || stats.PositionResults[BigBlind].Hands != 2 {
		t.Errorf("Expected 3/2 hands by position, got %d/%d",
			stats.PositionResults[SmallBlind].Hands, stats.PositionResults[BigBlind].Hands)
	}
	if math.Abs(stats.PositionMean(SmallBlind)-1.0) > 1e-9 {
		t.Errorf("Expected small blind mean of 1.0, got %f", stats.PositionMean(SmallBlind))
	}
	if math.Abs(stats.PositionMean(BigBlind)+1.0) > 1e-9 {
		t.Errorf("Expected big blind mean of -1.0, got %f", stats.PositionMean(BigBlind))
	}
	if stats.PositionMean(Position(5)) != 0 {
		t.Errorf("Expected 0 for an unknown position, got %f", stats.PositionMean(Position(5)))
	}
	if stats.MaxPotChips != 1200 || math.Abs(stats.MaxPotBB-12.0) > 1e-9 {
		t.Errorf("Expected max pot of 1200 chips (12bb), got %d (%f)", stats.MaxPotChips, stats.MaxPotBB)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got error: %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_VarianceAndInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, 3, 5} {
		stats.Add(HandResult{NetBB: v})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4.0, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2.0, got %f", stats.StdDev())
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f", low, high)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should have positive width, got %f", high-low)
	}
}

func TestStatistics_BigPots(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.0, PotChips: 1000, BigBlind: 100})
	stats.Add(HandResult{NetBB: 5.0, PotChips: 10000, BigBlind: 100})
	stats.Add(HandResult{NetBB: -1.0, PotChips: 50, BigBlind: 0})

	if stats.BigPots != 1 {
		t.Errorf("Expected 1 big pot, got %d", stats.BigPots)
	}
	if math.Abs(stats.BigPotsBB-5.0) > 1e-9 {
		t.Errorf("Expected big pot BB of 5.0, got %f", stats.BigPotsBB)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 2, Position: SmallBlind, WentToShowdown: true, PotChips: 400, BigBlind: 100},
		{NetBB: -1, Position: BigBlind, PotChips: 200, BigBlind: 100},
		{NetBB: 60, Position: BigBlind, WentToShowdown: true, PotChips: 12000, BigBlind: 100},
	}
	a.Add(results[0])
	b.Add(results[1])
	b.Add(results[2])
	for _, r := range results {
		all.Add(r)
	}

	a.Merge(b)
	if a.Hands != all.Hands || a.SumBB != all.SumBB || a.SumBB2 != all.SumBB2 {
		t.Errorf("Merged totals differ: got %d/%f/%f, want %d/%f/%f",
			a.Hands, a.SumBB, a.SumBB2, all.Hands, all.SumBB, all.SumBB2)
	}
	if a.PositionResults != all.PositionResults {
		t.Errorf("Merged positions differ: got %+v, want %+v", a.PositionResults, all.PositionResults)
	}
	if a.MaxPotChips != 12000 || a.BigPots != 1 || a.ShowdownWins != 2 {
		t.Errorf("Merged pot and win counters wrong: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Merged stats invalid: %v", err)
	}
}

func TestStatistics_ValidateFailures(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
		want  string
	}{
		{
			name:  "ledger",
			stats: Statistics{Hands: 1, Values: []float64{1}, AllBB: 1, ShowdownBB: 0.5, NonShowdownBB: 0.6},
			want:  "ledger mismatch",
		},
		{
			name:  "values",
			stats: Statistics{Hands: 2, Values: []float64{1}, AllBB: 1, NonShowdownBB: 1},
			want:  "values array length",
		},
		{
			name: "wins",
			stats: Statistics{
				Hands: 2, Values: []float64{1, 1}, AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1,
				ShowdownWins: 2, NonShowdownWins: 2,
				PositionResults: [2]PositionStats{{Hands: 2}},
			},
			want: "exceeds total hands",
		},
		{
			name: "positions",
			stats: Statistics{
				Hands: 2, Values: []float64{1, 1}, AllBB: 2, ShowdownBB: 1, NonShowdownBB: 1,
				PositionResults: [2]PositionStats{{Hands: 1}},
			},
			want: "position hands total",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q error, got: %v", tt.want, err)
			}
		})
	}
}
