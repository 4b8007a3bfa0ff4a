package statistics

import "github.com/lox/headsup/internal/game"

// Collector is a game.Observer that records every finished hand from one
// seat's point of view.
type Collector struct {
	game.NopObserver
	seat  int
	stats *Statistics
}

// NewCollector tracks the player in seat.
func NewCollector(seat int) *Collector {
	return &Collector{seat: seat, stats: &Statistics{}}
}

// Stats returns the results recorded so far.
func (c *Collector) Stats() *Statistics {
	return c.stats
}

func (c *Collector) HandFinished(h *game.Hand, r *game.Result) {
	pot := 0
	for _, p := range r.Pots {
		pot += p.Amount
	}
	pos := BigBlind
	if h.SmallBlindSeat == c.seat {
		pos = SmallBlind
	}
	c.stats.Add(HandResult{
		NetBB:          float64(r.Net[c.seat]) / float64(h.BigBlind),
		Position:       pos,
		WentToShowdown: r.Outcome == game.OutcomeShowdown,
		PotChips:       pot,
		BigBlind:       h.BigBlind,
	})
}
