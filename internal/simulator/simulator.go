// Package simulator plays many independent matches between two bots and
// aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/statistics"
)

// ErrNoMatches is returned when the config asks for zero matches.
var ErrNoMatches = errors.New("no matches to play")

// Config holds configuration for running simulations
type Config struct {
	Matches int
	Workers int // concurrent matches, 0 uses GOMAXPROCS
	Match   match.Config
	Seed    int64
}

// Factory creates the decider for bot 0 or bot 1 of a match. Each match
// gets its own deciders, seeded with seed.
type Factory func(ctx context.Context, bot int, seed int64) (game.Decider, error)

// Report is the aggregate outcome of a simulation. Statistics are from
// bot 0's point of view.
type Report struct {
	Names     [2]string
	Matches   int
	Wins      [2]int
	Draws     int
	Hands     int
	Stats     *statistics.Statistics
	Summaries []*match.Summary
	Seed      int64
	Elapsed   time.Duration
}

// WinRate returns the share of matches won by bot.
func (r *Report) WinRate(bot int) float64 {
	if r.Matches == 0 {
		return 0
	}
	return float64(r.Wins[bot]) / float64(r.Matches)
}

// Simulator runs matches between two bots
type Simulator struct {
	config  Config
	factory Factory
	logger  *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config, factory Factory, logger *log.Logger) *Simulator {
	return &Simulator{
		config:  config,
		factory: factory,
		logger:  logger.WithPrefix("simulator"),
	}
}

type matchResult struct {
	summary *match.Summary
	stats   *statistics.Statistics
	seat    int // bot 0's seat
}

// Run plays every match and returns the report. Bots swap seats on
// alternate matches. The first error stops the simulation.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Matches <= 0 {
		return nil, ErrNoMatches
	}
	if err := s.config.Match.Validate(); err != nil {
		return nil, err
	}

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	seed := randutil.Seed(s.config.Seed)
	start := time.Now()
	s.logger.Info("Starting simulation",
		"bots", s.config.Match.Names[:],
		"matches", s.config.Matches,
		"workers", workers,
		"seed", seed)

	results := make([]matchResult, s.config.Matches)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		g.Go(func() error {
			r, err := s.playMatch(gctx, i, randutil.Derive(seed, i))
			if err != nil {
				return fmt.Errorf("match %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Names:   s.config.Match.Names,
		Matches: len(results),
		Stats:   &statistics.Statistics{},
		Seed:    seed,
	}
	for _, r := range results {
		report.Summaries = append(report.Summaries, r.summary)
		report.Hands += r.summary.Hands
		report.Stats.Merge(r.stats)
		switch r.summary.Winner {
		case -1:
			report.Draws++
		case r.seat:
			report.Wins[0]++
		default:
			report.Wins[1]++
		}
	}
	report.Elapsed = time.Since(start)

	s.logger.Info("Simulation complete",
		"matches", report.Matches,
		"wins", report.Wins[:],
		"draws", report.Draws,
		"hands", report.Hands,
		"bb_per_hand", fmt.Sprintf("%.3f", report.Stats.Mean()),
		"elapsed", report.Elapsed)
	return report, nil
}

// playMatch plays match i. Bot 0 sits in seat 0 on even matches and seat 1
// on odd ones.
func (s *Simulator) playMatch(ctx context.Context, i int, seed int64) (matchResult, error) {
	seat := i % 2
	cfg := s.config.Match
	cfg.Seed = seed
	cfg.Names[seat], cfg.Names[1-seat] = s.config.Match.Names[0], s.config.Match.Names[1]

	var deciders [2]game.Decider
	defer func() {
		for _, d := range deciders {
			if d != nil {
				if err := bot.Close(d); err != nil {
					s.logger.Warn("Failed to close bot", "error", err)
				}
			}
		}
	}()
	for b := range 2 {
		d, err := s.factory(ctx, b, randutil.DeriveDecider(seed, b))
		if err != nil {
			return matchResult{}, fmt.Errorf("creating %s: %w", s.config.Match.Names[b], err)
		}
		if b == 0 {
			deciders[seat] = d
		} else {
			deciders[1-seat] = d
		}
	}

	c := statistics.NewCollector(seat)
	m, err := match.New(cfg, deciders, s.logger, match.WithObserver(c))
	if err != nil {
		return matchResult{}, err
	}
	summary, err := m.Run(ctx)
	if err != nil {
		return matchResult{}, err
	}
	s.logger.Debug("Match finished", "match", i+1, "winner", summary.WinnerName(), "hands", summary.Hands)
	return matchResult{summary: summary, stats: c.Stats(), seat: seat}, nil
}
