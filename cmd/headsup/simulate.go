package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/simulator"
	"github.com/lox/headsup/internal/statistics"
)

type SimulateCmd struct {
	BotA     string `arg:"" name:"bot-a" help:"First bot"`
	BotB     string `arg:"" name:"bot-b" help:"Second bot"`
	Matches  int    `default:"100" help:"Number of matches"`
	Workers  int    `help:"Concurrent matches (default GOMAXPROCS)"`
	MaxHands int    `default:"1000" help:"Hand limit per match, 0 plays to elimination"`
	Stack    int    `help:"Starting stack (config default 7500)"`
	Seed     int64  `help:"RNG seed (0 for random)"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	logger := cli.logger(cfg, false)
	timeout, err := cfg.BotTimeout()
	if err != nil {
		return err
	}

	mc := cfg.MatchConfig()
	mc.MaxHands = c.MaxHands
	overrideInt(&mc.StartingStack, c.Stack)
	mc.Names = distinctNames(botName(c.BotA), botName(c.BotB))
	seed := c.Seed
	if seed == 0 {
		seed = mc.Seed
	}

	specs := [2]string{c.BotA, c.BotB}
	factory := func(ctx context.Context, b int, seed int64) (game.Decider, error) {
		return bot.Resolve(ctx, specs[b], bot.ResolveOptions{
			Timeout: timeout,
			Rng:     randutil.New(seed),
			Logger:  logger,
		})
	}

	ctx, cancel := signalContext()
	defer cancel()

	sim := simulator.New(simulator.Config{
		Matches: c.Matches,
		Workers: c.Workers,
		Match:   mc,
		Seed:    seed,
	}, factory, logger)
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func printReport(r *simulator.Report) {
	s := r.Stats
	low, high := s.ConfidenceInterval95()

	fmt.Printf("\n=== %s vs %s ===\n", r.Names[0], r.Names[1])
	fmt.Printf("Matches: %d (seed %d) in %s\n", r.Matches, r.Seed, r.Elapsed.Round(time.Millisecond))
	fmt.Printf("Wins: %s %d (%.1f%%), %s %d (%.1f%%), draws %d\n",
		r.Names[0], r.Wins[0], 100*r.WinRate(0), r.Names[1], r.Wins[1], 100*r.WinRate(1), r.Draws)
	fmt.Printf("Hands: %d\n", r.Hands)
	if s.Hands == 0 {
		return
	}
	fmt.Printf("\n%s results:\n", r.Names[0])
	fmt.Printf("Mean: %.4f bb/hand ± %.4f SE\n", s.Mean(), s.StdError())
	fmt.Printf("95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Printf("Median: %.2f bb, p10 %.2f, p90 %.2f\n", s.Median(), s.Percentile(0.1), s.Percentile(0.9))
	fmt.Printf("Showdown: %d wins, %.1f bb • Non-showdown: %d wins, %.1f bb\n",
		s.ShowdownWins, s.ShowdownBB, s.NonShowdownWins, s.NonShowdownBB)
	for _, pos := range []statistics.Position{statistics.SmallBlind, statistics.BigBlind} {
		fmt.Printf("From the %s: %.4f bb/hand over %d hands\n", pos, s.PositionMean(pos), s.PositionResults[pos].Hands)
	}
	fmt.Printf("Largest pot: %d chips (%.1f bb), %d pots over 50 bb\n", s.MaxPotChips, s.MaxPotBB, s.BigPots)
}
