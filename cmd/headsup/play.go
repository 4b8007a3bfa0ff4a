package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/display"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/human"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/statistics"
)

type PlayCmd struct {
	Bot      string        `arg:"" help:"Bot to play: a built-in name, a ws:// URL or an executable path"`
	Opponent string        `default:"human" help:"Opponent: human or a built-in bot name"`
	Stack    int           `help:"Starting stack (config default 7500)"`
	SB       int           `name:"sb" help:"Small blind (config default 50)"`
	BB       int           `name:"bb" help:"Big blind (config default 100)"`
	MaxHands int           `help:"Stop after this many hands, 0 plays to elimination"`
	Seed     int64         `help:"RNG seed (0 for random)"`
	Timeout  time.Duration `help:"Per-decision timeout for external bots (config default 5s)"`
	NoColor  bool          `help:"Disable coloured output"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.load()
	if err != nil {
		return err
	}
	interactive := c.Opponent == "human"
	logger := cli.logger(cfg, interactive)

	mc := cfg.MatchConfig()
	overrideInt(&mc.StartingStack, c.Stack)
	overrideInt(&mc.SmallBlind, c.SB)
	overrideInt(&mc.BigBlind, c.BB)
	overrideInt(&mc.MaxHands, c.MaxHands)
	if c.Seed != 0 {
		mc.Seed = c.Seed
	}
	mc.Seed = randutil.Seed(mc.Seed)
	timeout, err := cfg.BotTimeout()
	if err != nil {
		return err
	}
	if c.Timeout > 0 {
		timeout = c.Timeout
	}

	ctx, cancel := signalContext()
	defer cancel()

	d, err := bot.Resolve(ctx, c.Bot, bot.ResolveOptions{
		Timeout: timeout,
		Rng:     randutil.New(randutil.DeriveDecider(mc.Seed, 0)),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer bot.Close(d)

	perspective := display.ShowAll
	if interactive {
		perspective = 1
	}
	ui := display.New(os.Stdout, display.Options{Perspective: perspective, NoColor: c.NoColor})

	var opponent game.Decider
	if interactive {
		opponent = human.New(os.Stdin, os.Stdout, ui)
		mc.Names = distinctNames(botName(c.Bot), "you")
	} else {
		opponent, err = bot.Resolve(ctx, c.Opponent, bot.ResolveOptions{
			Rng:    randutil.New(randutil.DeriveDecider(mc.Seed, 1)),
			Logger: logger,
		})
		if err != nil {
			return err
		}
		defer bot.Close(opponent)
		mc.Names = distinctNames(botName(c.Bot), botName(c.Opponent))
	}

	tracked := 0
	if interactive {
		tracked = 1
	}
	tally := statistics.NewCollector(tracked)
	m, err := match.New(mc, [2]game.Decider{d, opponent}, logger, match.WithObserver(game.Observers{ui, tally}))
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s • stacks %d • blinds %d/%d • seed %d\n",
		mc.Names[0], mc.Names[1], mc.StartingStack, mc.SmallBlind, mc.BigBlind, mc.Seed)

	summary, err := m.Run(ctx)
	if errors.Is(err, game.ErrQuit) {
		fmt.Printf("\nQuit after %d hands. Stacks: %s %d, %s %d\n",
			summary.Hands, summary.Names[0], summary.Stacks[0], summary.Names[1], summary.Stacks[1])
		printTally(mc.Names[tracked], tally.Stats())
		return nil
	}
	if err != nil {
		return err
	}
	ui.MatchFinished(summary)
	printTally(mc.Names[tracked], tally.Stats())
	return nil
}

func printTally(name string, s *statistics.Statistics) {
	if s.Hands == 0 {
		return
	}
	fmt.Printf("%s: %+.2f bb/hand over %d hands (%d won at showdown, %d without)\n",
		name, s.Mean(), s.Hands, s.ShowdownWins, s.NonShowdownWins)
}

func overrideInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
