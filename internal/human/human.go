// Package human lets a person play a match from the terminal.
package human

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/headsup/internal/game"
)

var errUnknownCommand = errors.New("unknown command")

// Styler renders prompt and error text. display.Display implements it.
type Styler interface {
	Prompt(s string) string
	Error(s string) string
}

type plain struct{}

func (plain) Prompt(s string) string { return s }
func (plain) Error(s string) string  { return s }

// Player is a game.Decider that reads actions from a line-oriented input. It
// keeps asking until the input names a legal action.
type Player struct {
	in    *bufio.Scanner
	out   io.Writer
	style Styler
}

var _ game.Decider = (*Player)(nil)

// New creates a player reading from in and prompting on out. A nil style
// prints plain text.
func New(in io.Reader, out io.Writer, style Styler) *Player {
	if style == nil {
		style = plain{}
	}
	return &Player{in: bufio.NewScanner(in), out: out, style: style}
}

// Decide prompts until a legal action is entered. End of input or "quit"
// returns game.ErrQuit. Memory is passed through untouched.
//
// ctx is only checked between lines. A read blocked at the prompt does not
// notice cancellation until the next line or end of input arrives.
func (p *Player) Decide(ctx context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	legal := snap.Legal()
	for {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}
		fmt.Fprint(p.out, p.style.Prompt(promptText(snap, legal))+" ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, nil, fmt.Errorf("reading input: %w", err)
			}
			fmt.Fprintln(p.out)
			return 0, nil, game.ErrQuit
		}

		amount, err := Parse(p.in.Text(), legal)
		if errors.Is(err, game.ErrQuit) {
			return 0, nil, err
		}
		if err == nil {
			_, err = legal.Check(amount)
		}
		if err != nil {
			fmt.Fprintln(p.out, p.style.Error(err.Error()))
			continue
		}
		return amount, mem, nil
	}
}

// Parse converts a command into an action amount. It accepts fold, check,
// call, bet or raise with a total, all-in, quit and bare amounts, plus
// their one-letter forms. The result is not checked for legality.
func Parse(line string, legal game.LegalActions) (int, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: enter an action", errUnknownCommand)
	}
	cmd := fields[0]

	if n, err := strconv.Atoi(cmd); err == nil && len(fields) == 1 {
		return n, nil
	}

	switch cmd {
	case "q", "quit", "exit":
		return 0, game.ErrQuit
	case "f", "fold":
		return game.FoldAmount, nil
	case "k", "x", "check":
		return game.CheckAmount, nil
	case "c", "call":
		if legal.CanCheck() {
			return game.CheckAmount, nil
		}
		return legal.CurrentBet, nil
	case "a", "allin", "all-in", "shove":
		return legal.MaxTotal(), nil
	case "b", "bet", "r", "raise":
		if len(fields) != 2 {
			return legal.MinRaiseTo(), nil
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an amount", errUnknownCommand, fields[1])
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownCommand, line)
	}
}

func promptText(snap game.Snapshot, legal game.LegalActions) string {
	pot := 0
	for _, p := range snap.Pots {
		pot += p.Value
	}
	for _, b := range snap.BetMoney {
		if b > 0 {
			pot += b
		}
	}

	opts := []string{"[f]old"}
	if legal.CanCheck() {
		opts = append(opts, "[k] check")
	} else {
		opts = append(opts, fmt.Sprintf("[c]all %d", legal.ToCall()))
	}
	if legal.CanRaise() {
		verb := "[r]aise to"
		if legal.CurrentBet == 0 {
			verb = "[b]et"
		}
		opts = append(opts, fmt.Sprintf("%s N (%d-%d)", verb, legal.MinRaiseTo(), legal.MaxTotal()), "[a]ll-in")
	}
	opts = append(opts, "[q]uit")

	return fmt.Sprintf("%s to act, pot %d, stack %d: %s >",
		snap.Players[snap.IndexToAction], pot, legal.Stack, strings.Join(opts, ", "))
}
