// Package display prints a running game log for a match to a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/poker"
)

// ShowAll reveals every seat's hole cards as they are dealt.
const ShowAll = -1

// Options controls what the display prints and how.
type Options struct {
	// Perspective is the seat whose hole cards are shown when dealt, or
	// ShowAll. Other cards are revealed only at showdown.
	Perspective int
	NoColor     bool
}

// Display is a game.Observer that writes a hand-by-hand log.
type Display struct {
	mu          sync.Mutex
	w           io.Writer
	styles      styles
	perspective int
}

var _ game.Observer = (*Display)(nil)

// New creates a display writing to w.
func New(w io.Writer, opts Options) *Display {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile(opts.NoColor, termenv.NewOutput(w)))
	return &Display{
		w:           w,
		styles:      newStyles(r),
		perspective: opts.Perspective,
	}
}

func (d *Display) println(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.w, s)
}

// HandStarted prints the hand header, blinds and visible hole cards.
func (d *Display) HandStarted(h *game.Hand) {
	sb, bb := h.Seats[h.SmallBlindSeat], h.Seats[h.BigBlindSeat()]
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(d.styles.header.Render(fmt.Sprintf(" Hand %d • %d/%d ", h.Number, h.SmallBlind, h.BigBlind)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: posts small blind %d (stack %d)\n", sb.Name, sb.Bet, sb.Stack)
	fmt.Fprintf(&b, "%s: posts big blind %d (stack %d)", bb.Name, bb.Bet, bb.Stack)
	for i, s := range h.Seats {
		if d.perspective == ShowAll || d.perspective == i {
			fmt.Fprintf(&b, "\nDealt to %s: [%s]", s.Name, d.cards(s.Hole[:]))
		}
	}
	d.println(b.String())
}

// ActionTaken prints one action.
func (d *Display) ActionTaken(h *game.Hand, m game.Move) {
	d.println(d.FormatMove(h.Seats[m.Seat].Name, m))
}

// FormatMove renders a move as a log line.
func (d *Display) FormatMove(name string, m game.Move) string {
	var text string
	switch m.Kind {
	case game.Fold:
		if m.Implicit {
			return d.styles.forced.Render(fmt.Sprintf("%s: folds (no valid action)", name))
		}
		text = fmt.Sprintf("%s: folds", name)
	case game.Check:
		text = fmt.Sprintf("%s: checks", name)
	case game.Call:
		text = fmt.Sprintf("%s: calls %d", name, m.Added)
	case game.Bet:
		text = fmt.Sprintf("%s: bets %d", name, m.Total)
	case game.Raise:
		text = fmt.Sprintf("%s: raises to %d", name, m.Total)
	}
	if m.AllIn {
		text += " and is all-in"
	}
	return d.styles.action.Render(text)
}

// StreetDealt prints the board for a new street.
func (d *Display) StreetDealt(_ *game.Hand, street game.State, board []poker.Card) {
	d.println(d.FormatStreet(street, board))
}

// FormatStreet renders a street header with the board so far.
func (d *Display) FormatStreet(street game.State, board []poker.Card) string {
	name := d.styles.street.Render("*** " + strings.ToUpper(street.String()) + " ***")
	if len(board) <= 3 {
		return fmt.Sprintf("%s [%s]", name, d.cards(board))
	}
	last := len(board) - 1
	return fmt.Sprintf("%s [%s] [%s]", name, d.cards(board[:last]), d.cards(board[last:]))
}

// HandFinished prints the showdown, each pot's winners and the new stacks.
func (d *Display) HandFinished(h *game.Hand, r *game.Result) {
	var lines []string
	if r.Outcome == game.OutcomeShowdown {
		lines = append(lines, d.styles.street.Render("*** SHOWDOWN ***")+" ["+d.cards(r.Board)+"]")
		for i, s := range h.Seats {
			if s.Folded {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: shows [%s] (%s)", s.Name, d.cards(s.Hole[:]), r.Scores[i].Category()))
		}
	}

	for i, award := range r.Awards {
		pot := "the pot"
		if len(r.Awards) > 1 {
			pot = "main pot"
			if i > 0 {
				pot = fmt.Sprintf("side pot %d", i)
			}
		}
		for _, w := range award.Winners {
			text := fmt.Sprintf("%s collects %d from %s", h.Seats[w].Name, award.Shares[w], pot)
			if r.Outcome == game.OutcomeShowdown && len(award.Winners) == 1 && len(award.Pot.Eligible) > 1 {
				text += " with " + r.Scores[w].String()
			}
			lines = append(lines, d.styles.winner.Render(text))
		}
	}

	stacks := make([]string, len(h.Seats))
	for i, s := range h.Seats {
		stacks[i] = fmt.Sprintf("%s %d", s.Name, s.Stack)
	}
	lines = append(lines, d.styles.info.Render("Stacks: "+strings.Join(stacks, ", ")))
	d.println(strings.Join(lines, "\n"))
}

// MatchFinished prints the final result.
func (d *Display) MatchFinished(s *match.Summary) {
	var text string
	if name := s.WinnerName(); name != "" {
		text = fmt.Sprintf("%s wins the match after %d hands (%s)", name, s.Hands, s.Reason)
	} else {
		text = fmt.Sprintf("Match drawn after %d hands (%s)", s.Hands, s.Reason)
	}
	d.println("\n" + d.styles.header.Render(" "+text+" ") +
		"\n" + d.styles.info.Render(fmt.Sprintf("Final stacks: %s %d, %s %d", s.Names[0], s.Stacks[0], s.Names[1], s.Stacks[1])))
}

// Prompt renders an input prompt.
func (d *Display) Prompt(s string) string {
	return d.styles.prompt.Render(s)
}

// Error renders an error line.
func (d *Display) Error(s string) string {
	return d.styles.errorMsg.Render(s)
}

func (d *Display) cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if s := c.Suit(); s == poker.Hearts || s == poker.Diamonds {
			parts[i] = d.styles.red.Render(c.String())
		} else {
			parts[i] = d.styles.black.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}
