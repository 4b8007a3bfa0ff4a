// Package bot provides deciders for the non-human seat: built-in reference
// strategies, external bots run as a subprocess per decision, and remote bots
// reached over a websocket.
package bot

import (
	"errors"
	"io"

	"github.com/lox/headsup/internal/game"
)

var (
	// ErrTimeout is returned when a decider does not answer in time.
	ErrTimeout = errors.New("decision timed out")
	// ErrBadReply is returned when a bot answers with something unparsable.
	ErrBadReply = errors.New("malformed bot reply")
	// ErrUnknownBot is returned when a bot spec cannot be resolved.
	ErrUnknownBot = errors.New("unknown bot")
)

// Close releases resources held by d, if any.
func Close(d game.Decider) error {
	if c, ok := d.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// raiseTo clamps target to a legal raise total, or returns a call when the
// seat cannot raise.
func raiseTo(l game.LegalActions, target int) int {
	if !l.CanRaise() {
		return l.CurrentBet
	}
	return min(max(target, l.MinRaiseTo()), l.MaxTotal())
}

// checkOrFold checks when free, otherwise folds.
func checkOrFold(l game.LegalActions) int {
	if l.CanCheck() {
		return game.CheckAmount
	}
	return game.FoldAmount
}
