package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

// CallingStation checks or calls every street and never raises.
type CallingStation struct{}

// Decide matches the current bet.
func (CallingStation) Decide(_ context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	return snap.Legal().CurrentBet, mem, nil
}

// Random calls preflop, then picks uniformly between folding (when facing a
// bet), checking or calling, a random raise and going all-in.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random decider drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Decide picks a random legal action.
func (r *Random) Decide(_ context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	l := snap.Legal()
	if snap.Street == game.PreflopBetting.String() {
		return l.CurrentBet, mem, nil
	}

	choices := []int{l.CurrentBet}
	if !l.CanCheck() {
		choices = append(choices, game.FoldAmount)
	}
	if l.CanRaise() {
		lo, hi := l.MinRaiseTo(), l.MaxTotal()
		choices = append(choices, lo+r.rng.IntN(hi-lo+1), hi)
	}
	return choices[r.rng.IntN(len(choices))], mem, nil
}

// Tight plays only strong starting hands and made hands, raising the best
// of them and giving up cheaply on everything else.
type Tight struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTight creates a tight decider.
func NewTight(rng *rand.Rand, logger *log.Logger) *Tight {
	return &Tight{rng: rng, logger: logger.WithPrefix("tight")}
}

type strength int

const (
	weak strength = iota
	strong
	premium
)

// Decide raises premium hands, calls small bets with strong ones and
// otherwise checks or folds.
func (t *Tight) Decide(_ context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	l := snap.Legal()
	s := t.strength(snap)
	t.logger.Debug("Hand strength", "cards", poker.FormatCards(snap.PlayerCards), "street", snap.Street, "strength", s)

	switch s {
	case premium:
		if l.CanCheck() || l.CurrentBet <= 3*snap.BigBlind {
			return raiseTo(l, 3*max(l.CurrentBet, snap.BigBlind)), mem, nil
		}
		return l.CurrentBet, mem, nil
	case strong:
		if l.CanCheck() {
			if t.rng.Float64() < 0.3 {
				return raiseTo(l, 2*max(l.CurrentBet, snap.BigBlind)), mem, nil
			}
			return game.CheckAmount, mem, nil
		}
		if l.ToCall() <= 2*snap.BigBlind {
			return l.CurrentBet, mem, nil
		}
	}
	return checkOrFold(l), mem, nil
}

func (t *Tight) strength(snap game.Snapshot) strength {
	if len(snap.PlayerCards) != 2 {
		return weak
	}
	if len(snap.CommunityCards) == 0 {
		switch poker.CategorizeHoleCards(snap.PlayerCards[0], snap.PlayerCards[1]) {
		case poker.CategoryPremium:
			return premium
		case poker.CategoryStrong, poker.CategoryMedium:
			return strong
		default:
			return weak
		}
	}

	score, err := poker.Evaluate(append(snap.PlayerCards[:2:2], snap.CommunityCards...)...)
	if err != nil {
		return weak
	}
	switch cat := score.Category(); {
	case cat >= poker.TwoPair:
		return premium
	case cat == poker.Pair:
		return strong
	default:
		return weak
	}
}

func (s strength) String() string {
	return [...]string{"weak", "strong", "premium"}[s]
}
