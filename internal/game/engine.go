package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/poker"
	"github.com/sanity-io/litter"
)

// Engine drives a hand to completion by asking each seat's decider for
// actions. A decider that fails, times out or answers illegally folds.
type Engine struct {
	logger   *log.Logger
	observer Observer
}

// NewEngine creates an engine. A nil observer discards events.
func NewEngine(logger *log.Logger, observer Observer) *Engine {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Engine{
		logger:   logger.WithPrefix("engine"),
		observer: observer,
	}
}

// Play runs h until it is complete and returns its result. Memory for each
// seat is loaded from mem before a decision and stored back after it.
// ErrQuit from a decider and context cancellation abort the hand.
func (e *Engine) Play(ctx context.Context, h *Hand, deciders [2]Decider, mem *MemoryStore) (*Result, error) {
	logger := e.logger.With("hand", h.Number)
	logger.Debug("Starting hand",
		"small_blind", h.Seats[h.SmallBlindSeat].Name,
		"stacks", []int{h.Seats[0].Stack + h.Seats[0].Bet, h.Seats[1].Stack + h.Seats[1].Bet})

	e.observer.HandStarted(h)
	e.emitStreets(h, 0)

	for !h.IsComplete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seat := h.Acting
		name := h.Seats[seat].Name
		snap, err := h.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", h.Number, err)
		}
		if logger.GetLevel() <= log.DebugLevel {
			logger.Debug("Requesting decision", "player", name, "snapshot", litter.Sdump(snap))
		}

		boardBefore := len(h.Board)
		action, newMem, decideErr := deciders[seat].Decide(ctx, snap, mem.Load(seat))

		var move Move
		switch {
		case errors.Is(decideErr, ErrQuit):
			logger.Info("Player quit during hand", "player", name)
			return nil, fmt.Errorf("%s: %w", name, ErrQuit)
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case decideErr != nil:
			logger.Warn("Decider failed, folding", "player", name, "error", decideErr)
			move, err = h.Fold()
		default:
			mem.Store(seat, newMem)
			move, err = h.Act(action)
			if errors.Is(err, ErrIllegalAction) {
				logger.Warn("Illegal action, folding", "player", name, "action", action, "error", err)
				move, err = h.Fold()
			}
		}
		if err != nil {
			logger.Error("Failed to apply action", "player", name, "error", err)
			return nil, fmt.Errorf("hand %d: %w", h.Number, err)
		}

		logger.Debug("Player action",
			"player", name,
			"street", move.Street,
			"action", move.Kind,
			"total", move.Total,
			"all_in", move.AllIn)
		e.observer.ActionTaken(h, move)
		e.emitStreets(h, boardBefore)
	}

	result := h.Result()
	logger.Info("Hand complete",
		"outcome", result.Outcome,
		"board", poker.FormatCards(result.Board),
		"payouts", result.Payouts[:],
		"stacks", result.Stacks[:])
	e.observer.HandFinished(h, result)
	return result, nil
}

// emitStreets reports every street dealt since the board had before cards.
func (e *Engine) emitStreets(h *Hand, before int) {
	streets := [...]struct {
		cards int
		state State
	}{{3, FlopBetting}, {4, TurnBetting}, {5, RiverBetting}}
	for _, s := range streets {
		if before < s.cards && len(h.Board) >= s.cards {
			e.observer.StreetDealt(h, s.state, h.Board[:s.cards])
		}
	}
}
