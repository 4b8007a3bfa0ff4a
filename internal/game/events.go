package game

import "github.com/lox/headsup/poker"

// Observer receives hand events from the Engine as they happen.
type Observer interface {
	HandStarted(h *Hand)
	ActionTaken(h *Hand, m Move)
	StreetDealt(h *Hand, street State, board []poker.Card)
	HandFinished(h *Hand, r *Result)
}

// NopObserver ignores every event. Embed it to implement part of Observer.
type NopObserver struct{}

func (NopObserver) HandStarted(*Hand) {}
func (NopObserver) ActionTaken(*Hand, Move) {}
func (NopObserver) StreetDealt(*Hand, State, []poker.Card) {}
func (NopObserver) HandFinished(*Hand, *Result) {}

// Observers fans events out to several observers in order.
type Observers []Observer

func (o Observers) HandStarted(h *Hand) {
	for _, obs := range o {
		obs.HandStarted(h)
	}
}

func (o Observers) ActionTaken(h *Hand, m Move) {
	for _, obs := range o {
		obs.ActionTaken(h, m)
	}
}

func (o Observers) StreetDealt(h *Hand, street State, board []poker.Card) {
	for _, obs := range o {
		obs.StreetDealt(h, street, board)
	}
}

func (o Observers) HandFinished(h *Hand, r *Result) {
	for _, obs := range o {
		obs.HandFinished(h, r)
	}
}
