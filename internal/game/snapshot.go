package game

import (
	"github.com/lox/headsup/poker"
)

// FoldedBet is the bet_money value reported for a folded seat.
const FoldedBet = -1

// Snapshot is the view of a hand given to the acting seat's decider. Only
// the acting seat's hole cards are included. Field names follow the JSON
// protocol spoken by external bots.
type Snapshot struct {
	HandNumber        int           `json:"hand_number"`
	Street            string        `json:"street"`
	IndexToAction     int           `json:"index_to_action"`
	IndexOfSmallBlind int           `json:"index_of_small_blind"`
	Players           []string      `json:"players"`
	PlayerCards       []poker.Card  `json:"player_cards"`
	HeldMoney         []int         `json:"held_money"`
	BetMoney          []int         `json:"bet_money"`
	CommunityCards    []poker.Card  `json:"community_cards"`
	Pots              []SnapshotPot `json:"pots"`
	SmallBlind        int           `json:"small_blind"`
	BigBlind          int           `json:"big_blind"`
	ToCall            int           `json:"to_call"`
	MinRaiseTo        int           `json:"min_raise_to"`
	Actions           []Move        `json:"actions"`
}

// SnapshotPot is a pot as seen by a decider.
type SnapshotPot struct {
	Value    int      `json:"value"`
	Players  []string `json:"players"`
	Eligible []int    `json:"eligible"`
}

// Legal rebuilds the legal actions implied by the snapshot.
func (s Snapshot) Legal() LegalActions {
	seat := s.IndexToAction
	bet := s.BetMoney[seat]
	if bet == FoldedBet {
		bet = 0
	}
	current := 0
	for _, b := range s.BetMoney {
		current = max(current, b)
	}
	return LegalActions{
		Seat:       seat,
		Bet:        bet,
		Stack:      s.HeldMoney[seat],
		CurrentBet: current,
	}
}

// Opponent returns the seat index of the player not acting.
func (s Snapshot) Opponent() int {
	return 1 - s.IndexToAction
}

// Snapshot builds the acting seat's view of the hand.
func (h *Hand) Snapshot() (Snapshot, error) {
	legal, err := h.Legal()
	if err != nil {
		return Snapshot{}, err
	}
	pots, err := h.ledger.Pots()
	if err != nil {
		return Snapshot{}, err
	}

	seat := h.Seats[h.Acting]
	snap := Snapshot{
		HandNumber:        h.Number,
		Street:            h.State.String(),
		IndexToAction:     h.Acting,
		IndexOfSmallBlind: h.SmallBlindSeat,
		PlayerCards:       []poker.Card{seat.Hole[0], seat.Hole[1]},
		CommunityCards:    append([]poker.Card{}, h.Board...),
		Pots:              make([]SnapshotPot, 0, len(pots)),
		SmallBlind:        h.SmallBlind,
		BigBlind:          h.BigBlind,
		ToCall:            legal.ToCall(),
		MinRaiseTo:        legal.MinRaiseTo(),
		Actions:           h.Moves(),
	}
	if snap.Actions == nil {
		snap.Actions = []Move{}
	}
	for _, s := range h.Seats {
		snap.Players = append(snap.Players, s.Name)
		snap.HeldMoney = append(snap.HeldMoney, s.Stack)
		if s.Folded {
			snap.BetMoney = append(snap.BetMoney, FoldedBet)
		} else {
			snap.BetMoney = append(snap.BetMoney, s.Bet)
		}
	}
	for _, p := range pots {
		sp := SnapshotPot{Value: p.Amount, Eligible: p.Eligible}
		for _, e := range p.Eligible {
			sp.Players = append(sp.Players, h.Seats[e].Name)
		}
		snap.Pots = append(snap.Pots, sp)
	}
	return snap, nil
}
