package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/poker"
)

func TestSnapshotHidesOpponentCards(t *testing.T) {
	t.Parallel()

	h := stackedHand(t, [2]int{1000, 1000}, 0, "As Ad 7c 2d Kh 9s 5c 4d 3h")
	snap, err := h.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 1, snap.HandNumber)
	assert.Equal(t, "preflop", snap.Street)
	assert.Equal(t, 0, snap.IndexToAction)
	assert.Equal(t, 0, snap.IndexOfSmallBlind)
	assert.Equal(t, []string{"alice", "bob"}, snap.Players)
	assert.Equal(t, "As Ad", poker.FormatCards(snap.PlayerCards))
	assert.Equal(t, []int{950, 900}, snap.HeldMoney)
	assert.Equal(t, []int{50, 100}, snap.BetMoney)
	assert.Empty(t, snap.CommunityCards)
	assert.Equal(t, 50, snap.ToCall)
	assert.Equal(t, 200, snap.MinRaiseTo)

	act(t, h, 100)
	snap, err = h.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.IndexToAction)
	assert.Equal(t, "7c 2d", poker.FormatCards(snap.PlayerCards))
	require.Len(t, snap.Actions, 1)
	assert.Equal(t, Call, snap.Actions[0].Kind)
	assert.Equal(t, snap.Legal(), mustLegal(t, h))
}

func TestSnapshotJSON(t *testing.T) {
	t.Parallel()

	h := stackedHand(t, [2]int{1000, 1000}, 0, "As Ad 7c 2d Kh 9s 5c 4d 3h")
	act(t, h, 100, 0)
	snap, err := h.Snapshot()
	require.NoError(t, err)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"index_to_action", "index_of_small_blind", "players", "player_cards",
		"held_money", "bet_money", "community_cards", "pots", "small_blind", "big_blind",
		"hand_number", "street", "to_call", "min_raise_to",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []any{"Kh", "9s", "5c"}, raw["community_cards"])
	assert.Equal(t, []any{"7c", "2d"}, raw["player_cards"])
	pots := raw["pots"].([]any)
	require.Len(t, pots, 1)
	assert.Equal(t, float64(200), pots[0].(map[string]any)["value"])
	assert.Equal(t, []any{"alice", "bob"}, pots[0].(map[string]any)["players"])

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, snap, back)
}

func TestSnapshotFoldedSentinel(t *testing.T) {
	t.Parallel()

	snap := Snapshot{IndexToAction: 0, BetMoney: []int{0, FoldedBet}, HeldMoney: []int{500, 500}}
	l := snap.Legal()
	assert.Equal(t, 0, l.CurrentBet)
	assert.True(t, l.CanCheck())
	assert.Equal(t, 1, snap.Opponent())
}

func mustLegal(t *testing.T, h *Hand) LegalActions {
	t.Helper()
	l, err := h.Legal()
	require.NoError(t, err)
	return l
}
