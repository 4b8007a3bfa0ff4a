package match

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/poker"
)

type fixedDecider func(snap game.Snapshot) int

func (f fixedDecider) Decide(_ context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	return f(snap), mem, nil
}

var (
	checkCall = fixedDecider(func(s game.Snapshot) int { return s.Legal().CurrentBet })
	shove     = fixedDecider(func(s game.Snapshot) int { return s.Legal().MaxTotal() })
)

func fixedDeck(t *testing.T, cards string) func(int) *poker.Deck {
	t.Helper()
	cs, err := poker.ParseCards(cards)
	require.NoError(t, err)
	return func(int) *poker.Deck {
		d, err := poker.NewDeckFromCards(cs...)
		require.NoError(t, err)
		return d
	}
}

type blindRecorder struct {
	game.NopObserver
	smallBlinds []int
}

func (b *blindRecorder) HandStarted(h *game.Hand) {
	b.smallBlinds = append(b.smallBlinds, h.SmallBlindSeat)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.StartingStack = 1000
	cfg.Seed = 42
	cfg.Names = [2]string{"alice", "bob"}
	return cfg
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero stack", func(c *Config) { c.StartingStack = 0 }, false},
		{"zero small blind", func(c *Config) { c.SmallBlind = 0 }, false},
		{"big below small", func(c *Config) { c.BigBlind = 10 }, false},
		{"negative hands", func(c *Config) { c.MaxHands = -1 }, false},
		{"missing name", func(c *Config) { c.Names[1] = "" }, false},
		{"same names", func(c *Config) { c.Names = [2]string{"x", "x"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 7500, cfg.StartingStack)
	assert.Equal(t, 50, cfg.SmallBlind)
	assert.Equal(t, 100, cfg.BigBlind)
}

func TestBlindsAlternate(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxHands = 5
	rec := &blindRecorder{}
	m, err := New(cfg, [2]game.Decider{checkCall, checkCall}, log.New(io.Discard),
		WithObserver(rec), WithDecks(fixedDeck(t, "2c 3d 2h 3s Ah Kd Qs Jc Tc")))
	require.NoError(t, err)

	s, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1, 0}, rec.smallBlinds)
	assert.Equal(t, 5, s.Hands)
	assert.Equal(t, "hand limit", s.Reason)
	assert.Equal(t, -1, s.Winner, "every hand split, so stacks are level")
	assert.Equal(t, "", s.WinnerName())
	assert.Equal(t, [2]int{1000, 1000}, s.Stacks)
}

func TestEliminationEndsMatch(t *testing.T) {
	t.Parallel()

	m, err := New(testConfig(), [2]game.Decider{shove, checkCall}, log.New(io.Discard),
		WithDecks(fixedDeck(t, "As Ad 7c 2d Kh 9s 5c 4d 3h")))
	require.NoError(t, err)

	s, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Hands)
	assert.Equal(t, [2]int{2000, 0}, s.Stacks)
	assert.Equal(t, 0, s.Winner)
	assert.Equal(t, "alice", s.WinnerName())
	assert.Equal(t, "elimination", s.Reason)
	assert.NotEmpty(t, s.ID)

	_, err = m.PlayHand(context.Background())
	assert.ErrorIs(t, err, ErrMatchOver)
}

func TestChipLeaderWinsAtHandLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxHands = 1
	m, err := New(cfg, [2]game.Decider{checkCall, checkCall}, log.New(io.Discard),
		WithDecks(fixedDeck(t, "7c 2d As Ad Kh 9s 5c 4d 3h")))
	require.NoError(t, err)

	s, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [2]int{900, 1100}, s.Stacks)
	assert.Equal(t, 1, s.Winner)
	assert.Equal(t, "hand limit", s.Reason)
}

func TestRunConservesChipsToElimination(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	m, err := New(cfg, [2]game.Decider{shove, checkCall}, log.New(io.Discard))
	require.NoError(t, err)

	for !m.Over() {
		_, err := m.PlayHand(context.Background())
		require.NoError(t, err)
		st := m.Stacks()
		require.Equal(t, 2000, st[0]+st[1])
	}
	st := m.Stacks()
	assert.True(t, st[0] == 0 || st[1] == 0)
}

func TestSameSeedSameMatch(t *testing.T) {
	t.Parallel()

	run := func() []int {
		cfg := testConfig()
		cfg.MaxHands = 20
		m, err := New(cfg, [2]game.Decider{checkCall, checkCall}, log.New(io.Discard))
		require.NoError(t, err)
		var history []int
		for !m.Over() {
			_, err := m.PlayHand(context.Background())
			require.NoError(t, err)
			history = append(history, m.Stacks()[0])
		}
		return history
	}
	assert.Equal(t, run(), run())
}

func TestQuitStopsMatch(t *testing.T) {
	t.Parallel()

	quitter := game.DeciderFunc(func(context.Context, game.Snapshot, game.Memory) (int, game.Memory, error) {
		return 0, nil, game.ErrQuit
	})
	m, err := New(testConfig(), [2]game.Decider{quitter, checkCall}, log.New(io.Discard))
	require.NoError(t, err)

	s, err := m.Run(context.Background())
	assert.ErrorIs(t, err, game.ErrQuit)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Hands)
	assert.Equal(t, "unfinished", s.Reason)
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := New(testConfig(), [2]game.Decider{checkCall, nil}, log.New(io.Discard))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := testConfig()
	cfg.BigBlind = 0
	_, err = New(cfg, [2]game.Decider{checkCall, checkCall}, log.New(io.Discard))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
