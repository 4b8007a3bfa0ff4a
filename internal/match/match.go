// Package match plays a heads-up match: a sequence of hands with alternating
// blinds until one player has no chips left.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/poker"
)

var (
	// ErrChipConservation means chips were created or destroyed by a hand.
	ErrChipConservation = errors.New("chip conservation violated")
	ErrInvalidConfig    = errors.New("invalid match config")
	ErrMatchOver        = errors.New("match is over")
)

// Config holds the parameters of a match.
type Config struct {
	StartingStack int
	SmallBlind    int
	BigBlind      int
	MaxHands      int // 0 plays until elimination
	Seed          int64
	Names         [2]string
}

// DefaultConfig returns the standard match settings.
func DefaultConfig() Config {
	return Config{
		StartingStack: 7500,
		SmallBlind:    50,
		BigBlind:      100,
		Names:         [2]string{"bot", "opponent"},
	}
}

// Validate checks the config for impossible values.
func (c Config) Validate() error {
	switch {
	case c.StartingStack <= 0:
		return fmt.Errorf("%w: starting stack must be positive, got %d", ErrInvalidConfig, c.StartingStack)
	case c.SmallBlind <= 0:
		return fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidConfig, c.SmallBlind)
	case c.BigBlind < c.SmallBlind:
		return fmt.Errorf("%w: big blind %d below small blind %d", ErrInvalidConfig, c.BigBlind, c.SmallBlind)
	case c.MaxHands < 0:
		return fmt.Errorf("%w: max hands must not be negative, got %d", ErrInvalidConfig, c.MaxHands)
	case c.Names[0] == "" || c.Names[1] == "":
		return fmt.Errorf("%w: both players need a name", ErrInvalidConfig)
	case c.Names[0] == c.Names[1]:
		return fmt.Errorf("%w: player names must differ, both %q", ErrInvalidConfig, c.Names[0])
	}
	return nil
}

// Option configures a Match.
type Option func(*Match)

// WithObserver sends hand events to obs.
func WithObserver(obs game.Observer) Option {
	return func(m *Match) {
		m.observer = obs
	}
}

// WithDecks deals hand n from decks(n) instead of a seeded shuffle.
func WithDecks(decks func(hand int) *poker.Deck) Option {
	return func(m *Match) {
		m.decks = decks
	}
}

// Summary describes a finished match.
type Summary struct {
	ID     string
	Names  [2]string
	Hands  int
	Stacks [2]int
	Winner int // seat index, -1 for a draw
	Reason string
}

// WinnerName returns the winning player's name, or "" for a draw.
func (s *Summary) WinnerName() string {
	if s.Winner < 0 {
		return ""
	}
	return s.Names[s.Winner]
}

// Match owns the stacks, blind rotation and decider memory of one match.
type Match struct {
	ID string

	cfg            Config
	seed           int64
	deciders       [2]game.Decider
	stacks         [2]int
	hands          int
	smallBlindSeat int
	memory         game.MemoryStore
	observer       game.Observer
	decks          func(hand int) *poker.Deck
	logger         *log.Logger
}

// New creates a match between two deciders. Seat 0 posts the small blind on
// the first hand.
func New(cfg Config, deciders [2]game.Decider, logger *log.Logger, opts ...Option) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, d := range deciders {
		if d == nil {
			return nil, fmt.Errorf("%w: no decider for seat %d", ErrInvalidConfig, i)
		}
	}

	id := uuid.NewString()
	m := &Match{
		ID:       id,
		cfg:      cfg,
		seed:     randutil.Seed(cfg.Seed),
		deciders: deciders,
		stacks:   [2]int{cfg.StartingStack, cfg.StartingStack},
		logger:   logger.WithPrefix("match").With("match", id[:8]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Stacks returns the current stacks.
func (m *Match) Stacks() [2]int {
	return m.stacks
}

// Hands returns the number of hands played.
func (m *Match) Hands() int {
	return m.hands
}

// Over reports whether the match has finished.
func (m *Match) Over() bool {
	if m.stacks[0] == 0 || m.stacks[1] == 0 {
		return true
	}
	return m.cfg.MaxHands > 0 && m.hands >= m.cfg.MaxHands
}

// PlayHand plays the next hand and applies its payouts.
func (m *Match) PlayHand(ctx context.Context) (*game.Result, error) {
	if m.Over() {
		return nil, ErrMatchOver
	}

	number := m.hands + 1
	opts := []game.HandOption{
		game.WithNames(m.cfg.Names[0], m.cfg.Names[1]),
		game.WithHandNumber(number),
	}
	if m.decks != nil {
		opts = append(opts, game.WithDeck(m.decks(number)))
	}
	rng := randutil.New(randutil.Derive(m.seed, number))

	h, err := game.NewHand(rng, m.stacks, m.smallBlindSeat, m.cfg.SmallBlind, m.cfg.BigBlind, opts...)
	if err != nil {
		return nil, fmt.Errorf("starting hand %d: %w", number, err)
	}

	engine := game.NewEngine(m.logger, m.observer)
	result, err := engine.Play(ctx, h, m.deciders, &m.memory)
	if err != nil {
		return nil, err
	}

	before := m.stacks[0] + m.stacks[1]
	if after := result.Stacks[0] + result.Stacks[1]; after != before {
		m.logger.Error("Chip conservation violation detected!", "hand", number, "before", before, "after", after)
		return nil, fmt.Errorf("%w: hand %d started with %d chips, ended with %d", ErrChipConservation, number, before, after)
	}

	m.stacks = result.Stacks
	m.hands = number
	m.smallBlindSeat = 1 - m.smallBlindSeat
	return result, nil
}

// Run plays hands until the match is over. On ErrQuit or cancellation the
// summary so far is returned with the error.
func (m *Match) Run(ctx context.Context) (*Summary, error) {
	m.logger.Info("Starting match",
		"players", m.cfg.Names[:],
		"stack", m.cfg.StartingStack,
		"blinds", fmt.Sprintf("%d/%d", m.cfg.SmallBlind, m.cfg.BigBlind),
		"seed", m.seed)

	for !m.Over() {
		if _, err := m.PlayHand(ctx); err != nil {
			return m.summary(), err
		}
	}

	s := m.summary()
	m.logger.Info("Match complete",
		"hands", s.Hands,
		"winner", s.WinnerName(),
		"reason", s.Reason,
		"stacks", s.Stacks[:])
	return s, nil
}

func (m *Match) summary() *Summary {
	s := &Summary{
		ID:     m.ID,
		Names:  m.cfg.Names,
		Hands:  m.hands,
		Stacks: m.stacks,
		Winner: -1,
	}
	switch {
	case m.stacks[1] == 0:
		s.Winner, s.Reason = 0, "elimination"
	case m.stacks[0] == 0:
		s.Winner, s.Reason = 1, "elimination"
	case m.cfg.MaxHands > 0 && m.hands >= m.cfg.MaxHands:
		s.Reason = "hand limit"
		if m.stacks[0] > m.stacks[1] {
			s.Winner = 0
		} else if m.stacks[1] > m.stacks[0] {
			s.Winner = 1
		}
	default:
		s.Reason = "unfinished"
	}
	return s
}
