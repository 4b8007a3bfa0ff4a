package poker

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one bit of a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], deuce in the low bit
// of each suit block. The zero Card is not a valid card.
type Card uint64

// Hand is a set of cards, one bit per card.
type Hand uint64

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

// Suit is one of the four card suits.
type Suit uint8

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"

	// deckMask covers the 52 valid card bits.
	deckMask = 1<<52 - 1
)

// ErrInvalidCard is returned when a card value or string cannot be decoded.
var ErrInvalidCard = errors.New("invalid card")

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	if rank < Two || rank > Ace || suit > Spades {
		return 0
	}
	return Card(1) << (uint(suit)*13 + uint(rank-Two))
}

// MustParseCard parses a card string, panicking on error. Intended for tests
// and tables of constants.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCard parses a string like "As" or "td" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	u := strings.IndexByte(suitChars, lower(s[1]))
	if r < 0 || u < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	return NewCard(Rank(r)+Two, Suit(u)), nil
}

// ParseCards parses a space separated list of cards, e.g. "As Kd 7c".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && c&deckMask == c && bits.OnesCount64(uint64(c)) == 1
}

// Index returns the bit position of the card (0-51).
func (c Card) Index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the card rank (2-14), or 0 for an invalid card.
func (c Card) Rank() Rank {
	if !c.Valid() {
		return 0
	}
	return Rank(c.Index()%13) + Two
}

// Suit returns the card suit.
func (c Card) Suit() Suit {
	return Suit(c.Index() / 13)
}

// String returns the card as rank and suit characters, e.g. "As", "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()-Two], suitChars[c.Suit()]})
}

// MarshalText encodes the card in its two character form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a two character card.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// String returns the rank character, e.g. "T" for Ten.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// String returns the suit character.
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// NewHand creates a card set from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// Add adds a card to the set.
func (h *Hand) Add(c Card) {
	*h |= Hand(c)
}

// Has reports whether the set contains c.
func (h Hand) Has(c Card) bool {
	return h&Hand(c) != 0
}

// Count returns the number of cards in the set.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards of the set in bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// FormatCards renders cards separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
