package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards provides a simple preflop hand categorization.
// Categories: Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77+, suited broadway),
// Weak (small pairs, suited connectors), Trash (everything else).
func CategorizeHoleCards(a, b Card) HoleCardCategory {
	if !a.Valid() || !b.Valid() || a == b {
		return CategoryUnknown
	}

	small, big := a.Rank(), b.Rank()
	if small > big {
		small, big = big, small
	}
	suited := a.Suit() == b.Suit()
	pair := small == big

	switch {
	case pair && small >= Jack, small == King && big == Ace:
		return CategoryPremium
	case pair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return CategoryStrong
	case pair && small >= Seven, suited && small >= Ten:
		return CategoryMedium
	case pair, suited && big-small <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
