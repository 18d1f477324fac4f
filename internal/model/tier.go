package model

// Tier is the priority label assigned to a place from its rank decile.
type Tier string

const (
	TierGold   Tier = "Gold"
	TierSilver Tier = "Silver"
	TierBronze Tier = "Bronze"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierGold, TierSilver, TierBronze:
		return true
	}
	return false
}

// TierForDecile maps a 1-based decile to a tier. goldDeciles bands from the
// top are Gold, the next silverDeciles bands are Silver, everything below is
// Bronze. With the defaults (2, 3) deciles 1-2 are Gold, 3-5 Silver, 6-10
// Bronze.
func TierForDecile(decile, goldDeciles, silverDeciles int) Tier {
	switch {
	case decile <= goldDeciles:
		return TierGold
	case decile <= goldDeciles+silverDeciles:
		return TierSilver
	default:
		return TierBronze
	}
}
