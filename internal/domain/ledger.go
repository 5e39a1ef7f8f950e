package domain

// BuildKind identifies a purchasable item.
type BuildKind string

const (
	BuildRoad       BuildKind = "road"
	BuildSettlement BuildKind = "settlement"
	BuildCity       BuildKind = "city"
	BuildDevCard    BuildKind = "devcard"
)

// BuildCosts is the standard cost table, consumed as a constant of the
// external rules; the planner never derives costs itself.
var BuildCosts = map[BuildKind]ResourceSet{
	BuildRoad:       {Wood: 1, Brick: 1},
	BuildSettlement: {Wood: 1, Brick: 1, Sheep: 1, Wheat: 1},
	BuildCity:       {Wheat: 2, Ore: 3},
	BuildDevCard:    {Sheep: 1, Wheat: 1, Ore: 1},
}

// buildValue ranks builds by immediate victory progress. Settlements and
// cities are direct points; roads and dev cards are enablers.
var buildValue = map[BuildKind]int{
	BuildSettlement: 4,
	BuildCity:       3,
	BuildDevCard:    2,
	BuildRoad:       1,
}

// CostOf returns a copy of the cost for a build kind.
func CostOf(kind BuildKind) ResourceSet {
	return BuildCosts[kind].Clone()
}

// CurrentResources returns a player's holdings from the snapshot, never nil.
func CurrentResources(state *GameState, playerID string) ResourceSet {
	p := state.Player(playerID)
	if p == nil || p.Resources == nil {
		return NewResourceSet()
	}
	return p.Resources
}

// CanAffordBuild reports whether the holdings cover a build kind's cost.
func CanAffordBuild(have ResourceSet, kind BuildKind) bool {
	return have.Covers(BuildCosts[kind])
}

// MissingFor returns the per-resource shortfall against a build kind.
func MissingFor(have ResourceSet, kind BuildKind) ResourceSet {
	return Deficit(have, BuildCosts[kind])
}

// RankBuildOptions returns the build kinds affordable with the given
// holdings, most valuable first.
func RankBuildOptions(have ResourceSet) []BuildKind {
	ordered := []BuildKind{BuildSettlement, BuildCity, BuildDevCard, BuildRoad}
	var out []BuildKind
	for _, kind := range ordered {
		if CanAffordBuild(have, kind) {
			out = append(out, kind)
		}
	}
	return out
}

// StockFor reports whether the player still has an unbuilt piece of the
// given kind. Dev cards are limited by the engine's deck, not the player.
func StockFor(p *Player, kind BuildKind) bool {
	if p == nil {
		return false
	}
	switch kind {
	case BuildRoad:
		return p.RoadsLeft > 0
	case BuildSettlement:
		return p.SettlementsLeft > 0
	case BuildCity:
		return p.CitiesLeft > 0
	default:
		return true
	}
}
