package strategy

import (
	"fmt"
	"sort"

	"settlers/internal/domain"
)

// TradeType distinguishes counterparties for an offer.
type TradeType string

const (
	TradePlayer TradeType = "player"
	TradeBank   TradeType = "bank"
	TradePort   TradeType = "port"
)

// TradeOffer is one generated or evaluated trade proposal. Offers are
// transient; nothing stores them past the decision that uses them.
type TradeOffer struct {
	Type           TradeType
	Offering       domain.ResourceSet
	Requesting     domain.ResourceSet
	TargetPlayerID string
	PortResource   domain.Resource
	Reasoning      string
}

// MostNeededResource determines the single resource the player should
// trade for: the missing piece of the highest-priority build that is
// exactly one resource short, else the first resource type held at zero.
func MostNeededResource(state *domain.GameState, playerID string) (domain.Resource, domain.BuildKind, bool) {
	have := domain.CurrentResources(state, playerID)

	ordered := []domain.BuildKind{domain.BuildSettlement, domain.BuildCity, domain.BuildRoad, domain.BuildDevCard}
	for _, kind := range ordered {
		missing := domain.MissingFor(have, kind)
		if missing.Total() != 1 {
			continue
		}
		for _, r := range domain.ResourceTypes {
			if missing[r] == 1 {
				return r, kind, true
			}
		}
	}

	for _, r := range domain.ResourceTypes {
		if have[r] == 0 {
			return r, "", true
		}
	}
	return "", "", false
}

// BestCounterparty scores opponents on how much of the needed resource
// they hold and whether their total holdings sit in the healthy trading
// range, returning the best id or "" when nobody qualifies.
func BestCounterparty(state *domain.GameState, playerID string, needed domain.Resource, w TradeWeights) string {
	type scored struct {
		id    string
		score float64
	}
	var candidates []scored
	for _, p := range playersDeterministic(state) {
		if p.ID == playerID {
			continue
		}
		quantity := p.Resources[needed]
		if quantity == 0 {
			continue
		}
		score := w.QuantityFactor * float64(quantity)
		total := p.Resources.Total()
		if total >= w.HealthyRangeLow && total <= w.HealthyRangeHigh {
			score += w.HealthyBonus
		}
		candidates = append(candidates, scored{id: p.ID, score: score})
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	return candidates[0].id
}

// GenerateOffers produces the escalating offer ladder for acquiring the
// needed resource: 1:1 player trade, then 2:1, 3:1 and finally the 4:1
// bank trade. A round is only proposed when the hypothetical trade keeps
// the motivating goal's full cost affordable, so the bot never trades
// away a resource the goal itself needs.
func GenerateOffers(state *domain.GameState, playerID string, needed domain.Resource, goalCost domain.ResourceSet, w TradeWeights) []TradeOffer {
	have := domain.CurrentResources(state, playerID)
	if goalCost == nil {
		goalCost = domain.NewResourceSet()
	}

	var offers []TradeOffer
	counterparty := BestCounterparty(state, playerID, needed, w)

	for ratio := 1; ratio <= 4; ratio++ {
		give, ok := spareResource(have, goalCost, needed, ratio)
		if !ok {
			continue
		}
		offer := TradeOffer{
			Offering:   domain.ResourceSet{give: ratio},
			Requesting: domain.ResourceSet{needed: 1},
		}
		switch ratio {
		case 1:
			if counterparty == "" {
				continue
			}
			offer.Type = TradePlayer
			offer.TargetPlayerID = counterparty
			offer.Reasoning = fmt.Sprintf("offer 1 %s to %s for 1 %s", give, counterparty, needed)
		case 4:
			offer.Type = TradeBank
			offer.Reasoning = fmt.Sprintf("bank trade 4 %s for 1 %s", give, needed)
		default:
			port, portOK := portFor(state, playerID, give, ratio)
			if !portOK {
				// Without a matching port, escalate the player offer instead.
				if counterparty == "" {
					continue
				}
				offer.Type = TradePlayer
				offer.TargetPlayerID = counterparty
				offer.Reasoning = fmt.Sprintf("offer %d %s to %s for 1 %s", ratio, give, counterparty, needed)
				offers = append(offers, offer)
				continue
			}
			offer.Type = TradePort
			offer.PortResource = port
			offer.Reasoning = fmt.Sprintf("port trade %d %s for 1 %s", ratio, give, needed)
		}
		offers = append(offers, offer)
	}
	return offers
}

// EvaluateIncomingOffer scores an opponent's proposal. Acceptance requires
// that the offer supplies the most-needed resource, that the player can
// afford the requested side, and that the motivating goal stays affordable
// after the exchange. Priority is needed-quantity times the accept factor.
func EvaluateIncomingOffer(state *domain.GameState, playerID string, offer TradeOffer, goalCost domain.ResourceSet, w TradeWeights) (accept bool, priority float64, reason string) {
	needed, _, ok := MostNeededResource(state, playerID)
	if !ok {
		return false, 0, "no resource need identified"
	}
	suppliedNeeded := offer.Offering[needed]
	if suppliedNeeded == 0 {
		return false, 0, fmt.Sprintf("offer does not supply needed %s", needed)
	}

	have := domain.CurrentResources(state, playerID)
	if !have.Covers(offer.Requesting) {
		return false, 0, "cannot afford requested resources"
	}

	if goalCost != nil && have.Covers(goalCost) {
		after := have.Clone()
		after.Subtract(offer.Requesting)
		after.Add(offer.Offering)
		if !after.Covers(goalCost) {
			return false, 0, "trade would break goal affordability"
		}
	}

	return true, float64(suppliedNeeded) * w.AcceptFactor, fmt.Sprintf("supplies %d %s", suppliedNeeded, needed)
}

// spareResource finds a resource with at least ratio units beyond what the
// goal cost reserves. The needed resource itself is never offered.
func spareResource(have, goalCost domain.ResourceSet, needed domain.Resource, ratio int) (domain.Resource, bool) {
	bestSurplus := 0
	var best domain.Resource
	for _, r := range domain.ResourceTypes {
		if r == needed {
			continue
		}
		surplus := have[r] - goalCost[r]
		if surplus >= ratio && surplus > bestSurplus {
			bestSurplus = surplus
			best = r
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// portFor reports whether the player owns a building on a port matching
// the give resource at the requested ratio.
func portFor(state *domain.GameState, playerID string, give domain.Resource, ratio int) (domain.Resource, bool) {
	if state.Board == nil {
		return "", false
	}
	for _, port := range state.Board.Ports {
		if port.Ratio != ratio {
			continue
		}
		if port.Type != domain.PortGeneric && port.Resource != give {
			continue
		}
		for _, vid := range port.Vertices {
			v := state.Board.Vertex(vid)
			if v != nil && v.Owner == playerID && v.Building != domain.NoBuilding {
				return port.Resource, true
			}
		}
	}
	return "", false
}

func playersDeterministic(state *domain.GameState) []*domain.Player {
	players := state.PlayersInOrder()
	if len(players) > 0 {
		return players
	}
	ids := make([]string, 0, len(state.Players))
	for id := range state.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, state.Players[id])
	}
	return out
}
