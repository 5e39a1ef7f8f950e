package strategy

import (
	"testing"

	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func tradeState(mine, rivals domain.ResourceSet) *domain.GameState {
	me := enginetest.NewPlayer("p1")
	me.Resources = mine
	rival := enginetest.NewPlayer("p2")
	rival.Resources = rivals
	return enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseActions, me, rival)
}

func TestMostNeededResource_OneAwayFromBuild(t *testing.T) {
	state := tradeState(domain.ResourceSet{domain.Wood: 1, domain.Brick: 1, domain.Sheep: 1}, nil)

	r, kind, ok := MostNeededResource(state, "p1")
	if !ok {
		t.Fatal("expected a need")
	}
	if r != domain.Wheat || kind != domain.BuildSettlement {
		t.Errorf("need = %s for %s, want wheat for settlement", r, kind)
	}
}

func TestMostNeededResource_FallsBackToZeroHolding(t *testing.T) {
	state := tradeState(domain.ResourceSet{domain.Sheep: 1}, nil)

	r, kind, ok := MostNeededResource(state, "p1")
	if !ok {
		t.Fatal("expected a need")
	}
	if r != domain.Wood || kind != "" {
		t.Errorf("need = %s for %q, want wood with no build", r, kind)
	}
}

func TestBestCounterparty_PrefersHoldersInHealthyRange(t *testing.T) {
	me := enginetest.NewPlayer("p1")
	hoarder := enginetest.NewPlayer("p2")
	hoarder.Resources = domain.ResourceSet{domain.Wheat: 2, domain.Ore: 13} // over the healthy range
	holder := enginetest.NewPlayer("p3")
	holder.Resources = domain.ResourceSet{domain.Wheat: 2, domain.Wood: 4}
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseActions, me, hoarder, holder)

	if got := BestCounterparty(state, "p1", domain.Wheat, DefaultWeights.Trade); got != "p3" {
		t.Errorf("counterparty = %s, want the healthy-range holder p3", got)
	}
	if got := BestCounterparty(state, "p1", domain.Brick, DefaultWeights.Trade); got != "" {
		t.Errorf("nobody holds brick, got counterparty %s", got)
	}
}

func TestGenerateOffers_EscalatingLadder(t *testing.T) {
	// Chasing wheat for a settlement while sitting on spare ore. The rival
	// holds wheat, so every ratio has a counterparty; no port matches ore.
	goalCost := domain.CostOf(domain.BuildSettlement)
	state := tradeState(
		domain.ResourceSet{domain.Wood: 1, domain.Brick: 1, domain.Sheep: 1, domain.Ore: 4},
		domain.ResourceSet{domain.Wheat: 3},
	)

	offers := GenerateOffers(state, "p1", domain.Wheat, goalCost, DefaultWeights.Trade)
	if len(offers) != 4 {
		t.Fatalf("expected the full 1:1..4:1 ladder, got %d offers", len(offers))
	}
	for i, offer := range offers {
		if offer.Offering[domain.Ore] != i+1 {
			t.Errorf("offer %d gives %v, want %d ore", i, offer.Offering, i+1)
		}
		if offer.Requesting[domain.Wheat] != 1 {
			t.Errorf("offer %d requests %v, want 1 wheat", i, offer.Requesting)
		}
		// Goal inputs are reserved; only the true surplus may be offered.
		for _, r := range domain.ResourceTypes {
			if r != domain.Ore && offer.Offering[r] != 0 {
				t.Errorf("offer %d trades away reserved %s", i, r)
			}
		}
	}
	if offers[0].Type != TradePlayer || offers[0].TargetPlayerID != "p2" {
		t.Errorf("first offer should target the rival, got %+v", offers[0])
	}
	if offers[3].Type != TradeBank {
		t.Errorf("last offer should be the bank trade, got %+v", offers[3])
	}
}

func TestGenerateOffers_BankOnlyWithoutCounterparty(t *testing.T) {
	// Nobody holds wheat and no port matches: only the 4:1 bank trade.
	state := tradeState(domain.ResourceSet{domain.Ore: 5}, domain.ResourceSet{domain.Brick: 2})

	offers := GenerateOffers(state, "p1", domain.Wheat, nil, DefaultWeights.Trade)
	if len(offers) != 1 {
		t.Fatalf("expected the bank trade only, got %d offers", len(offers))
	}
	if offers[0].Type != TradeBank || offers[0].Offering[domain.Ore] != 4 {
		t.Errorf("unexpected bank offer %+v", offers[0])
	}
}

func TestGenerateOffers_UsesOwnedPort(t *testing.T) {
	// A settlement on vertex 5 works the 2:1 wood port.
	state := tradeState(domain.ResourceSet{domain.Wood: 3}, domain.ResourceSet{domain.Wheat: 1})
	state.Board.Vertices[5].Building = domain.Settlement
	state.Board.Vertices[5].Owner = "p1"

	offers := GenerateOffers(state, "p1", domain.Wheat, nil, DefaultWeights.Trade)

	var port *TradeOffer
	for i := range offers {
		if offers[i].Type == TradePort {
			port = &offers[i]
		}
	}
	if port == nil {
		t.Fatalf("expected a port trade in %+v", offers)
	}
	if port.PortResource != domain.Wood || port.Offering[domain.Wood] != 2 {
		t.Errorf("port offer = %+v, want 2 wood through the wood port", port)
	}
}

func TestEvaluateIncomingOffer_AcceptsNeededResource(t *testing.T) {
	// One wheat short of a settlement; the rival dangles exactly that.
	state := tradeState(domain.ResourceSet{domain.Wood: 1, domain.Brick: 1, domain.Sheep: 1, domain.Ore: 2}, nil)
	offer := TradeOffer{
		Offering:   domain.ResourceSet{domain.Wheat: 1},
		Requesting: domain.ResourceSet{domain.Ore: 1},
	}

	accept, priority, reason := EvaluateIncomingOffer(state, "p1", offer, domain.CostOf(domain.BuildSettlement), DefaultWeights.Trade)
	if !accept {
		t.Fatalf("offer should be accepted: %s", reason)
	}
	if priority != DefaultWeights.Trade.AcceptFactor {
		t.Errorf("priority = %.1f, want %.1f", priority, DefaultWeights.Trade.AcceptFactor)
	}
}

func TestEvaluateIncomingOffer_RejectsUselessSupply(t *testing.T) {
	state := tradeState(domain.ResourceSet{domain.Wood: 1, domain.Brick: 1, domain.Sheep: 1}, nil)
	offer := TradeOffer{
		Offering:   domain.ResourceSet{domain.Sheep: 2},
		Requesting: domain.ResourceSet{domain.Wood: 1},
	}

	if accept, _, _ := EvaluateIncomingOffer(state, "p1", offer, nil, DefaultWeights.Trade); accept {
		t.Error("offer without the needed resource must be rejected")
	}
}

func TestEvaluateIncomingOffer_ProtectsGoalAffordability(t *testing.T) {
	// Holding a full settlement plus spare ore, one ore short of a dev
	// card: trading wheat away would break the settlement, wood would not.
	have := domain.ResourceSet{domain.Wood: 2, domain.Brick: 1, domain.Sheep: 1, domain.Wheat: 1}
	goalCost := domain.CostOf(domain.BuildSettlement)

	state := tradeState(have.Clone(), nil)
	breaking := TradeOffer{
		Offering:   domain.ResourceSet{domain.Ore: 1},
		Requesting: domain.ResourceSet{domain.Wheat: 1},
	}
	if accept, _, _ := EvaluateIncomingOffer(state, "p1", breaking, goalCost, DefaultWeights.Trade); accept {
		t.Error("trade that breaks the goal's affordability must be rejected")
	}

	harmless := TradeOffer{
		Offering:   domain.ResourceSet{domain.Ore: 1},
		Requesting: domain.ResourceSet{domain.Wood: 1},
	}
	if accept, _, _ := EvaluateIncomingOffer(state, "p1", harmless, goalCost, DefaultWeights.Trade); !accept {
		t.Error("spare wood trade keeps the goal affordable and should be accepted")
	}
}
