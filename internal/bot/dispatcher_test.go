package bot

import (
	"testing"

	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func TestNextAction_PhaseRouting(t *testing.T) {
	engine := enginetest.New(twoPlayerState(domain.PhaseRoll))
	b := New(engine, Config{PlayerID: "p1"})

	action := b.NextAction(engine.Snapshot())
	if action == nil || action.Type != domain.ActionRoll {
		t.Errorf("roll phase: got %+v, want a roll", action)
	}

	if got := b.NextAction(nil); got != nil {
		t.Errorf("nil state: got %+v, want nil", got)
	}

	ended := twoPlayerState(domain.PhaseEnded)
	if got := b.NextAction(ended); got != nil {
		t.Errorf("ended game: got %+v, want nil", got)
	}
}

func TestNextAction_DiscardOnlyOverLimit(t *testing.T) {
	state := twoPlayerState(domain.PhaseDiscard)
	b := New(enginetest.New(state), Config{PlayerID: "p1"})

	// Under the limit nothing is owed even in the discard phase.
	if got := b.NextAction(state); got != nil {
		t.Errorf("seven or fewer cards: got %+v, want nil", got)
	}

	state.Players["p1"].Resources = domain.ResourceSet{domain.Wood: 5, domain.Ore: 4}
	action := b.NextAction(state)
	if action == nil || action.Type != domain.ActionDiscard {
		t.Fatalf("nine cards: got %+v, want a discard", action)
	}
	if action.Discard.Total() != 4 {
		t.Errorf("discard of %d cards, want 4", action.Discard.Total())
	}
}

func TestNextAction_RobberAndSteal(t *testing.T) {
	state := twoPlayerState(domain.PhaseMoveRobber)
	state.Board.Vertices[4].Building = domain.Settlement
	state.Board.Vertices[4].Owner = "p2"
	b := New(enginetest.New(state), Config{PlayerID: "p1"})

	action := b.NextAction(state)
	if action == nil || action.Type != domain.ActionMoveRobber {
		t.Fatalf("robber phase: got %+v, want a robber move", action)
	}
	if action.Hex == domain.NoHex {
		t.Error("robber move must name a hex")
	}

	state.Phase = domain.PhaseSteal
	state.Board.Hexes[3].Robber = true
	state.Players["p2"].Resources = domain.ResourceSet{domain.Wheat: 2}

	action = b.NextAction(state)
	if action == nil || action.Type != domain.ActionSteal || action.Target != "p2" {
		t.Errorf("steal phase: got %+v, want a steal from p2", action)
	}
}

func TestNextAction_UpgradesBestSettlementToCity(t *testing.T) {
	// A settlement on the board's best vertex plus city resources in hand:
	// the goal pipeline must produce the upgrade.
	state := twoPlayerState(domain.PhaseActions)
	state.Board.Vertices[2].Building = domain.Settlement
	state.Board.Vertices[2].Owner = "p1"
	state.Players["p1"].SettlementsLeft--
	state.Players["p1"].Resources = domain.ResourceSet{domain.Wheat: 2, domain.Ore: 3}
	b := New(enginetest.New(state), Config{PlayerID: "p1"})

	action := b.NextAction(state)
	if action == nil || action.Type != domain.ActionBuild || action.Build != domain.BuildCity {
		t.Fatalf("got %+v, want a city build", action)
	}
	if action.Vertex != 2 {
		t.Errorf("city at vertex %d, want 2", action.Vertex)
	}
}
