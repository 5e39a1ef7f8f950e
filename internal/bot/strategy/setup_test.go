package strategy

import (
	"testing"

	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func allVertices(board *domain.Board) []domain.VertexID {
	out := make([]domain.VertexID, 0, len(board.Vertices))
	for id := range board.Vertices {
		out = append(out, id)
	}
	return out
}

func TestChooseSetupSettlement_PicksHighestProduction(t *testing.T) {
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup1,
		enginetest.NewPlayer("p1"))

	// Vertex 2 sits on the 8, the 5 and the 6: the strongest spot by far.
	choice := ChooseSetupSettlement(state, "p1", allVertices(state.Board), DefaultWeights.Setup, true)
	if choice == nil {
		t.Fatal("expected a settlement choice")
	}
	if choice.Vertex != 2 {
		t.Errorf("first settlement at vertex %d, want 2 (%s)", choice.Vertex, choice.Reasoning)
	}
	if choice.Score <= 0 {
		t.Errorf("score = %.1f, want positive", choice.Score)
	}
}

func TestChooseSetupSettlement_SecondRoundStillRanks(t *testing.T) {
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup2,
		enginetest.NewPlayer("p1"))

	// With vertex 2 and its neighborhood taken, the pasture/mountains
	// corner is the best of what remains.
	legal := []domain.VertexID{0, 5, 6, 7, 8}
	choice := ChooseSetupSettlement(state, "p1", legal, DefaultWeights.Setup, false)
	if choice == nil {
		t.Fatal("expected a settlement choice")
	}
	if choice.Vertex != 6 {
		t.Errorf("second settlement at vertex %d, want 6 (%s)", choice.Vertex, choice.Reasoning)
	}
}

func TestChooseSetupSettlement_EmptyLegalSet(t *testing.T) {
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup1,
		enginetest.NewPlayer("p1"))

	if got := ChooseSetupSettlement(state, "p1", nil, DefaultWeights.Setup, true); got != nil {
		t.Errorf("no legal vertices must yield no choice, got %+v", got)
	}
	if got := ChooseSetupSettlement(nil, "p1", []domain.VertexID{0}, DefaultWeights.Setup, true); got != nil {
		t.Errorf("nil state must yield no choice, got %+v", got)
	}
}

func TestChooseSetupRoad_PointsAtBestExpansion(t *testing.T) {
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup1,
		enginetest.NewPlayer("p1"))

	// Fresh settlement on vertex 2; its three edges lead to vertices 1, 3
	// and 4. Vertex 4 taps three hexes and must win.
	v := state.Board.Vertices[2]
	v.Building = domain.Settlement
	v.Owner = "p1"

	choice := ChooseSetupRoad(state, "p1", []domain.EdgeID{1, 2, 9}, DefaultWeights.Setup)
	if choice == nil {
		t.Fatal("expected a road choice")
	}
	if choice.Edge != 9 {
		t.Errorf("setup road on edge %d, want 9 toward vertex 4 (%s)", choice.Edge, choice.Reasoning)
	}
}

func TestChooseSetupRoad_BuiltEndpointsScoreZero(t *testing.T) {
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup1,
		enginetest.NewPlayer("p1"), enginetest.NewPlayer("p2"))

	// Both endpoints of edge 9 are taken; the edge still returns a choice
	// but with no expansion value.
	for _, id := range []domain.VertexID{2, 4} {
		state.Board.Vertices[id].Building = domain.Settlement
		state.Board.Vertices[id].Owner = "p2"
	}

	choice := ChooseSetupRoad(state, "p1", []domain.EdgeID{9}, DefaultWeights.Setup)
	if choice == nil {
		t.Fatal("expected a road choice")
	}
	if choice.Score != 0 {
		t.Errorf("road between built vertices scored %.1f, want 0", choice.Score)
	}
}

func TestPlacedCounters(t *testing.T) {
	p := enginetest.NewPlayer("p1")
	p.SettlementsLeft = 3
	p.RoadsLeft = 11

	if got := SettlementsPlaced(p); got != 2 {
		t.Errorf("SettlementsPlaced = %d, want 2", got)
	}
	if got := RoadsPlaced(p); got != 4 {
		t.Errorf("RoadsPlaced = %d, want 4", got)
	}
	if got := SettlementsPlaced(nil); got != 0 {
		t.Errorf("SettlementsPlaced(nil) = %d, want 0", got)
	}
}
