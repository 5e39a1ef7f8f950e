package enginetest

import (
	"context"
	"testing"

	"settlers/internal/domain"
)

func TestLegalSettlementVertices_DistanceRule(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseSetup1, NewPlayer("p1"), NewPlayer("p2"))
	engine := New(state)

	state.Board.Vertices[2].Building = domain.Settlement
	state.Board.Vertices[2].Owner = "p2"

	legal := engine.LegalSettlementVertices(state, "p1")
	banned := map[domain.VertexID]bool{2: true, 1: true, 3: true, 4: true}
	for _, v := range legal {
		if banned[v] {
			t.Errorf("vertex %d violates the distance rule", v)
		}
	}
	if len(legal) != len(state.Board.Vertices)-len(banned) {
		t.Errorf("legal count = %d, want %d", len(legal), len(state.Board.Vertices)-len(banned))
	}
}

func TestLegalSettlementVertices_NeedsRoadAfterSetup(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseActions, NewPlayer("p1"))
	engine := New(state)

	if legal := engine.LegalSettlementVertices(state, "p1"); len(legal) != 0 {
		t.Errorf("no road network yet, but %v are legal", legal)
	}

	edge := state.Board.Edges[5] // vertices 5 and 6
	edge.HasRoad = true
	edge.Owner = "p1"

	legal := engine.LegalSettlementVertices(state, "p1")
	if len(legal) != 2 || legal[0] != 5 || legal[1] != 6 {
		t.Errorf("legal = %v, want the road endpoints 5 and 6", legal)
	}
}

func TestLegalRoadEdges_FollowsNetwork(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseActions, NewPlayer("p1"), NewPlayer("p2"))
	engine := New(state)

	state.Board.Vertices[0].Building = domain.Settlement
	state.Board.Vertices[0].Owner = "p1"

	legal := engine.LegalRoadEdges(state, "p1")
	if len(legal) != 2 || legal[0] != 0 || legal[1] != 8 {
		t.Fatalf("legal = %v, want the two edges at vertex 0", legal)
	}

	// An opponent settlement on the road's far endpoint cuts any further
	// extension through that vertex.
	state.Board.Edges[0].HasRoad = true
	state.Board.Edges[0].Owner = "p1"
	state.Board.Vertices[1].Building = domain.Settlement
	state.Board.Vertices[1].Owner = "p2"

	legal = engine.LegalRoadEdges(state, "p1")
	for _, e := range legal {
		if e == 1 {
			t.Error("edge 1 extends through an opponent settlement and must be cut")
		}
	}
}

func TestProcessAction_SetupRoundsFlipOrder(t *testing.T) {
	state := NewState(SimulationBoard(), domain.PhaseSetup1,
		NewPlayer("a"), NewPlayer("b"))
	engine := New(state)
	ctx := context.Background()

	place := func(player string, vertex domain.VertexID, edge domain.EdgeID) {
		t.Helper()
		res := engine.ProcessAction(ctx, nil, domain.GameAction{
			Type: domain.ActionBuild, PlayerID: player, Build: domain.BuildSettlement,
			Vertex: vertex, Edge: domain.NoEdge, Hex: domain.NoHex,
		})
		if !res.Success {
			t.Fatalf("settlement for %s at %d: %s", player, vertex, res.Err)
		}
		res = engine.ProcessAction(ctx, nil, domain.GameAction{
			Type: domain.ActionBuild, PlayerID: player, Build: domain.BuildRoad,
			Vertex: domain.NoVertex, Edge: edge, Hex: domain.NoHex,
		})
		if !res.Success {
			t.Fatalf("road for %s at %d: %s", player, edge, res.Err)
		}
	}

	place("a", 0, 0)
	snap := engine.Snapshot()
	if snap.CurrentPlayer != "b" || snap.Phase != domain.PhaseSetup1 {
		t.Fatalf("after a's placement: player %s phase %s", snap.CurrentPlayer, snap.Phase)
	}

	place("b", 4, 4)
	snap = engine.Snapshot()
	// Round two runs in reverse order, so b places again immediately.
	if snap.CurrentPlayer != "b" || snap.Phase != domain.PhaseSetup2 {
		t.Fatalf("round two should open with b: player %s phase %s", snap.CurrentPlayer, snap.Phase)
	}

	place("b", 8, 8)
	place("a", 12, 12)
	snap = engine.Snapshot()
	if snap.Phase != domain.PhaseRoll || snap.CurrentPlayer != "a" {
		t.Errorf("setup complete should hand the dice to the first seat, got %s in %s", snap.CurrentPlayer, snap.Phase)
	}
}

func TestProcessAction_SetupBuildsAreFree(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseSetup1, NewPlayer("p1"))
	engine := New(state)

	res := engine.ProcessAction(context.Background(), nil, domain.GameAction{
		Type: domain.ActionBuild, PlayerID: "p1", Build: domain.BuildSettlement,
		Vertex: 2, Edge: domain.NoEdge, Hex: domain.NoHex,
	})
	if !res.Success {
		t.Fatalf("setup settlement: %s", res.Err)
	}
	p := res.NewState.Players["p1"]
	if p.Resources.Total() != 0 || p.Score != 1 || p.SettlementsLeft != 4 {
		t.Errorf("unexpected player after free setup build: %+v", p)
	}
}

func TestProcessAction_PaidBuildRequiresResources(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseActions, NewPlayer("p1"))
	engine := New(state)

	res := engine.ProcessAction(context.Background(), nil, domain.GameAction{
		Type: domain.ActionBuild, PlayerID: "p1", Build: domain.BuildSettlement,
		Vertex: 2, Edge: domain.NoEdge, Hex: domain.NoHex,
	})
	if res.Success {
		t.Fatal("penniless settlement build must fail")
	}
}

func TestProcessAction_RobberMoveRoutesToSteal(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseMoveRobber, NewPlayer("p1"), NewPlayer("p2"))
	state.Board.Vertices[4].Building = domain.Settlement
	state.Board.Vertices[4].Owner = "p2"
	state.Players["p2"].Resources = domain.ResourceSet{domain.Wheat: 1}
	engine := New(state)

	res := engine.ProcessAction(context.Background(), nil, domain.GameAction{
		Type: domain.ActionMoveRobber, PlayerID: "p1", Hex: 1,
		Vertex: domain.NoVertex, Edge: domain.NoEdge,
	})
	if !res.Success {
		t.Fatalf("robber move: %s", res.Err)
	}
	if res.NewState.Phase != domain.PhaseSteal {
		t.Errorf("phase = %s, want steal while the victim holds cards", res.NewState.Phase)
	}
	if res.NewState.Board.RobberHex() != 1 {
		t.Errorf("robber on hex %d, want 1", res.NewState.Board.RobberHex())
	}

	res = engine.ProcessAction(context.Background(), nil, domain.GameAction{
		Type: domain.ActionSteal, PlayerID: "p1", Target: "p2",
		Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex,
	})
	if !res.Success {
		t.Fatalf("steal: %s", res.Err)
	}
	if res.NewState.Players["p1"].Resources[domain.Wheat] != 1 {
		t.Error("stolen card never arrived")
	}
	if res.NewState.Players["p2"].Resources.Total() != 0 {
		t.Error("victim kept the stolen card")
	}
}

func TestProcessAction_EndTurnRotatesSeats(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseActions, NewPlayer("a"), NewPlayer("b"))
	engine := New(state)

	res := engine.ProcessAction(context.Background(), nil, domain.EndTurn("a"))
	if !res.Success {
		t.Fatalf("end turn: %s", res.Err)
	}
	if res.NewState.CurrentPlayer != "b" || res.NewState.Phase != domain.PhaseRoll {
		t.Errorf("after a ends: %s in %s", res.NewState.CurrentPlayer, res.NewState.Phase)
	}
	if res.NewState.Turn != 1 {
		t.Errorf("turn counter advanced mid-round: %d", res.NewState.Turn)
	}

	res = engine.ProcessAction(context.Background(), nil, domain.EndTurn("b"))
	if res.NewState.CurrentPlayer != "a" || res.NewState.Turn != 2 {
		t.Errorf("wrap should return to a on turn 2, got %s on %d", res.NewState.CurrentPlayer, res.NewState.Turn)
	}
}

func TestCloneState_Independent(t *testing.T) {
	state := NewState(StandardTestBoard(), domain.PhaseActions, NewPlayer("p1"))
	state.Players["p1"].Resources[domain.Wood] = 2

	clone := CloneState(state)
	clone.Players["p1"].Resources[domain.Wood] = 9
	clone.Board.Vertices[0].Building = domain.City
	clone.Order[0] = "mallory"

	if state.Players["p1"].Resources[domain.Wood] != 2 {
		t.Error("clone shares player resources")
	}
	if state.Board.Vertices[0].Building != domain.NoBuilding {
		t.Error("clone shares board vertices")
	}
	if state.Order[0] != "p1" {
		t.Error("clone shares the seat order")
	}
	if CloneState(nil) != nil {
		t.Error("nil state should clone to nil")
	}
}

func TestScriptedRejection(t *testing.T) {
	engine := New(NewState(StandardTestBoard(), domain.PhaseRoll, NewPlayer("p1")))
	engine.Reject(domain.ActionRoll, "table flipped")

	res := engine.ProcessAction(context.Background(), nil, domain.GameAction{
		Type: domain.ActionRoll, PlayerID: "p1",
		Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex,
	})
	if res.Success || res.Err != "table flipped" {
		t.Errorf("scripted rejection not honored: %+v", res)
	}
	if got := engine.Processed(); len(got) != 1 {
		t.Errorf("rejected actions must still be recorded, got %d", len(got))
	}
}
