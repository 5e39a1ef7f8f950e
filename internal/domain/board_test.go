package domain

import "testing"

// twoHexBoard builds the smallest interesting board: a forest/8 and a
// hills/5 sharing vertex 1, with the connecting edges.
func twoHexBoard() *Board {
	return &Board{
		Hexes: map[HexID]*Hex{
			0: {ID: 0, Terrain: Forest, Token: 8, Vertices: []VertexID{0, 1}},
			1: {ID: 1, Terrain: Hills, Token: 5, Vertices: []VertexID{1, 2}},
		},
		Vertices: map[VertexID]*Vertex{
			0: {ID: 0, Hexes: []HexID{0}, Edges: []EdgeID{0}},
			1: {ID: 1, Hexes: []HexID{0, 1}, Edges: []EdgeID{0, 1}},
			2: {ID: 2, Hexes: []HexID{1}, Edges: []EdgeID{1}},
		},
		Edges: map[EdgeID]*Edge{
			0: {ID: 0, Vertices: [2]VertexID{0, 1}},
			1: {ID: 1, Vertices: [2]VertexID{1, 2}},
		},
	}
}

func TestPipValue(t *testing.T) {
	cases := map[int]int{6: 5, 8: 5, 5: 4, 9: 4, 4: 3, 10: 3, 3: 2, 11: 2, 2: 1, 12: 1, 0: 0, 7: 0}
	for token, want := range cases {
		if got := PipValue(token); got != want {
			t.Errorf("PipValue(%d) = %d, want %d", token, got, want)
		}
	}
}

func TestVertexPips_SumsAdjacentHexes(t *testing.T) {
	board := twoHexBoard()

	// Vertex 1 touches the 8 (5 pips) and the 5 (4 pips).
	if got := board.VertexPips(1); got != 9 {
		t.Errorf("VertexPips(1) = %d, want 9", got)
	}
	if got := board.VertexPips(0); got != 5 {
		t.Errorf("VertexPips(0) = %d, want 5", got)
	}
}

func TestVertexPips_IgnoresNonProducingTerrain(t *testing.T) {
	board := twoHexBoard()
	board.Hexes[1].Terrain = Desert

	if got := board.VertexPips(1); got != 5 {
		t.Errorf("desert must not contribute pips, got %d", got)
	}
}

func TestVertexResources_Distinct(t *testing.T) {
	board := twoHexBoard()

	got := board.VertexResources(1)
	if len(got) != 2 {
		t.Fatalf("VertexResources(1) = %v, want wood and brick", got)
	}
}

func TestHexOwners_DistinctOwnersOnly(t *testing.T) {
	board := twoHexBoard()
	board.Vertices[0].Building = Settlement
	board.Vertices[0].Owner = "alice"
	board.Vertices[1].Building = City
	board.Vertices[1].Owner = "alice"

	owners := board.HexOwners(0)
	if len(owners) != 1 || owners[0] != "alice" {
		t.Errorf("HexOwners(0) = %v, want [alice]", owners)
	}
}

func TestRobberHex(t *testing.T) {
	board := twoHexBoard()
	if got := board.RobberHex(); got != NoHex {
		t.Errorf("RobberHex on a robber-free board = %d, want NoHex", got)
	}

	board.Hexes[1].Robber = true
	if got := board.RobberHex(); got != 1 {
		t.Errorf("RobberHex = %d, want 1", got)
	}
}

func TestProductionCount(t *testing.T) {
	board := twoHexBoard()
	if got := board.ProductionCount(Wood); got != 1 {
		t.Errorf("ProductionCount(wood) = %d, want 1", got)
	}
	if got := board.ProductionCount(Ore); got != 0 {
		t.Errorf("ProductionCount(ore) = %d, want 0", got)
	}
}

func TestProgressPhaseFor(t *testing.T) {
	cases := []struct {
		score int
		want  ProgressPhase
	}{
		{0, ProgressFoundation},
		{2, ProgressFoundation},
		{3, ProgressExpansion},
		{4, ProgressExpansion},
		{5, ProgressAcceleration},
		{7, ProgressAcceleration},
		{8, ProgressVictory},
		{10, ProgressVictory},
	}
	for _, c := range cases {
		if got := ProgressPhaseFor(c.score); got != c.want {
			t.Errorf("ProgressPhaseFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestPlayersInOrder_SkipsMissing(t *testing.T) {
	state := &GameState{
		Players: map[string]*Player{"a": {ID: "a"}},
		Order:   []string{"a", "ghost"},
	}

	got := state.PlayersInOrder()
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("PlayersInOrder = %v, want just player a", got)
	}
}

func TestEndTurn_UsesSentinels(t *testing.T) {
	a := EndTurn("p1")
	if a.Type != ActionEndTurn || a.PlayerID != "p1" {
		t.Fatalf("unexpected action %+v", a)
	}
	if a.Vertex != NoVertex || a.Edge != NoEdge || a.Hex != NoHex {
		t.Errorf("board references must be unset sentinels, got %+v", a)
	}
}
