package goals

import (
	"sort"
	"strings"
	"testing"

	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func newTestArena(t *testing.T) (*Manager, *enginetest.Engine, *domain.GameState) {
	t.Helper()
	player := enginetest.NewPlayer("p1")
	rival := enginetest.NewPlayer("p2")
	state := enginetest.NewState(enginetest.StandardTestBoard(), domain.PhaseSetup1, player, rival)
	engine := enginetest.New(state)
	return NewManager("p1", engine, DefaultTuning, nil), engine, state
}

func TestUpdateGoals_ToleratesInvalidState(t *testing.T) {
	m, _, _ := newTestArena(t)

	m.UpdateGoals(nil)
	m.UpdateGoals(&domain.GameState{})

	if len(m.ActiveGoals()) != 0 {
		t.Errorf("invalid states must not create goals, got %d", len(m.ActiveGoals()))
	}
	if m.ImmediateGoal(nil) != nil {
		t.Error("ImmediateGoal on a nil state must be nil")
	}
}

func TestUpdateGoals_GeneratesCappedExpansionGoals(t *testing.T) {
	m, _, state := newTestArena(t)

	m.UpdateGoals(state)

	active := m.ActiveGoals()
	if len(active) != DefaultTuning.MaxExpansionGoals {
		t.Fatalf("expected %d expansion goals, got %d", DefaultTuning.MaxExpansionGoals, len(active))
	}
	// Vertex 2 taps three hexes (wood, brick, wheat) at 14 pips; it must
	// rank first.
	if active[0].ID != settlementGoalID(2) {
		t.Errorf("top goal = %s, want %s", active[0].ID, settlementGoalID(2))
	}
	for _, g := range active {
		if g.Kind != KindSettlement {
			t.Errorf("unexpected goal kind %s before any placements", g.Kind)
		}
		if g.Status != StatusActive {
			t.Errorf("goal %s status = %s, want active", g.ID, g.Status)
		}
	}
}

func TestUpdateGoals_IDsStayUniqueAcrossCycles(t *testing.T) {
	m, _, state := newTestArena(t)

	var first string
	for cycle := 0; cycle < 5; cycle++ {
		m.UpdateGoals(state)

		seen := make(map[string]bool)
		var ids []string
		for _, g := range m.ActiveGoals() {
			if seen[g.ID] {
				t.Fatalf("cycle %d: duplicate goal id %s", cycle, g.ID)
			}
			seen[g.ID] = true
			ids = append(ids, g.ID)
		}
		sort.Strings(ids)

		// An unchanged board re-derives the same goal set, not copies of it.
		joined := strings.Join(ids, ",")
		if cycle == 0 {
			first = joined
			continue
		}
		if joined != first {
			t.Errorf("cycle %d: goal ids drifted: %s, want %s", cycle, joined, first)
		}
	}
}

func TestUpdateGoals_FromVictoryAnalysis(t *testing.T) {
	m, engine, state := newTestArena(t)

	engine.SetAnalysis("p1", &domain.VictoryAnalysis{
		TotalTurns: 12,
		Steps: []domain.VictoryStep{
			{Description: "Settle the fringe", Kind: domain.BuildSettlement, Vertex: 3, Edge: domain.NoEdge, VPGain: 1},
			{Description: "Upgrade the fringe", Kind: domain.BuildCity, Vertex: 6, Edge: domain.NoEdge, VPGain: 1},
		},
		Bottlenecks: []string{"ore shortage"},
	})

	m.UpdateGoals(state)

	top := m.TopGoal()
	if top == nil || top.ID != settlementGoalID(3) {
		t.Fatalf("top goal = %+v, want the rank-0 victory step", top)
	}
	if top.BasePriority != DefaultTuning.VictoryStepBase {
		t.Errorf("rank-0 base priority = %.0f, want %.0f", top.BasePriority, DefaultTuning.VictoryStepBase)
	}

	var acquire *Goal
	for _, g := range m.ActiveGoals() {
		if g.Kind == KindAcquire {
			acquire = g
		}
	}
	if acquire == nil {
		t.Fatal("bottleneck report must produce an acquire goal")
	}
	if acquire.ID != acquireGoalID(domain.Ore) {
		t.Errorf("acquire goal id = %s, want %s", acquire.ID, acquireGoalID(domain.Ore))
	}
	if acquire.BasePriority != DefaultTuning.BottleneckPriority {
		t.Errorf("acquire base priority = %.0f, want %.0f", acquire.BasePriority, DefaultTuning.BottleneckPriority)
	}
}

func TestReview_CompletesSettlementGoal(t *testing.T) {
	m, _, state := newTestArena(t)
	m.UpdateGoals(state)

	// The settlement lands on the goal's target vertex.
	v := state.Board.Vertices[2]
	v.Building = domain.Settlement
	v.Owner = "p1"
	state.Players["p1"].SettlementsLeft--

	m.UpdateGoals(state)

	for _, g := range m.ActiveGoals() {
		if g.ID == settlementGoalID(2) {
			t.Fatal("achieved goal still active after review")
		}
	}
	found := false
	for _, g := range m.CompletedGoals() {
		if g.ID == settlementGoalID(2) {
			found = true
			if g.Status != StatusCompleted {
				t.Errorf("completed goal status = %s", g.Status)
			}
		}
	}
	if !found {
		t.Error("achieved goal missing from the completed list")
	}
}

func TestReview_AbandonsOccupiedTarget(t *testing.T) {
	m, _, state := newTestArena(t)
	m.UpdateGoals(state)

	// A rival grabs the target first.
	v := state.Board.Vertices[2]
	v.Building = domain.Settlement
	v.Owner = "p2"

	m.UpdateGoals(state)

	for _, g := range m.ActiveGoals() {
		if g.ID == settlementGoalID(2) {
			t.Fatal("goal for a rival-occupied vertex still active")
		}
	}
	for _, g := range m.CompletedGoals() {
		if g.ID == settlementGoalID(2) {
			t.Fatal("abandoned goal must not count as completed")
		}
	}
}

func TestReview_CompletesDevCardGoalOnPurchase(t *testing.T) {
	m, engine, state := newTestArena(t)
	engine.SetAnalysis("p1", &domain.VictoryAnalysis{
		Steps: []domain.VictoryStep{
			{Description: "Buy a card", Kind: domain.BuildDevCard, Vertex: domain.NoVertex, Edge: domain.NoEdge, VPGain: 1},
		},
	})
	m.UpdateGoals(state)

	// The purchase happens; the analyzer moves on to other steps.
	state.Players["p1"].DevCards = 1
	engine.SetAnalysis("p1", nil)
	m.UpdateGoals(state)

	for _, g := range m.ActiveGoals() {
		if g.Kind == KindDevCard {
			t.Fatal("dev card goal still active after the purchase")
		}
	}
	completed := false
	for _, g := range m.CompletedGoals() {
		if g.Kind == KindDevCard {
			completed = true
		}
	}
	if !completed {
		t.Error("dev card purchase must complete the goal")
	}
}

func TestPrioritize_BoostsAndClamps(t *testing.T) {
	m, _, state := newTestArena(t)

	// Deep in a long game, holding a full settlement cost: urgency and the
	// near-completion boost push the top expansion goal to the cap.
	state.Turn = 41
	state.Players["p1"].Resources = domain.ResourceSet{domain.Wood: 1, domain.Brick: 1, domain.Sheep: 1, domain.Wheat: 1}

	m.UpdateGoals(state)

	top := m.TopGoal()
	if top == nil {
		t.Fatal("expected an active goal")
	}
	if top.Priority != 100 {
		t.Errorf("boosted priority = %.1f, want clamped 100", top.Priority)
	}
}

func TestUrgencyFor_Bands(t *testing.T) {
	cases := []struct {
		turn int
		want float64
	}{
		{1, 1.0}, {20, 1.0}, {21, 1.2}, {41, 1.5}, {61, 1.8}, {81, 2.0}, {500, 2.0},
	}
	for _, c := range cases {
		if got := DefaultTuning.UrgencyFor(c.turn); got != c.want {
			t.Errorf("UrgencyFor(%d) = %.1f, want %.1f", c.turn, got, c.want)
		}
	}
}

func TestBottleneckResource(t *testing.T) {
	if r, ok := bottleneckResource("ore shortage"); !ok || r != domain.Ore {
		t.Errorf("bottleneckResource(ore shortage) = %s, %v", r, ok)
	}
	if r, ok := bottleneckResource("Wheat starvation"); !ok || r != domain.Wheat {
		t.Errorf("bottleneckResource(Wheat starvation) = %s, %v", r, ok)
	}
	if _, ok := bottleneckResource("general malaise"); ok {
		t.Error("non-resource bottleneck must not parse")
	}
	if _, ok := bottleneckResource(""); ok {
		t.Error("empty bottleneck must not parse")
	}
}
