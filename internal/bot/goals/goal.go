// Package goals owns the bot's prioritized, self-pruning goal set. Goals
// are derived from the engine's victory-path analysis and from always-on
// board scanning, then reviewed, re-prioritized and pruned every cycle.
package goals

import (
	"fmt"

	"settlers/internal/domain"
)

// Kind is the structured discriminator for what a goal builds or secures.
type Kind string

const (
	KindSettlement Kind = "buildSettlement"
	KindCity       Kind = "buildCity"
	KindRoad       Kind = "buildRoad"
	KindDevCard    Kind = "buyDevCard"
	KindAcquire    Kind = "acquireResource" // relieve a bottleneck resource
	KindVictory    Kind = "victory"
)

// Type classifies a goal's strategic role.
type Type string

const (
	TypeVictory   Type = "victory"
	TypeStrategic Type = "strategic"
	TypeTactical  Type = "tactical"
	TypeDefensive Type = "defensive"
)

// Status is the goal lifecycle state.
type Status int

const (
	StatusActive Status = iota
	StatusCompleted
	StatusAbandoned
)

// String returns the lifecycle state name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Requirements captures what a goal needs before it can complete. Zero
// values mean "no requirement of that sort".
type Requirements struct {
	Resources   domain.ResourceSet
	Settlements int
	Cities      int
	Roads       int
	Vertex      domain.VertexID
	Edge        domain.EdgeID
}

// Goal is one owned planning objective. Identity is the ID string; the
// arena guarantees no two active goals share one.
type Goal struct {
	ID           string
	Kind         Kind
	Type         Type
	Priority     float64 // 0..100, recomputed each cycle from BasePriority
	BasePriority float64
	Status       Status
	CreatedTurn  int
	TargetTurn   int // 0 means no deadline
	Requirements Requirements
	Prereqs      []string
	Value        float64
	Description  string

	// BaselineDevCards snapshots the player's dev card count at creation
	// so purchase goals can detect completion.
	BaselineDevCards int
}

// ResourceDeficit returns the total resource shortfall against the goal's
// requirement given current holdings.
func (g *Goal) ResourceDeficit(have domain.ResourceSet) int {
	if g == nil || g.Requirements.Resources == nil {
		return 0
	}
	return domain.DeficitTotal(have, g.Requirements.Resources)
}

// CompletableNow reports whether the goal's resource requirement is fully
// covered and the player still has the needed building stock.
func (g *Goal) CompletableNow(p *domain.Player) bool {
	if g == nil || p == nil {
		return false
	}
	if g.ResourceDeficit(p.Resources) != 0 {
		return false
	}
	switch g.Kind {
	case KindSettlement:
		return p.SettlementsLeft > 0
	case KindCity:
		return p.CitiesLeft > 0
	case KindRoad:
		return p.RoadsLeft > 0
	default:
		return true
	}
}

// CompletingAction translates a completable goal into the action that
// finishes it, or nil when the goal has no single completing action.
func (g *Goal) CompletingAction(playerID string) *domain.GameAction {
	if g == nil {
		return nil
	}
	switch g.Kind {
	case KindSettlement:
		return &domain.GameAction{Type: domain.ActionBuild, PlayerID: playerID, Build: domain.BuildSettlement, Vertex: g.Requirements.Vertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	case KindCity:
		return &domain.GameAction{Type: domain.ActionBuild, PlayerID: playerID, Build: domain.BuildCity, Vertex: g.Requirements.Vertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	case KindRoad:
		return &domain.GameAction{Type: domain.ActionBuild, PlayerID: playerID, Build: domain.BuildRoad, Vertex: domain.NoVertex, Edge: g.Requirements.Edge, Hex: domain.NoHex}
	case KindDevCard:
		return &domain.GameAction{Type: domain.ActionBuyDevCard, PlayerID: playerID, Build: domain.BuildDevCard, Vertex: domain.NoVertex, Edge: domain.NoEdge, Hex: domain.NoHex}
	default:
		return nil
	}
}

func settlementGoalID(v domain.VertexID) string { return fmt.Sprintf("settlement-v%d", v) }
func cityGoalID(v domain.VertexID) string       { return fmt.Sprintf("city-v%d", v) }
func roadGoalID(e domain.EdgeID) string         { return fmt.Sprintf("road-e%d", e) }
func acquireGoalID(r domain.Resource) string    { return fmt.Sprintf("acquire-%s", r) }
func devCardGoalID(turn int) string             { return fmt.Sprintf("devcard-t%d", turn) }
