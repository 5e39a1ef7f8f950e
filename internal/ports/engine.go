package ports

import (
	"context"

	"settlers/internal/domain"
)

// ActionResult is the rules engine's reply to a submitted action.
type ActionResult struct {
	Success  bool
	NewState *domain.GameState
	Err      string // engine-reported rejection reason when Success is false
}

// GameEngine defines the interface to the authoritative rules engine. The
// bot only reads snapshots and submits candidate actions; it never decides
// legality itself.
type GameEngine interface {
	// Snapshot returns the current authoritative game state.
	Snapshot() *domain.GameState

	// ProcessAction submits one action for validation and application.
	// It is the only state-mutating call the bot makes.
	ProcessAction(ctx context.Context, state *domain.GameState, action domain.GameAction) ActionResult

	// LegalSettlementVertices lists vertices where the player may place a
	// settlement under the current phase and adjacency rules.
	LegalSettlementVertices(state *domain.GameState, playerID string) []domain.VertexID

	// LegalRoadEdges lists edges where the player may place a road.
	LegalRoadEdges(state *domain.GameState, playerID string) []domain.EdgeID

	// AnalyzeVictoryPath returns the engine's fastest-path analysis for a
	// player, or nil when no analysis is available.
	AnalyzeVictoryPath(state *domain.GameState, playerID string) *domain.VictoryAnalysis
}
