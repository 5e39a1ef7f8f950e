package domain

// Phase represents the lifecycle stage the rules engine reports for a turn.
type Phase string

const (
	PhaseSetup1     Phase = "setup1"
	PhaseSetup2     Phase = "setup2"
	PhaseRoll       Phase = "roll"
	PhaseActions    Phase = "actions"
	PhaseDiscard    Phase = "discard"
	PhaseMoveRobber Phase = "moveRobber"
	PhaseSteal      Phase = "steal"
	PhaseEnded      Phase = "ended"
)

// WinningScore is the victory point threshold that ends the game.
const WinningScore = 10

// Player holds the per-player read model: holdings, remaining building
// stock and public score.
type Player struct {
	ID              string
	Name            string
	Resources       ResourceSet
	Score           int
	DevCards        int
	SettlementsLeft int
	CitiesLeft      int
	RoadsLeft       int
}

// GameState is the authoritative snapshot the rules engine exposes. The
// planner treats it as a value: read, decide, submit, re-read.
type GameState struct {
	Phase         Phase
	Turn          int
	CurrentPlayer string
	Players       map[string]*Player
	Order         []string // seat order, used for deterministic iteration
	Board         *Board
}

// Player returns the player for id, or nil when absent.
func (s *GameState) Player(id string) *Player {
	if s == nil {
		return nil
	}
	return s.Players[id]
}

// PlayersInOrder returns players following seat order, skipping ids that
// have no entry in the snapshot.
func (s *GameState) PlayersInOrder() []*Player {
	if s == nil {
		return nil
	}
	out := make([]*Player, 0, len(s.Order))
	for _, id := range s.Order {
		if p := s.Players[id]; p != nil {
			out = append(out, p)
		}
	}
	return out
}

// ActionType enumerates the candidate actions the planner can submit.
type ActionType string

const (
	ActionRoll       ActionType = "roll"
	ActionBuild      ActionType = "build"
	ActionBuyDevCard ActionType = "buyDevCard"
	ActionDiscard    ActionType = "discard"
	ActionMoveRobber ActionType = "moveRobber"
	ActionSteal      ActionType = "steal"
	ActionTradeBank  ActionType = "tradeBank"
	ActionTradeOffer ActionType = "tradeOffer"
	ActionEndTurn    ActionType = "endTurn"
)

// GameAction is one candidate action submitted to the rules engine. Only
// the fields relevant to Type are populated; the engine validates them.
type GameAction struct {
	Type     ActionType
	PlayerID string

	Build  BuildKind
	Vertex VertexID
	Edge   EdgeID
	Hex    HexID
	Target string // victim for steals, counterparty for player trades

	Give    ResourceSet // outgoing side of a trade
	Get     ResourceSet // incoming side of a trade
	Discard ResourceSet
}

// EndTurn returns the universal fallback action for a player.
func EndTurn(playerID string) GameAction {
	return GameAction{Type: ActionEndTurn, PlayerID: playerID, Vertex: NoVertex, Edge: NoEdge, Hex: NoHex}
}

// VictoryStep is one ordered step of the externally computed fastest path
// to the winning score.
type VictoryStep struct {
	Description string
	Kind        BuildKind
	Vertex      VertexID
	Edge        EdgeID
	Cost        ResourceSet
	VPGain      int
}

// VictoryAnalysis is the opaque victory-path result consumed from the
// rules engine's analyzer. The planner never recomputes it.
type VictoryAnalysis struct {
	TotalTurns  int
	Steps       []VictoryStep
	Bottlenecks []string // e.g. "ore shortage"
}

// ProgressPhase classifies how far along the victory path a player is.
// Discard protection tables key off this.
type ProgressPhase string

const (
	ProgressFoundation   ProgressPhase = "FOUNDATION"
	ProgressExpansion    ProgressPhase = "EXPANSION"
	ProgressAcceleration ProgressPhase = "ACCELERATION"
	ProgressVictory      ProgressPhase = "VICTORY"
)

// ProgressPhaseFor derives the victory-path phase from a player's score.
func ProgressPhaseFor(score int) ProgressPhase {
	switch {
	case score >= 8:
		return ProgressVictory
	case score >= 5:
		return ProgressAcceleration
	case score >= 3:
		return ProgressExpansion
	default:
		return ProgressFoundation
	}
}
