package nakama

import (
	"settlers/internal/domain"
)

// Wire types for client messages and broadcast events. Payloads are JSON;
// the board itself never crosses the wire, clients mirror it from the
// rules engine's own channel.

// PlayerView is the public per-player slice of a snapshot. Hidden
// information (exact hand composition) stays server-side.
type PlayerView struct {
	UserID        string `json:"user_id"`
	Seat          int    `json:"seat"`
	DisplayName   string `json:"display_name"`
	IsOwner       bool   `json:"is_owner"`
	IsBot         bool   `json:"is_bot"`
	Score         int    `json:"score"`
	ResourceCount int    `json:"resource_count"`
	DevCards      int    `json:"dev_cards"`
}

// MatchSnapshot is the lobby/game summary broadcast on joins, leaves and
// turn boundaries.
type MatchSnapshot struct {
	Seats         []string     `json:"seats"`
	OwnerSeat     int          `json:"owner_seat"`
	Tick          int64        `json:"tick"`
	Phase         string       `json:"phase"`
	Turn          int          `json:"turn"`
	CurrentPlayer string       `json:"current_player"`
	Players       []PlayerView `json:"players"`
}

// ActionRequest is the client payload for OpSubmitAction, a JSON mirror
// of the engine's action shape.
type ActionRequest struct {
	Type    string         `json:"type"`
	Build   string         `json:"build,omitempty"`
	Vertex  *int           `json:"vertex,omitempty"`
	Edge    *int           `json:"edge,omitempty"`
	Hex     *int           `json:"hex,omitempty"`
	Target  string         `json:"target,omitempty"`
	Give    map[string]int `json:"give,omitempty"`
	Get     map[string]int `json:"get,omitempty"`
	Discard map[string]int `json:"discard,omitempty"`
}

// ActionEvent reports one applied action to all clients.
type ActionEvent struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Build  string `json:"build,omitempty"`
	Vertex int    `json:"vertex"` // -1 when the action carries no vertex
	Edge   int    `json:"edge"`
	Hex    int    `json:"hex"`
	Target string `json:"target,omitempty"`
}

// BotTurnEvent summarizes one completed bot turn.
type BotTurnEvent struct {
	UserID     string `json:"user_id"`
	TurnID     string `json:"turn_id"`
	Success    bool   `json:"success"`
	Actions    int    `json:"actions"`
	FinalPhase string `json:"final_phase"`
	Error      string `json:"error,omitempty"`
}

// GameEndedEvent announces the winner when a snapshot reaches the ended
// phase.
type GameEndedEvent struct {
	WinnerID string         `json:"winner_id"`
	Scores   map[string]int `json:"scores"`
}

// ErrorEvent is sent privately to the offending client.
type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// actionFromWire maps a client request onto the engine's action type,
// defaulting unset board references to the sentinel ids.
func actionFromWire(playerID string, req ActionRequest) domain.GameAction {
	action := domain.GameAction{
		Type:     domain.ActionType(req.Type),
		PlayerID: playerID,
		Build:    domain.BuildKind(req.Build),
		Vertex:   domain.NoVertex,
		Edge:     domain.NoEdge,
		Hex:      domain.NoHex,
		Target:   req.Target,
		Give:     resourcesFromWire(req.Give),
		Get:      resourcesFromWire(req.Get),
		Discard:  resourcesFromWire(req.Discard),
	}
	if req.Vertex != nil {
		action.Vertex = domain.VertexID(*req.Vertex)
	}
	if req.Edge != nil {
		action.Edge = domain.EdgeID(*req.Edge)
	}
	if req.Hex != nil {
		action.Hex = domain.HexID(*req.Hex)
	}
	return action
}

func resourcesFromWire(m map[string]int) domain.ResourceSet {
	if len(m) == 0 {
		return nil
	}
	out := domain.NewResourceSet()
	for name, count := range m {
		out[domain.Resource(name)] = count
	}
	return out
}

func actionToWire(userID string, action domain.GameAction) ActionEvent {
	return ActionEvent{
		UserID: userID,
		Type:   string(action.Type),
		Build:  string(action.Build),
		Vertex: int(action.Vertex),
		Edge:   int(action.Edge),
		Hex:    int(action.Hex),
		Target: action.Target,
	}
}
