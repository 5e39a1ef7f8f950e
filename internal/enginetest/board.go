// Package enginetest provides an in-memory stand-in for the external
// rules engine: board builders and a scriptable engine double used by
// unit tests and the offline analysis CLI. It applies actions naively and
// is not a rules implementation.
package enginetest

import (
	"sort"

	"settlers/internal/domain"
)

// BoardBuilder assembles a small board graph with consistent adjacency.
type BoardBuilder struct {
	board    *domain.Board
	nextHex  domain.HexID
	nextEdge domain.EdgeID
}

// NewBoardBuilder returns an empty builder.
func NewBoardBuilder() *BoardBuilder {
	return &BoardBuilder{
		board: &domain.Board{
			Hexes:    make(map[domain.HexID]*domain.Hex),
			Vertices: make(map[domain.VertexID]*domain.Vertex),
			Edges:    make(map[domain.EdgeID]*domain.Edge),
		},
	}
}

// AddHex adds a hex touching the given vertices, creating any vertex that
// does not exist yet. Returns the new hex id.
func (b *BoardBuilder) AddHex(terrain domain.Terrain, token int, vertices ...domain.VertexID) domain.HexID {
	id := b.nextHex
	b.nextHex++
	hex := &domain.Hex{ID: id, Terrain: terrain, Token: token, Vertices: vertices}
	b.board.Hexes[id] = hex
	for _, vid := range vertices {
		v := b.ensureVertex(vid)
		v.Hexes = append(v.Hexes, id)
	}
	return id
}

// AddEdge connects two vertices, creating them if needed. Returns the new
// edge id.
func (b *BoardBuilder) AddEdge(v1, v2 domain.VertexID) domain.EdgeID {
	id := b.nextEdge
	b.nextEdge++
	edge := &domain.Edge{ID: id, Vertices: [2]domain.VertexID{v1, v2}}
	b.board.Edges[id] = edge
	b.ensureVertex(v1).Edges = append(b.board.Vertices[v1].Edges, id)
	b.ensureVertex(v2).Edges = append(b.board.Vertices[v2].Edges, id)
	return id
}

// AddPort attaches a harbor to the given vertices.
func (b *BoardBuilder) AddPort(portType domain.PortType, resource domain.Resource, ratio int, vertices ...domain.VertexID) {
	b.board.Ports = append(b.board.Ports, domain.Port{
		Type: portType, Resource: resource, Ratio: ratio, Vertices: vertices,
	})
}

// Build returns the assembled board.
func (b *BoardBuilder) Build() *domain.Board {
	return b.board
}

func (b *BoardBuilder) ensureVertex(id domain.VertexID) *domain.Vertex {
	if v, ok := b.board.Vertices[id]; ok {
		return v
	}
	v := &domain.Vertex{ID: id}
	b.board.Vertices[id] = v
	return v
}

// StandardTestBoard builds a compact five-hex board with one of each
// producing terrain plus a desert, a ring of nine vertices and connecting
// edges. Tokens are chosen so vertex pip values differ.
//
//	hex 0 forest/8, hex 1 hills/5, hex 2 pasture/10, hex 3 fields/6,
//	hex 4 mountains/9, hex 5 desert
func StandardTestBoard() *domain.Board {
	b := NewBoardBuilder()
	b.AddHex(domain.Forest, 8, 0, 1, 2)
	b.AddHex(domain.Hills, 5, 2, 3, 4)
	b.AddHex(domain.Pasture, 10, 4, 5, 6)
	b.AddHex(domain.Fields, 6, 1, 2, 4)
	b.AddHex(domain.Mountains, 9, 6, 7, 8)
	b.AddHex(domain.Desert, 0, 0, 7, 8)

	b.AddEdge(0, 1)
	b.AddEdge(1, 2)
	b.AddEdge(2, 3)
	b.AddEdge(3, 4)
	b.AddEdge(4, 5)
	b.AddEdge(5, 6)
	b.AddEdge(6, 7)
	b.AddEdge(7, 8)
	b.AddEdge(8, 0)
	b.AddEdge(2, 4)
	b.AddPort(domain.PortGeneric, "", 3, 0, 1)
	b.AddPort(domain.PortType(domain.Wood), domain.Wood, 2, 5, 6)
	return b.Build()
}

// SimulationBoard builds a 12-hex ring over 24 perimeter vertices, large
// enough for four players' setup placements under the distance rule. Hex 6
// is the desert and starts with the robber.
func SimulationBoard() *domain.Board {
	b := NewBoardBuilder()
	terrains := []domain.Terrain{domain.Forest, domain.Hills, domain.Pasture, domain.Fields, domain.Mountains}
	tokens := []int{5, 6, 8, 9, 4, 10, 0, 11, 5, 9, 6, 8}

	const hexCount = 12
	for i := 0; i < hexCount; i++ {
		terrain := terrains[i%len(terrains)]
		if i == 6 {
			terrain = domain.Desert
		}
		v0 := domain.VertexID(2 * i)
		v1 := domain.VertexID(2*i + 1)
		v2 := domain.VertexID((2*i + 2) % 24)
		id := b.AddHex(terrain, tokens[i], v0, v1, v2)
		if i == 6 {
			b.board.Hexes[id].Robber = true
		}
	}
	for i := 0; i < 24; i++ {
		b.AddEdge(domain.VertexID(i), domain.VertexID((i+1)%24))
	}
	b.AddPort(domain.PortGeneric, "", 3, 0, 1)
	b.AddPort(domain.PortType(domain.Ore), domain.Ore, 2, 12, 13)
	return b.Build()
}

// NewPlayer returns a player with full building stock and no resources.
func NewPlayer(id string) *domain.Player {
	return &domain.Player{
		ID:              id,
		Name:            id,
		Resources:       domain.NewResourceSet(),
		SettlementsLeft: 5,
		CitiesLeft:      4,
		RoadsLeft:       15,
	}
}

// NewState assembles a snapshot with the given board, players in seat
// order and the first player holding the turn.
func NewState(board *domain.Board, phase domain.Phase, players ...*domain.Player) *domain.GameState {
	state := &domain.GameState{
		Phase:   phase,
		Turn:    1,
		Players: make(map[string]*domain.Player, len(players)),
		Board:   board,
	}
	for _, p := range players {
		state.Players[p.ID] = p
		state.Order = append(state.Order, p.ID)
	}
	if len(state.Order) > 0 {
		state.CurrentPlayer = state.Order[0]
	}
	return state
}

// CloneState deep-copies a snapshot so engine mutations never alias what
// a caller already holds.
func CloneState(state *domain.GameState) *domain.GameState {
	if state == nil {
		return nil
	}
	out := &domain.GameState{
		Phase:         state.Phase,
		Turn:          state.Turn,
		CurrentPlayer: state.CurrentPlayer,
		Players:       make(map[string]*domain.Player, len(state.Players)),
		Order:         append([]string(nil), state.Order...),
	}
	for id, p := range state.Players {
		cp := *p
		cp.Resources = p.Resources.Clone()
		out.Players[id] = &cp
	}
	if state.Board != nil {
		board := &domain.Board{
			Hexes:    make(map[domain.HexID]*domain.Hex, len(state.Board.Hexes)),
			Vertices: make(map[domain.VertexID]*domain.Vertex, len(state.Board.Vertices)),
			Edges:    make(map[domain.EdgeID]*domain.Edge, len(state.Board.Edges)),
			Ports:    append([]domain.Port(nil), state.Board.Ports...),
		}
		for id, h := range state.Board.Hexes {
			ch := *h
			ch.Vertices = append([]domain.VertexID(nil), h.Vertices...)
			board.Hexes[id] = &ch
		}
		for id, v := range state.Board.Vertices {
			cv := *v
			cv.Hexes = append([]domain.HexID(nil), v.Hexes...)
			cv.Edges = append([]domain.EdgeID(nil), v.Edges...)
			board.Vertices[id] = &cv
		}
		for id, e := range state.Board.Edges {
			ce := *e
			board.Edges[id] = &ce
		}
		out.Board = board
	}
	return out
}

func sortedVertexIDs(board *domain.Board) []domain.VertexID {
	ids := make([]domain.VertexID, 0, len(board.Vertices))
	for id := range board.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedEdgeIDs(board *domain.Board) []domain.EdgeID {
	ids := make([]domain.EdgeID, 0, len(board.Edges))
	for id := range board.Edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
