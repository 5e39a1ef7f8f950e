package domain

// HexID, VertexID and EdgeID index the three layers of the board graph.
// The rules engine owns id assignment; the planner only dereferences them.
type (
	HexID    int
	VertexID int
	EdgeID   int
)

const (
	// NoHex marks an unset hex reference.
	NoHex HexID = -1
	// NoVertex marks an unset vertex reference.
	NoVertex VertexID = -1
	// NoEdge marks an unset edge reference.
	NoEdge EdgeID = -1
)

// Terrain identifies the hex tile type.
type Terrain string

const (
	Forest    Terrain = "forest"
	Hills     Terrain = "hills"
	Pasture   Terrain = "pasture"
	Fields    Terrain = "fields"
	Mountains Terrain = "mountains"
	Desert    Terrain = "desert"
	Sea       Terrain = "sea"
)

// TerrainResource returns the resource a terrain produces, if any.
func TerrainResource(t Terrain) (Resource, bool) {
	switch t {
	case Forest:
		return Wood, true
	case Hills:
		return Brick, true
	case Pasture:
		return Sheep, true
	case Fields:
		return Wheat, true
	case Mountains:
		return Ore, true
	default:
		return "", false
	}
}

// PipValue returns the probability weight of a number token.
// 6 and 8 score highest (5 pips), 2 and 12 lowest (1 pip).
func PipValue(token int) int {
	switch token {
	case 6, 8:
		return 5
	case 5, 9:
		return 4
	case 4, 10:
		return 3
	case 3, 11:
		return 2
	case 2, 12:
		return 1
	default:
		return 0
	}
}

// BuildingType marks what occupies a vertex.
type BuildingType string

const (
	NoBuilding BuildingType = ""
	Settlement BuildingType = "settlement"
	City       BuildingType = "city"
)

// Hex is one terrain tile with its number token and adjacency.
type Hex struct {
	ID       HexID
	Terrain  Terrain
	Token    int
	Robber   bool
	Vertices []VertexID
}

// Vertex is a board intersection where settlements and cities sit.
type Vertex struct {
	ID       VertexID
	Building BuildingType
	Owner    string
	Hexes    []HexID
	Edges    []EdgeID
}

// Edge connects two vertices and can carry one road.
type Edge struct {
	ID       EdgeID
	Owner    string
	HasRoad  bool
	Vertices [2]VertexID
}

// PortType identifies a harbor's trade ratio class.
type PortType string

const (
	// PortGeneric trades any resource 3:1.
	PortGeneric PortType = "generic"
	// Resource-specific ports trade their resource 2:1 and reuse the
	// resource name as the port type.
)

// Port is a harbor granting improved bank-trade ratios to adjacent owners.
type Port struct {
	Type     PortType
	Resource Resource // set for 2:1 ports, empty for generic
	Ratio    int
	Vertices []VertexID
}

// Board is the read-only graph snapshot supplied by the rules engine.
type Board struct {
	Hexes    map[HexID]*Hex
	Vertices map[VertexID]*Vertex
	Edges    map[EdgeID]*Edge
	Ports    []Port
}

// Vertex returns the vertex for id, or nil when absent from the snapshot.
func (b *Board) Vertex(id VertexID) *Vertex {
	if b == nil {
		return nil
	}
	return b.Vertices[id]
}

// Edge returns the edge for id, or nil when absent from the snapshot.
func (b *Board) Edge(id EdgeID) *Edge {
	if b == nil {
		return nil
	}
	return b.Edges[id]
}

// Hex returns the hex for id, or nil when absent from the snapshot.
func (b *Board) Hex(id HexID) *Hex {
	if b == nil {
		return nil
	}
	return b.Hexes[id]
}

// RobberHex returns the hex currently carrying the robber, or NoHex.
func (b *Board) RobberHex() HexID {
	if b == nil {
		return NoHex
	}
	for _, h := range b.Hexes {
		if h.Robber {
			return h.ID
		}
	}
	return NoHex
}

// VertexPips sums the pip production value of all producing hexes
// adjacent to a vertex. The robber does not discount here; blocking is a
// transient condition the strategies weigh separately.
func (b *Board) VertexPips(id VertexID) int {
	v := b.Vertex(id)
	if v == nil {
		return 0
	}
	pips := 0
	for _, hid := range v.Hexes {
		h := b.Hex(hid)
		if h == nil {
			continue
		}
		if _, produces := TerrainResource(h.Terrain); !produces {
			continue
		}
		pips += PipValue(h.Token)
	}
	return pips
}

// VertexResources returns the distinct resources produced around a vertex.
func (b *Board) VertexResources(id VertexID) []Resource {
	v := b.Vertex(id)
	if v == nil {
		return nil
	}
	seen := make(map[Resource]bool, 3)
	var out []Resource
	for _, hid := range v.Hexes {
		h := b.Hex(hid)
		if h == nil {
			continue
		}
		r, produces := TerrainResource(h.Terrain)
		if !produces || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// HexOwners returns the distinct owners of buildings on a hex's rim.
func (b *Board) HexOwners(id HexID) []string {
	h := b.Hex(id)
	if h == nil {
		return nil
	}
	seen := make(map[string]bool, 4)
	var out []string
	for _, vid := range h.Vertices {
		v := b.Vertex(vid)
		if v == nil || v.Building == NoBuilding || seen[v.Owner] {
			continue
		}
		seen[v.Owner] = true
		out = append(out, v.Owner)
	}
	return out
}

// ProductionCount returns how many producing hexes on the board yield the
// given resource. Used to gauge board-wide scarcity.
func (b *Board) ProductionCount(r Resource) int {
	if b == nil {
		return 0
	}
	count := 0
	for _, h := range b.Hexes {
		if res, produces := TerrainResource(h.Terrain); produces && res == r {
			count++
		}
	}
	return count
}
