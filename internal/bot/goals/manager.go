package goals

import (
	"sort"

	"go.uber.org/zap"

	"settlers/internal/bot/trace"
	"settlers/internal/domain"
	"settlers/internal/ports"
)

// Manager owns the keyed goal arena for one bot. It is not goroutine safe;
// one manager belongs to one turn executor.
//
// UpdateGoals must be called once per planning cycle before reading goals
// for that cycle's state.
type Manager struct {
	playerID string
	engine   ports.GameEngine
	tuning   Tuning
	tracer   trace.Tracer

	goals     map[string]*Goal
	completed []*Goal
}

// NewManager builds an empty goal arena for the given player.
func NewManager(playerID string, engine ports.GameEngine, tuning Tuning, tracer trace.Tracer) *Manager {
	if tracer == nil {
		tracer = trace.Nop()
	}
	return &Manager{
		playerID: playerID,
		engine:   engine,
		tuning:   tuning,
		tracer:   tracer,
		goals:    make(map[string]*Goal),
	}
}

// UpdateGoals runs one full planning cycle: review existing goals for
// completion and feasibility, generate new ones, re-prioritize, prune.
func (m *Manager) UpdateGoals(state *domain.GameState) {
	if !validState(state) {
		m.tracer.Event("goals.skip", zap.String("reason", "invalid state"))
		return
	}
	player := state.Player(m.playerID)
	if player == nil {
		m.tracer.Event("goals.skip", zap.String("reason", "player not in state"))
		return
	}

	m.review(state, player)
	m.generate(state, player)
	m.prioritize(state, player)

	m.tracer.Event("goals.updated",
		zap.Int("active", len(m.goals)),
		zap.Int("completed", len(m.completed)),
		zap.Int("turn", state.Turn))
}

// TopGoal returns the highest-priority active goal, or nil.
func (m *Manager) TopGoal() *Goal {
	var top *Goal
	for _, g := range m.goals {
		if top == nil || g.Priority > top.Priority || (g.Priority == top.Priority && g.ID < top.ID) {
			top = g
		}
	}
	return top
}

// ImmediateGoal returns the top goal for a valid state, or nil when the
// state is unusable. It never panics on corrupt input.
func (m *Manager) ImmediateGoal(state *domain.GameState) *Goal {
	if !validState(state) {
		return nil
	}
	return m.TopGoal()
}

// ActiveGoals returns the active set sorted by descending priority, ties
// broken by id for determinism.
func (m *Manager) ActiveGoals() []*Goal {
	out := make([]*Goal, 0, len(m.goals))
	for _, g := range m.goals {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CompletedGoals returns goals that finished, oldest first.
func (m *Manager) CompletedGoals() []*Goal {
	return m.completed
}

// insert adds a goal unless one with the same id is already active. It
// returns the goal occupying the id after the call.
func (m *Manager) insert(g *Goal) *Goal {
	if existing, ok := m.goals[g.ID]; ok {
		// Refresh the base priority so stale goals track current scoring.
		existing.BasePriority = g.BasePriority
		existing.Value = g.Value
		return existing
	}
	m.goals[g.ID] = g
	m.tracer.Event("goals.created",
		zap.String("id", g.ID),
		zap.String("kind", string(g.Kind)),
		zap.Float64("priority", g.BasePriority))
	return g
}

// complete transitions a goal out of the active arena.
func (m *Manager) complete(g *Goal) {
	g.Status = StatusCompleted
	delete(m.goals, g.ID)
	m.completed = append(m.completed, g)
	m.tracer.Event("goals.completed", zap.String("id", g.ID))
}

// abandon removes an infeasible goal from the arena.
func (m *Manager) abandon(g *Goal, reason string) {
	g.Status = StatusAbandoned
	delete(m.goals, g.ID)
	m.tracer.Event("goals.abandoned", zap.String("id", g.ID), zap.String("reason", reason))
}

func validState(state *domain.GameState) bool {
	return state != nil && len(state.Players) > 0
}
