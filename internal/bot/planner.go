package bot

import (
	"fmt"

	"go.uber.org/zap"

	"settlers/internal/bot/goals"
	"settlers/internal/bot/trace"
	"settlers/internal/domain"
)

// PlannedAction is one candidate action with its rationale.
type PlannedAction struct {
	Action   domain.GameAction
	Priority float64
	Reason   string
	GoalID   string
}

// TurnPlan is the transient output of one planning cycle. It is recomputed
// from scratch every cycle and never persisted.
type TurnPlan struct {
	Goal             *goals.Goal
	Actions          []PlannedAction
	FallbackActions  []PlannedAction
	ResourceStrategy ResourceStrategy
	Reasoning        []string
}

// Planner composes turn plans from the goal manager's top goal and the
// save-or-spend decision.
type Planner struct {
	playerID string
	goals    *goals.Manager
	tracer   trace.Tracer
}

// NewPlanner wires a planner to its goal manager.
func NewPlanner(playerID string, manager *goals.Manager, tracer trace.Tracer) *Planner {
	if tracer == nil {
		tracer = trace.Nop()
	}
	return &Planner{playerID: playerID, goals: manager, tracer: tracer}
}

// PlanTurn runs one planning cycle: refresh goals, pick the top goal,
// decide the resource strategy and emit the plan.
//
// An empty Actions list with a spend strategy is a deliberate signal: the
// caller should fall through to ordinary per-phase selection (incremental
// trades and builds) instead of passively ending the turn.
func (p *Planner) PlanTurn(state *domain.GameState, playerID string) *TurnPlan {
	p.goals.UpdateGoals(state)

	plan := &TurnPlan{
		ResourceStrategy: StrategySpend,
		FallbackActions: []PlannedAction{{
			Action:   domain.EndTurn(playerID),
			Priority: 1,
			Reason:   "universal fallback",
		}},
	}

	goal := p.goals.ImmediateGoal(state)
	if goal == nil {
		plan.Reasoning = append(plan.Reasoning, "no active goal; play opportunistically")
		p.traceplan(plan)
		return plan
	}
	plan.Goal = goal
	plan.Reasoning = append(plan.Reasoning, fmt.Sprintf("top goal %s (priority %.0f): %s", goal.ID, goal.Priority, goal.Description))

	player := state.Player(playerID)
	have := domain.CurrentResources(state, playerID)

	if ShouldSaveResources(have, goal) {
		plan.ResourceStrategy = StrategySave
	}

	if goal.CompletableNow(player) {
		if action := goal.CompletingAction(playerID); action != nil {
			plan.Actions = append(plan.Actions, PlannedAction{
				Action:   *action,
				Priority: 100,
				Reason:   fmt.Sprintf("complete goal: %s", goal.Description),
				GoalID:   goal.ID,
			})
			plan.Reasoning = append(plan.Reasoning, "goal completable this turn")
			p.traceplan(plan)
			return plan
		}
	}

	if plan.ResourceStrategy == StrategySave {
		// Affordable but not actionable right now; hold resources and yield.
		plan.Reasoning = append(plan.Reasoning, "saving resources for goal; end turn")
		p.traceplan(plan)
		return plan
	}

	plan.Reasoning = append(plan.Reasoning, fmt.Sprintf("goal short %d resources; spend and trade toward it", goal.ResourceDeficit(have)))
	p.traceplan(plan)
	return plan
}

func (p *Planner) traceplan(plan *TurnPlan) {
	goalID := ""
	if plan.Goal != nil {
		goalID = plan.Goal.ID
	}
	p.tracer.Event("planner.plan",
		zap.String("goal", goalID),
		zap.String("strategy", string(plan.ResourceStrategy)),
		zap.Int("actions", len(plan.Actions)),
		zap.Strings("reasoning", plan.Reasoning))
}
