// Package bot implements the goal-directed turn executor for an
// AI-controlled player. A Bot wraps the external rules engine, maintains
// its own goal set, and drives one complete turn per ExecuteTurn call by
// repeatedly asking "what next?" and submitting candidate actions.
package bot

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"settlers/internal/bot/goals"
	"settlers/internal/bot/strategy"
	"settlers/internal/bot/trace"
	"settlers/internal/domain"
	"settlers/internal/ports"
)

// Config is the immutable per-bot configuration.
type Config struct {
	PlayerID      string
	ThinkingTime  time.Duration // cosmetic pacing delay between actions
	EnableLogging bool
}

// TurnStats carries timing and loop statistics for one executed turn.
type TurnStats struct {
	DecisionTime     time.Duration
	ActionsCount     int
	Iterations       int
	PhaseTransitions []domain.Phase
}

// TurnResult is the externally observable outcome of one ExecuteTurn
// call. ExecuteTurn never panics or returns an error directly; every
// failure path lands in Error.
type TurnResult struct {
	TurnID          string
	Success         bool
	ActionsExecuted []domain.GameAction
	FinalPhase      domain.Phase
	Error           string
	Stats           TurnStats
}

// Bot is one autonomous player. A Bot owns only its goal arena and its
// re-entrancy flag; all board and player data stays with the engine.
type Bot struct {
	engine  ports.GameEngine
	cfg     Config
	tuning  Tuning
	tracer  trace.Tracer
	goals   *goals.Manager
	planner *Planner

	processing atomic.Bool
}

// Option customizes a Bot at construction.
type Option func(*Bot)

// WithTracer injects a decision trace sink.
func WithTracer(t trace.Tracer) Option {
	return func(b *Bot) {
		if t != nil {
			b.tracer = t
		}
	}
}

// WithTuning overrides the default heuristic tuning.
func WithTuning(t Tuning) Option {
	return func(b *Bot) { b.tuning = t }
}

// New builds a bot bound to an engine and a player id.
func New(engine ports.GameEngine, cfg Config, opts ...Option) *Bot {
	b := &Bot{
		engine: engine,
		cfg:    cfg,
		tuning: DefaultTuning,
		tracer: trace.Nop(),
	}
	if cfg.EnableLogging {
		if log, err := zap.NewDevelopment(); err == nil {
			b.tracer = trace.NewZap(log.Named("bot." + cfg.PlayerID))
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	b.goals = goals.NewManager(cfg.PlayerID, engine, b.tuning.Goals, b.tracer)
	b.planner = NewPlanner(cfg.PlayerID, b.goals, b.tracer)
	return b
}

// PlayerID returns the configured player id.
func (b *Bot) PlayerID() string {
	return b.cfg.PlayerID
}

// Goals exposes the goal manager for analysis tooling.
func (b *Bot) Goals() *goals.Manager {
	return b.goals
}

// SetupDecision is the strategy-isolated test hook for the setup phases:
// it returns the placement the bot would make without running the loop.
func (b *Bot) SetupDecision(state *domain.GameState, phase domain.Phase) *domain.GameAction {
	if phase != domain.PhaseSetup1 && phase != domain.PhaseSetup2 {
		return nil
	}
	return b.setupAction(state, phase)
}

// ActionDecision is the strategy-isolated test hook for the main action
// phase: one goal/plan pipeline pass, no engine submission.
func (b *Bot) ActionDecision(state *domain.GameState) *domain.GameAction {
	if state == nil || len(state.Players) == 0 {
		return nil
	}
	return b.goalAction(state)
}

// EvaluateTradeOffer scores an incoming trade proposal against the bot's
// current needs and goal, for the orchestrator to resolve negotiations.
func (b *Bot) EvaluateTradeOffer(state *domain.GameState, offer strategy.TradeOffer) (accept bool, priority float64, reason string) {
	var goalCost domain.ResourceSet
	if g := b.goals.ImmediateGoal(state); g != nil {
		goalCost = g.Requirements.Resources
	}
	return strategy.EvaluateIncomingOffer(state, b.cfg.PlayerID, offer, goalCost, b.tuning.Strategy.Trade)
}
