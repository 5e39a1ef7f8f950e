package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"settlers/internal/domain"
)

// ExecuteTurn runs one complete turn for this bot: verify ownership, then
// loop deciding and submitting actions until the turn ends. The loop is
// bounded by the configured iteration cap so it terminates even under
// planner bugs. Concurrent calls fail fast with ErrAlreadyProcessing and
// never disturb the in-flight turn.
func (b *Bot) ExecuteTurn(ctx context.Context) (result TurnResult) {
	start := time.Now()
	result = TurnResult{TurnID: uuid.NewString()}

	if !b.processing.CompareAndSwap(false, true) {
		result.Error = ErrAlreadyProcessing.Error()
		result.Stats.DecisionTime = time.Since(start)
		return result
	}
	// The guard must clear on every exit path, including panics below us.
	defer b.processing.Store(false)

	// A panicking strategy surfaces as a failed turn, never to the caller.
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Error = fmt.Sprintf("turn aborted: %v", r)
			result.Stats.ActionsCount = len(result.ActionsExecuted)
			result.Stats.DecisionTime = time.Since(start)
			b.tracer.Event("turn.panic",
				zap.String("turn_id", result.TurnID),
				zap.String("cause", fmt.Sprint(r)))
		}
	}()

	state := b.engine.Snapshot()
	if state == nil || len(state.Players) == 0 {
		result.Error = ErrInvalidGameState.Error()
		result.Stats.DecisionTime = time.Since(start)
		return result
	}
	if state.CurrentPlayer != b.cfg.PlayerID {
		result.Error = ErrNotPlayerTurn.Error()
		result.FinalPhase = state.Phase
		result.Stats.DecisionTime = time.Since(start)
		return result
	}

	maxIterations := b.tuning.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultTuning.MaxIterations
	}

	lastPhase := state.Phase
	result.FinalPhase = state.Phase

	for i := 0; i < maxIterations; i++ {
		result.Stats.Iterations = i + 1

		state = b.engine.Snapshot()
		if state == nil {
			result.Error = ErrInvalidGameState.Error()
			break
		}
		result.FinalPhase = state.Phase
		if state.CurrentPlayer != b.cfg.PlayerID {
			// Turn moved on; a clean stop, not an error.
			break
		}
		if state.Phase != lastPhase {
			result.Stats.PhaseTransitions = append(result.Stats.PhaseTransitions, state.Phase)
			lastPhase = state.Phase
		}

		if err := b.think(ctx); err != nil {
			result.Error = err.Error()
			break
		}

		action := b.NextAction(state)
		if action == nil {
			// No strategy produced an action; the turn ends cleanly.
			break
		}

		res := b.engine.ProcessAction(ctx, state, *action)
		if !res.Success {
			result.Error = fmt.Sprintf("action %s rejected: %s", action.Type, res.Err)
			b.tracer.Event("turn.rejected", zap.String("action", string(action.Type)), zap.String("err", res.Err))
			break
		}
		result.ActionsExecuted = append(result.ActionsExecuted, *action)
		b.tracer.Event("turn.action", zap.String("action", string(action.Type)), zap.Int("iteration", i+1))

		if action.Type == domain.ActionEndTurn {
			if res.NewState != nil {
				result.FinalPhase = res.NewState.Phase
			}
			break
		}
	}

	result.Success = result.Error == ""
	result.Stats.ActionsCount = len(result.ActionsExecuted)
	result.Stats.DecisionTime = time.Since(start)

	b.tracer.Event("turn.done",
		zap.String("turn_id", result.TurnID),
		zap.Bool("success", result.Success),
		zap.Int("actions", result.Stats.ActionsCount),
		zap.String("final_phase", string(result.FinalPhase)),
		zap.String("error", result.Error))
	return result
}

// think applies the cosmetic pacing delay, honoring cancellation. A zero
// delay returns immediately.
func (b *Bot) think(ctx context.Context) error {
	if b.cfg.ThinkingTime <= 0 {
		return nil
	}
	timer := time.NewTimer(b.cfg.ThinkingTime)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
