package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"settlers/internal/bot"
	"settlers/internal/bot/trace"
	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func newAnalyzeCommand() *cobra.Command {
	var statePath string
	var playerID string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show the goals and next action a bot derives from a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(statePath)
			if err != nil {
				return err
			}
			if playerID == "" {
				playerID = state.CurrentPlayer
			}
			if state.Player(playerID) == nil {
				return fmt.Errorf("player %q not in snapshot", playerID)
			}

			tuning, err := loadTuning()
			if err != nil {
				return err
			}

			opts := []bot.Option{bot.WithTuning(tuning)}
			if verbose {
				if logger, lerr := zap.NewDevelopment(); lerr == nil {
					opts = append(opts, bot.WithTracer(trace.NewZap(logger.Named("analyze"))))
				}
			}

			engine := enginetest.New(enginetest.CloneState(state))
			b := bot.New(engine, bot.Config{PlayerID: playerID}, opts...)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "player %s, turn %d, phase %s\n\n", playerID, state.Turn, state.Phase)

			b.Goals().UpdateGoals(state)
			goals := b.Goals().ActiveGoals()
			if len(goals) == 0 {
				fmt.Fprintln(out, "no active goals")
			}
			for _, g := range goals {
				fmt.Fprintf(out, "%6.1f  %-14s %s\n", g.Priority, g.Kind, g.Description)
			}

			fmt.Fprintln(out)
			if action := b.NextAction(state); action != nil {
				fmt.Fprintf(out, "next action: %s\n", describeAction(action))
			} else {
				fmt.Fprintln(out, "next action: none, the turn would end")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "path to a JSON game state snapshot")
	cmd.Flags().StringVar(&playerID, "player", "", "player id to analyze (defaults to the current player)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "emit the decision trace")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func loadState(path string) (*domain.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	var state domain.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

func describeAction(a *domain.GameAction) string {
	switch a.Type {
	case domain.ActionBuild:
		if a.Build == domain.BuildRoad {
			return fmt.Sprintf("build road on edge %d", a.Edge)
		}
		return fmt.Sprintf("build %s on vertex %d", a.Build, a.Vertex)
	case domain.ActionBuyDevCard:
		return "buy a development card"
	case domain.ActionMoveRobber:
		return fmt.Sprintf("move robber to hex %d", a.Hex)
	case domain.ActionSteal:
		return "steal from " + a.Target
	case domain.ActionDiscard:
		return fmt.Sprintf("discard %d cards", a.Discard.Total())
	case domain.ActionTradeBank:
		return fmt.Sprintf("trade %d to the bank for %d", a.Give.Total(), a.Get.Total())
	case domain.ActionTradeOffer:
		return fmt.Sprintf("offer %s a trade (%d for %d)", a.Target, a.Give.Total(), a.Get.Total())
	default:
		return string(a.Type)
	}
}
