package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"settlers/internal/bot"
	"settlers/internal/domain"
	"settlers/internal/enginetest"
)

func newSimulateCommand() *cobra.Command {
	var players int
	var maxTurns int
	var seed int64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a full bot-vs-bot game on the built-in board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if players < 2 || players > 4 {
				return fmt.Errorf("players must be between 2 and 4, got %d", players)
			}
			tuning, err := loadTuning()
			if err != nil {
				return err
			}

			var seats []*domain.Player
			for i := 0; i < players; i++ {
				seats = append(seats, enginetest.NewPlayer(bot.IdentityFor(i).UserID))
			}
			state := enginetest.NewState(enginetest.SimulationBoard(), domain.PhaseSetup1, seats...)

			engine := enginetest.New(state)
			engine.EnableDice(rand.New(rand.NewSource(seed)))

			agents := make(map[string]*bot.Bot, players)
			for _, p := range seats {
				agents[p.ID] = bot.New(engine, bot.Config{PlayerID: p.ID}, bot.WithTuning(tuning))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "simulating %d bots, seed %d\n", players, seed)

			// Overall cap so a wedged game can never spin forever.
			for iter := 0; iter < maxTurns*players*4; iter++ {
				if cmd.Context().Err() != nil {
					return cmd.Context().Err()
				}

				snap := engine.Snapshot()
				if snap.Phase == domain.PhaseEnded {
					break
				}
				if snap.Turn > maxTurns {
					fmt.Fprintf(out, "stopping after %d turns without a winner\n", maxTurns)
					break
				}

				current := snap.CurrentPlayer
				result := agents[current].ExecuteTurn(cmd.Context())
				if result.Error != "" {
					fmt.Fprintf(out, "turn %d %s: %s\n", snap.Turn, current, result.Error)
				}
				// A turn that moved nothing forward would repeat itself;
				// force the turn over and keep the game honest.
				if result.Error != "" || len(result.ActionsExecuted) == 0 {
					engine.ProcessAction(cmd.Context(), snap, domain.EndTurn(current))
				}
			}

			final := engine.Snapshot()
			fmt.Fprintf(out, "\nfinal phase %s after %d turns\n", final.Phase, final.Turn)
			for _, p := range final.PlayersInOrder() {
				fmt.Fprintf(out, "  %-14s %2d points, %d resources, %d dev cards\n",
					p.ID, p.Score, p.Resources.Total(), p.DevCards)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&players, "players", 4, "number of bot players (2-4)")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 200, "stop after this many game turns")
	cmd.Flags().Int64Var(&seed, "seed", 1, "dice seed for reproducible games")
	return cmd
}
