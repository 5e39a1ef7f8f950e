package main

import (
	"github.com/spf13/cobra"

	"settlers/internal/bot"
	"settlers/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

var tuningPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "botsim",
		Short:         "Offline analysis and self-play harness for the settlers bot",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&tuningPath, "tuning", "", "path to a YAML tuning file (defaults to built-in tuning)")

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newSimulateCommand())
	return root
}

// loadTuning resolves the tuning for a run: the --tuning file when given,
// the built-in defaults otherwise.
func loadTuning() (bot.Tuning, error) {
	if tuningPath == "" {
		return bot.DefaultTuning, nil
	}
	return config.LoadTuningFile(tuningPath)
}
