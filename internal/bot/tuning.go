package bot

import (
	"settlers/internal/bot/goals"
	"settlers/internal/bot/strategy"
)

// Tuning aggregates every heuristic knob in the planning stack so the
// whole bot can be tuned from one place or one file.
type Tuning struct {
	Goals    goals.Tuning     `yaml:"goals"`
	Strategy strategy.Weights `yaml:"strategy"`

	// MaxIterations bounds the turn loop; it guarantees termination even
	// under strategy bugs.
	MaxIterations int `yaml:"max_iterations"`
}

// DefaultTuning is the tuned baseline assembled from the component
// defaults.
var DefaultTuning = Tuning{
	Goals:         goals.DefaultTuning,
	Strategy:      strategy.DefaultWeights,
	MaxIterations: 10,
}
