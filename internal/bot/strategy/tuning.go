// Package strategy holds the phase-specific heuristic modules: setup
// placement, discard selection, robber movement, steal targeting and
// trade negotiation. Every module takes a read-only snapshot plus player
// id and returns a ranked decision with a human-readable rationale.
package strategy

import "settlers/internal/domain"

// SetupWeights tune initial placement scoring. Pip and scarcity weights
// are blended per placement round; road weights blend number value against
// resource diversity at the reachable vertex.
type SetupWeights struct {
	FirstPipWeight       float64 `yaml:"first_pip_weight"`
	FirstScarcityWeight  float64 `yaml:"first_scarcity_weight"`
	SecondPipWeight      float64 `yaml:"second_pip_weight"`
	SecondScarcityWeight float64 `yaml:"second_scarcity_weight"`
	RoadNumberWeight     float64 `yaml:"road_number_weight"`
	RoadDiversityWeight  float64 `yaml:"road_diversity_weight"`
}

// RobberWeights tune robber hex scoring.
type RobberWeights struct {
	TopTwoBonus float64 `yaml:"top_two_bonus"` // per top-2 ranked opponent on the hex
	CrowdBonus  float64 `yaml:"crowd_bonus"`   // per opponent beyond the first
}

// StealWeights tune steal-target scoring.
type StealWeights struct {
	TopTwoBonus      float64 `yaml:"top_two_bonus"`
	ResourceFactor   float64 `yaml:"resource_factor"`
	ResourceCap      float64 `yaml:"resource_cap"`
	LikelihoodFactor float64 `yaml:"likelihood_factor"`
}

// TradeWeights tune counterparty selection and offer evaluation.
type TradeWeights struct {
	QuantityFactor   float64 `yaml:"quantity_factor"`
	HealthyRangeLow  int     `yaml:"healthy_range_low"`
	HealthyRangeHigh int     `yaml:"healthy_range_high"`
	HealthyBonus     float64 `yaml:"healthy_bonus"`
	AcceptFactor     float64 `yaml:"accept_factor"` // priority per unit of needed resource offered
}

// DiscardPriorities maps each resource to a keep priority for one
// victory-path phase; lower priority resources are discarded first.
type DiscardPriorities map[domain.Resource]int

// Weights aggregates all heuristic strategy tuning.
type Weights struct {
	Setup   SetupWeights                               `yaml:"setup"`
	Robber  RobberWeights                              `yaml:"robber"`
	Steal   StealWeights                               `yaml:"steal"`
	Trade   TradeWeights                               `yaml:"trade"`
	Discard map[domain.ProgressPhase]DiscardPriorities `yaml:"discard"`
}

// DefaultWeights balances early expansion against late-game acceleration.
// The discard tables shift protection from settlement inputs toward city
// inputs as the victory path progresses.
var DefaultWeights = Weights{
	Setup: SetupWeights{
		FirstPipWeight:       0.7,
		FirstScarcityWeight:  0.3,
		SecondPipWeight:      0.6,
		SecondScarcityWeight: 0.4,
		RoadNumberWeight:     0.5,
		RoadDiversityWeight:  0.5,
	},
	Robber: RobberWeights{
		TopTwoBonus: 3,
		CrowdBonus:  2,
	},
	Steal: StealWeights{
		TopTwoBonus:      5,
		ResourceFactor:   0.5,
		ResourceCap:      3,
		LikelihoodFactor: 2,
	},
	Trade: TradeWeights{
		QuantityFactor:   3,
		HealthyRangeLow:  6,
		HealthyRangeHigh: 12,
		HealthyBonus:     2,
		AcceptFactor:     10,
	},
	Discard: map[domain.ProgressPhase]DiscardPriorities{
		domain.ProgressFoundation: {
			domain.Wood: 4, domain.Brick: 4, domain.Wheat: 3, domain.Sheep: 2, domain.Ore: 1,
		},
		domain.ProgressExpansion: {
			domain.Wood: 4, domain.Brick: 4, domain.Wheat: 3, domain.Sheep: 3, domain.Ore: 2,
		},
		domain.ProgressAcceleration: {
			domain.Wheat: 5, domain.Ore: 5, domain.Sheep: 2, domain.Wood: 1, domain.Brick: 1,
		},
		domain.ProgressVictory: {
			domain.Wheat: 5, domain.Ore: 5, domain.Sheep: 3, domain.Wood: 2, domain.Brick: 2,
		},
	},
}

// DiscardTable returns the keep-priority table for a phase, falling back
// to the expansion table when a phase has no entry.
func (w Weights) DiscardTable(phase domain.ProgressPhase) DiscardPriorities {
	if t, ok := w.Discard[phase]; ok {
		return t
	}
	return w.Discard[domain.ProgressExpansion]
}
