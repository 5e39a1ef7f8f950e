package goals

// UrgencyBand scales expansion-goal priorities once the game passes a
// turn threshold, biasing the planner toward ending long games.
type UrgencyBand struct {
	AfterTurn  int     `yaml:"after_turn"`
	Multiplier float64 `yaml:"multiplier"`
}

// Tuning collects the goal manager's priority bases and boosts so they
// can be tuned without code changes.
type Tuning struct {
	VictoryStepBase     float64       `yaml:"victory_step_base"`     // priority of the first fastest-path step
	VictoryStepDecay    float64       `yaml:"victory_step_decay"`    // priority lost per step rank
	BottleneckPriority  float64       `yaml:"bottleneck_priority"`   // acquire goals from bottleneck reports
	ExpansionBase       float64       `yaml:"expansion_base"`        // settlement expansion goals
	CityUpgradeBase     float64       `yaml:"city_upgrade_base"`     // settlement-to-city goals
	StrategicRoadBase   float64       `yaml:"strategic_road_base"`   // roads opening new settlement spots
	MaxExpansionGoals   int           `yaml:"max_expansion_goals"`   // cap on expansion goals per cycle
	VictoryBoost        float64       `yaml:"victory_boost"`         // added to victory goals at score >= 8
	NearCompletionBoost float64       `yaml:"near_completion_boost"` // added within 2 resources of completion
	NearCompletionBand  int           `yaml:"near_completion_band"`
	UrgencyBands        []UrgencyBand `yaml:"urgency_bands"`
}

// DefaultTuning is the tuned baseline used when no override is loaded.
var DefaultTuning = Tuning{
	VictoryStepBase:     90,
	VictoryStepDecay:    5,
	BottleneckPriority:  70,
	ExpansionBase:       55,
	CityUpgradeBase:     60,
	StrategicRoadBase:   40,
	MaxExpansionGoals:   3,
	VictoryBoost:        15,
	NearCompletionBoost: 10,
	NearCompletionBand:  2,
	UrgencyBands: []UrgencyBand{
		{AfterTurn: 20, Multiplier: 1.2},
		{AfterTurn: 40, Multiplier: 1.5},
		{AfterTurn: 60, Multiplier: 1.8},
		{AfterTurn: 80, Multiplier: 2.0},
	},
}

// UrgencyFor returns the multiplier for the highest band the turn passed.
func (t Tuning) UrgencyFor(turn int) float64 {
	multiplier := 1.0
	for _, band := range t.UrgencyBands {
		if turn > band.AfterTurn && band.Multiplier > multiplier {
			multiplier = band.Multiplier
		}
	}
	return multiplier
}
