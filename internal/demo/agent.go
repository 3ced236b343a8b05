package demo

import (
	"math"
	"time"

	"github.com/aretw0/hsm"
)

// AgentConfig tunes the guard. Every field can be set from a scenario's params.
type AgentConfig struct {
	Name        string        `mapstructure:"name"`
	MaxStamina  float64       `mapstructure:"max_stamina"`
	RestBelow   float64       `mapstructure:"rest_below"`
	RestRate    float64       `mapstructure:"rest_rate"`  // stamina regained per second
	DrainRate   float64       `mapstructure:"drain_rate"` // stamina spent per unit moved
	PatrolSpeed float64       `mapstructure:"patrol_speed"`
	ChaseBoost  float64       `mapstructure:"chase_boost"`
	SearchSpeed float64       `mapstructure:"search_speed"`
	Route       float64       `mapstructure:"route"` // patrol walks between 0 and Route
	SearchFor   time.Duration `mapstructure:"search_for"`
}

// DefaultAgentConfig returns the tuning used when a scenario omits params.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Name:        "guard",
		MaxStamina:  100,
		RestBelow:   20,
		RestRate:    25,
		DrainRate:   1,
		PatrolSpeed: 2,
		ChaseBoost:  2.5,
		SearchSpeed: 0.5,
		Route:       10,
		SearchFor:   2 * time.Second,
	}
}

// Agent is the owner of the guard machine.
type Agent struct {
	Config AgentConfig

	Position  float64
	Stamina   float64
	Alertness float64

	// Sighting is what the agent currently sees; empty when nothing.
	Sighting string

	// Speed multiplies every movement. Chase and search override it for as long as
	// they are active.
	Speed *hsm.StateValue[float64]

	heading float64
}

// NewAgent creates a rested agent at the start of its route.
func NewAgent(cfg AgentConfig) *Agent {
	return &Agent{
		Config:  cfg,
		Stamina: cfg.MaxStamina,
		Speed:   hsm.NewStateValue(1.0),
		heading: 1,
	}
}

// move walks at base units per second, bouncing between the route ends.
func (a *Agent) move(dt time.Duration, base float64) {
	dist := base * a.Speed.Get() * dt.Seconds()
	a.Position += a.heading * dist
	if a.Config.Route > 0 {
		switch {
		case a.Position >= a.Config.Route:
			a.Position = a.Config.Route
			a.heading = -1
		case a.Position <= 0:
			a.Position = 0
			a.heading = 1
		}
	}
	a.spend(dist * a.Config.DrainRate)
}

func (a *Agent) spend(amount float64) {
	a.Stamina = math.Max(0, a.Stamina-amount)
}

func (a *Agent) regain(dt time.Duration) {
	a.Stamina = math.Min(a.Config.MaxStamina, a.Stamina+a.Config.RestRate*dt.Seconds())
}

func (a *Agent) turn() { a.heading = -a.heading }

func (a *Agent) tired() bool { return a.Stamina <= a.Config.RestBelow }

func (a *Agent) rested() bool { return a.Stamina >= a.Config.MaxStamina }
