package demo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/hsm/pkg/domain"
)

// ErrInvalidScenario is returned when a scenario fails validation.
var ErrInvalidScenario = errors.New("invalid scenario")

// Event kinds understood by the simulation.
const (
	EventSight = "sight" // the agent sees Target
	EventLose  = "lose"  // the agent loses sight of everything
	EventNoise = "noise" // a noise of Level is broadcast to the active states
	EventTire  = "tire"  // the agent loses Level stamina
)

// Event happens right before the tick with the same index.
type Event struct {
	Tick   int     `mapstructure:"tick"`
	Kind   string  `mapstructure:"kind"`
	Target string  `mapstructure:"target"`
	Level  float64 `mapstructure:"level"`
}

// Scenario describes one simulation run.
type Scenario struct {
	Name      string        `mapstructure:"name"`
	Ticks     int           `mapstructure:"ticks"`
	Step      time.Duration `mapstructure:"step"`
	Verbosity string        `mapstructure:"verbosity"`
	Params    AgentConfig   `mapstructure:"params"`
	Events    []Event       `mapstructure:"events"`
	Triggers  []Trigger     `mapstructure:"triggers"`
}

// DefaultScenario returns the built-in scenario used when no file is given.
func DefaultScenario() Scenario {
	return Scenario{
		Name:      "night-watch",
		Ticks:     200,
		Step:      50 * time.Millisecond,
		Verbosity: "none",
		Params:    DefaultAgentConfig(),
		Events: []Event{
			{Tick: 20, Kind: EventSight, Target: "intruder"},
			{Tick: 60, Kind: EventLose},
			{Tick: 70, Kind: EventNoise, Level: 0.8},
			{Tick: 110, Kind: EventTire, Level: 90},
			{Tick: 150, Kind: EventSight, Target: "fox"},
			{Tick: 170, Kind: EventSight, Target: "intruder"},
			{Tick: 180, Kind: EventLose},
		},
		Triggers: []Trigger{
			{When: `state == "search" && alertness > 0.5`, Once: true, Kind: EventNoise, Level: 0.3},
		},
	}
}

// LoadScenario reads a scenario from a YAML (.yaml, .yml) or JSON (.json) file.
// Fields missing from the file keep the values of DefaultScenario, except events and triggers.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}

	raw := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q", ext)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return DecodeScenario(raw)
}

// DecodeScenario builds a scenario from already parsed data.
func DecodeScenario(raw map[string]any) (Scenario, error) {
	sc := DefaultScenario()
	sc.Events = nil
	sc.Triggers = nil

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &sc,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Scenario{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that the scenario can be simulated.
func (sc Scenario) Validate() error {
	if sc.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, sc.Ticks)
	}
	if sc.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %s", ErrInvalidScenario, sc.Step)
	}
	if _, err := domain.ParseVerbosity(sc.Verbosity); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	for i, e := range sc.Events {
		if e.Tick < 0 {
			return fmt.Errorf("%w: event %d has negative tick", ErrInvalidScenario, i)
		}
		if err := validateKind(fmt.Sprintf("event %d", i), e.Kind, e.Target); err != nil {
			return err
		}
	}
	for i, t := range sc.Triggers {
		if err := validateKind(fmt.Sprintf("trigger %d", i), t.Kind, t.Target); err != nil {
			return err
		}
		if _, err := compileTrigger(t); err != nil {
			return err
		}
	}
	return nil
}

func validateKind(what, kind, target string) error {
	switch kind {
	case EventSight:
		if target == "" {
			return fmt.Errorf("%w: %s (sight) needs a target", ErrInvalidScenario, what)
		}
	case EventLose, EventNoise, EventTire:
	default:
		return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidScenario, what, kind)
	}
	return nil
}
