package demo

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aretw0/hsm"
)

// Trigger fires an event whenever When holds after a tick.
// When is an expr-lang expression over the variables of TriggerEnv.
type Trigger struct {
	When   string  `mapstructure:"when"`
	Once   bool    `mapstructure:"once"`
	Kind   string  `mapstructure:"kind"`
	Target string  `mapstructure:"target"`
	Level  float64 `mapstructure:"level"`
}

func (t Trigger) event(tick int) Event {
	return Event{Tick: tick, Kind: t.Kind, Target: t.Target, Level: t.Level}
}

// TriggerEnv is what a trigger condition can read.
type TriggerEnv struct {
	Tick      int     `expr:"tick"`
	Stamina   float64 `expr:"stamina"`
	Alertness float64 `expr:"alertness"`
	Position  float64 `expr:"position"`
	Sighting  string  `expr:"sighting"`
	State     string  `expr:"state"` // innermost active state
	Depth     int     `expr:"depth"`
}

type compiledTrigger struct {
	Trigger
	program *vm.Program
	fired   bool
}

func compileTrigger(t Trigger) (*compiledTrigger, error) {
	program, err := expr.Compile(t.When, expr.Env(TriggerEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: trigger %q: %v", ErrInvalidScenario, t.When, err)
	}
	return &compiledTrigger{Trigger: t, program: program}, nil
}

func compileTriggers(triggers []Trigger) ([]*compiledTrigger, error) {
	out := make([]*compiledTrigger, 0, len(triggers))
	for _, t := range triggers {
		ct, err := compileTrigger(t)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}

func triggerEnv(m *hsm.Machine[*Agent], tick int) TriggerEnv {
	a := m.Owner()
	env := TriggerEnv{
		Tick:      tick,
		Stamina:   a.Stamina,
		Alertness: a.Alertness,
		Position:  a.Position,
		Sighting:  a.Sighting,
		Depth:     m.Len() - 1,
	}
	if stack := m.Stack(); len(stack) > 0 {
		env.State = string(stack[len(stack)-1])
	}
	return env
}

// due returns the trigger's event when its condition holds.
func (ct *compiledTrigger) due(env TriggerEnv) (Event, bool, error) {
	if ct.Once && ct.fired {
		return Event{}, false, nil
	}
	out, err := expr.Run(ct.program, env)
	if err != nil {
		return Event{}, false, fmt.Errorf("trigger %q: %w", ct.When, err)
	}
	if ok, _ := out.(bool); !ok {
		return Event{}, false, nil
	}
	ct.fired = true
	return ct.event(env.Tick + 1), true, nil
}
