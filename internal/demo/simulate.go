package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
	"github.com/aretw0/hsm/pkg/runner"
)

// Frame is the agent's situation after one tick.
type Frame struct {
	Tick      int
	Elapsed   time.Duration
	Stack     []domain.StateID
	Status    string
	Stamina   float64
	Alertness float64
	Speed     float64
	Pursuits  int
}

// Result is the outcome of a simulation.
type Result struct {
	Scenario string
	Agent    *Agent
	Frames   []Frame
	// Fired lists the events raised by triggers, stamped with the tick they preceded.
	Fired []Event
}

// Last returns the final frame, or the zero Frame when nothing ran.
func (r *Result) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// SimOption configures Simulate.
type SimOption func(*simConfig)

type simConfig struct {
	machine []hsm.Option
	runner  []runner.Option
	onFrame func(Frame)
	onStart func(*hsm.Machine[*Agent])
}

// WithMachineOptions adds options for the guard machine. They apply after the
// scenario's own verbosity.
func WithMachineOptions(opts ...hsm.Option) SimOption {
	return func(c *simConfig) { c.machine = append(c.machine, opts...) }
}

// WithRunnerOptions adds options for the frame loop. Step and tick count come from the scenario.
func WithRunnerOptions(opts ...runner.Option) SimOption {
	return func(c *simConfig) { c.runner = append(c.runner, opts...) }
}

// WithFrameHook calls fn after every tick.
func WithFrameHook(fn func(Frame)) SimOption {
	return func(c *simConfig) { c.onFrame = fn }
}

// WithMachineHook calls fn with the machine before the first tick.
func WithMachineHook(fn func(*hsm.Machine[*Agent])) SimOption {
	return func(c *simConfig) { c.onStart = fn }
}

// Simulate runs sc to completion or until ctx is done. The machine is stopped when
// the run ends, so the final stack is only visible in the last frame.
func Simulate(ctx context.Context, sc Scenario, opts ...SimOption) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	verbosity, err := domain.ParseVerbosity(sc.Verbosity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	var cfg simConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	agent := NewAgent(sc.Params)
	machineOpts := append([]hsm.Option{
		hsm.WithName(sc.Params.Name),
		hsm.WithVerbosity(verbosity),
	}, cfg.machine...)
	m := hsm.NewMachine(reg, StateAlive, agent, machineOpts...)
	if cfg.onStart != nil {
		cfg.onStart(m)
	}

	triggers, err := compileTriggers(sc.Triggers)
	if err != nil {
		return nil, err
	}
	events := scheduleEvents(sc.Events)
	res := &Result{Scenario: sc.Name, Agent: agent}
	var triggerErr error

	onFrame := func(f runner.Frame) {
		fr := snapshot(m, f)
		res.Frames = append(res.Frames, fr)
		if cfg.onFrame != nil {
			cfg.onFrame(fr)
		}
		for _, e := range events[f.Index+1] {
			applyEvent(m, e)
		}
		env := triggerEnv(m, f.Index)
		for _, t := range triggers {
			e, ok, err := t.due(env)
			if err != nil && triggerErr == nil {
				triggerErr = err
			}
			if ok {
				res.Fired = append(res.Fired, e)
				applyEvent(m, e)
			}
		}
	}

	for _, e := range events[0] {
		applyEvent(m, e)
	}
	runnerOpts := append([]runner.Option{
		runner.WithStep(sc.Step),
		runner.WithMaxTicks(sc.Ticks),
		runner.WithOnFrame(onFrame),
	}, cfg.runner...)
	if err := runner.New(m, runnerOpts...).Run(ctx); err != nil {
		return res, err
	}
	return res, triggerErr
}

// StatusLine joins the status of every active state, outermost first.
func StatusLine(m *hsm.Machine[*Agent]) string {
	var parts []string
	hsm.Broadcast(m, hsm.OuterToInner, func(s Statuser) bool {
		parts = append(parts, s.Status())
		return true
	})
	return strings.Join(parts, " > ")
}

func snapshot(m *hsm.Machine[*Agent], f runner.Frame) Frame {
	a := m.Owner()
	fr := Frame{
		Tick:      f.Index,
		Elapsed:   f.Elapsed,
		Stack:     m.Stack(),
		Status:    StatusLine(m),
		Stamina:   a.Stamina,
		Alertness: a.Alertness,
		Speed:     a.Speed.Get(),
	}
	if root, ok := hsm.Find[*alive](m); ok {
		fr.Pursuits = root.pursuits
	}
	return fr
}

func scheduleEvents(events []Event) map[int][]Event {
	byTick := make(map[int][]Event)
	for _, e := range events {
		byTick[e.Tick] = append(byTick[e.Tick], e)
	}
	return byTick
}

func applyEvent(m *hsm.Machine[*Agent], e Event) {
	a := m.Owner()
	switch e.Kind {
	case EventSight:
		a.Sighting = e.Target
	case EventLose:
		a.Sighting = ""
	case EventTire:
		a.spend(e.Level)
	case EventNoise:
		hsm.Broadcast(m, hsm.InnerToOuter, func(n Noticer) bool {
			return !n.Notice(e.Level)
		})
	}
}
