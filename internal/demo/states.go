package demo

import (
	"fmt"
	"math"
	"time"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
	"github.com/aretw0/hsm/pkg/dsl"
)

// State identifiers of the guard machine.
const (
	StateAlive  domain.StateID = "alive"
	StatePatrol domain.StateID = "patrol"
	StateChase  domain.StateID = "chase"
	StateSearch domain.StateID = "search"
	StateRest   domain.StateID = "rest"
)

// alertDecay is the alertness lost per second while alive.
const alertDecay = 0.1

// Noticer is implemented by states that react to a noise.
// Notice reports whether the noise was dealt with.
type Noticer interface {
	Notice(level float64) bool
}

// Statuser is implemented by states that contribute to the status line.
type Statuser interface {
	Status() string
}

// NewRegistry returns the registry of the guard machine.
func NewRegistry() (*hsm.Registry[*Agent], error) {
	reg := hsm.NewRegistry[*Agent]()

	typed := []struct {
		id   domain.StateID
		desc string
		f    hsm.Factory[*Agent]
	}{
		{StateAlive, "root; sends the guard to rest when tired, otherwise seeds patrol", func() hsm.State[*Agent] { return &alive{} }},
		{StatePatrol, "walks the route until something is seen", func() hsm.State[*Agent] { return &patrol{} }},
		{StateChase, "runs after a target (args: target)", func() hsm.State[*Agent] { return &chase{} }},
		{StateSearch, "looks around where the target was lost (args: target)", func() hsm.State[*Agent] { return &search{} }},
	}
	for _, s := range typed {
		if err := reg.Register(s.id, s.f); err != nil {
			return nil, err
		}
		reg.Describe(s.id, s.desc)
	}

	b := dsl.New[*Agent]()
	b.State(StateRest).
		Describe("recovers stamina, then resumes patrol").
		OnUpdate(func(s *dsl.Func[*Agent], dt time.Duration) { s.Owner().regain(dt) }).
		Transition(func(s *dsl.Func[*Agent]) domain.Transition {
			if s.Owner().rested() {
				return domain.Sibling(StatePatrol)
			}
			return domain.None()
		})
	if err := b.Into(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

type alive struct {
	hsm.Base[*Agent]
	pursuits int
}

func (s *alive) Enter() { s.Owner().Alertness = 0 }

func (s *alive) Transition() domain.Transition {
	if s.Owner().tired() {
		return domain.Inner(StateRest)
	}
	return domain.InnerEntry(StatePatrol)
}

func (s *alive) Update(dt time.Duration) {
	a := s.Owner()
	a.Alertness = math.Max(0, a.Alertness-alertDecay*dt.Seconds())
}

func (s *alive) Notice(level float64) bool {
	s.Owner().Alertness += level / 2
	return true
}

func (s *alive) Status() string {
	return fmt.Sprintf("stamina %.1f", s.Owner().Stamina)
}

type patrol struct {
	hsm.Base[*Agent]
}

func (s *patrol) Transition() domain.Transition {
	if seen := s.Owner().Sighting; seen != "" {
		return domain.Sibling(StateChase, seen)
	}
	return domain.None()
}

func (s *patrol) Update(dt time.Duration) {
	s.Owner().move(dt, s.Owner().Config.PatrolSpeed)
}

// Notice turns the guard around on loud noises.
func (s *patrol) Notice(level float64) bool {
	a := s.Owner()
	a.Alertness += level
	if level >= 0.5 {
		a.turn()
	}
	return true
}

func (s *patrol) Status() string {
	return fmt.Sprintf("patrolling at %.1f", s.Owner().Position)
}

type chase struct {
	hsm.Base[*Agent]
	target string
}

func (s *chase) EnterArgs(args domain.Args) {
	s.target, _ = domain.Arg[string](args, 0)
	a := s.Owner()
	a.Speed.Set(s, a.Config.ChaseBoost)
	if root, ok := hsm.FindOuter[*alive](s.Machine(), s.Depth()); ok {
		root.pursuits++
	}
}

func (s *chase) Transition() domain.Transition {
	switch seen := s.Owner().Sighting; seen {
	case s.target:
		return domain.None()
	case "":
		return domain.Sibling(StateSearch, s.target)
	default:
		return domain.Sibling(StateChase, seen)
	}
}

func (s *chase) Update(dt time.Duration) {
	s.Owner().move(dt, s.Owner().Config.PatrolSpeed)
}

func (s *chase) Status() string { return "chasing " + s.target }

type search struct {
	hsm.Base[*Agent]
	target string
	left   time.Duration
}

func (s *search) EnterArgs(args domain.Args) {
	s.target, _ = domain.Arg[string](args, 0)
	a := s.Owner()
	s.left = a.Config.SearchFor
	a.Speed.Set(s, a.Config.SearchSpeed)
}

func (s *search) Transition() domain.Transition {
	if seen := s.Owner().Sighting; seen != "" {
		return domain.Sibling(StateChase, seen)
	}
	if s.left <= 0 {
		return domain.Sibling(StatePatrol)
	}
	return domain.None()
}

func (s *search) Update(dt time.Duration) {
	s.left -= dt
	s.Owner().move(dt, s.Owner().Config.PatrolSpeed)
}

// Notice extends the search.
func (s *search) Notice(level float64) bool {
	a := s.Owner()
	a.Alertness += level
	s.left = a.Config.SearchFor
	return true
}

func (s *search) Status() string {
	return fmt.Sprintf("searching for %s (%s left)", s.target, s.left)
}
