package hsm_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/pkg/domain"
)

// world is the owner used by engine tests. Rules decide what each state id returns
// from its transition query; the journal records every hook in call order.
type world struct {
	rules   map[domain.StateID]func(s *scripted) domain.Transition
	journal []string
	entered map[*scripted]int
	exited  map[*scripted]int
	refuse  domain.StateID
}

func newWorld() *world {
	return &world{
		rules:   map[domain.StateID]func(s *scripted) domain.Transition{},
		entered: map[*scripted]int{},
		exited:  map[*scripted]int{},
	}
}

func (w *world) record(format string, args ...any) {
	w.journal = append(w.journal, fmt.Sprintf(format, args...))
}

// only returns the journal entries with the given prefix.
func (w *world) only(prefix string) []string {
	var out []string
	for _, e := range w.journal {
		if strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return out
}

func (w *world) reset() { w.journal = nil }

type scripted struct {
	hsm.Base[*world]
	queries int
}

func (s *scripted) Enter() {
	w := s.Owner()
	w.entered[s]++
	w.record("enter:%s@%d", s.ID(), s.Depth())
}

func (s *scripted) Exit() {
	w := s.Owner()
	w.exited[s]++
	w.record("exit:%s@%d", s.ID(), s.Depth())
}

func (s *scripted) Transition() domain.Transition {
	s.queries++
	if rule := s.Owner().rules[s.ID()]; rule != nil {
		return rule(s)
	}
	return domain.None()
}

func (s *scripted) Update(dt time.Duration) {
	s.Owner().record("update:%s", s.ID())
}

func (s *scripted) LateUpdate() {
	s.Owner().record("late:%s", s.ID())
}

// withArgs only accepts entry with arguments.
type withArgs struct {
	hsm.Base[*world]
	got domain.Args
}

func (s *withArgs) EnterArgs(args domain.Args) {
	s.got = args
	s.Owner().record("enter_args:%s:%v", s.ID(), []any(args))
}

// either accepts entry with or without arguments.
type either struct {
	hsm.Base[*world]
}

func (s *either) Enter() { s.Owner().record("enter:%s", s.ID()) }

func (s *either) EnterArgs(args domain.Args) {
	s.Owner().record("enter_args:%s:%v", s.ID(), []any(args))
}

func scriptedRegistry(t *testing.T, ids ...domain.StateID) *hsm.Registry[*world] {
	t.Helper()
	reg := hsm.NewRegistry[*world]()
	for _, id := range ids {
		if err := reg.Register(id, func() hsm.State[*world] { return &scripted{} }); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	return reg
}

// always returns a rule that issues t on every query.
func always(t domain.Transition) func(*scripted) domain.Transition {
	return func(*scripted) domain.Transition { return t }
}

// once returns a rule that issues t on its first query only.
func once(t domain.Transition) func(*scripted) domain.Transition {
	fired := false
	return func(*scripted) domain.Transition {
		if fired {
			return domain.None()
		}
		fired = true
		return t
	}
}

const frame = 16 * time.Millisecond
