/*
Package hsm is a stack-based hierarchical state machine engine for tick-driven programs
such as game agents, simulations and control loops.

A Machine holds a stack of nested states: depth 0 is the outermost, each deeper entry is
more specific. Every tick the machine asks each state, outer to inner, for the transition
it wants. The first transition that changes the stack is applied and the scan restarts
from depth 0; once a full scan changes nothing the stack has settled and the per-tick
Update and LateUpdate hooks run across the whole stack.

# Transitions

  - domain.None(): nothing to do, ask the next depth.
  - domain.Inner(id, args...): make sure the immediate child is id, replacing it otherwise.
  - domain.InnerEntry(id, args...): push id as the immediate child only if there is none.
  - domain.Sibling(id, args...): replace this state, and everything inside it, with id.

Inner compares identity only, so returning Inner(id) every tick is a steady-state
assertion: nothing is re-entered while the child already is id, whatever the arguments.

# State values

A StateValue is a variable whose writes are scoped to the writing state's activation.
When the state exits, every StateValue it wrote returns to the value it had before the
state's first write.

# Usage

	type Owner struct{ Name string }

	type Idle struct{ hsm.Base[*Owner] }

	func (s *Idle) Enter() { fmt.Println(s.Owner().Name, "is idle") }

	reg := hsm.NewRegistry[*Owner]()
	reg.MustRegister("idle", func() hsm.State[*Owner] { return &Idle{} })

	m := hsm.NewMachine(reg, "idle", &Owner{Name: "guard"})
	for {
		m.Tick(16 * time.Millisecond)
	}

A Machine is not safe for concurrent use. Drive it from a single goroutine, for example
with pkg/runner.
*/
package hsm
