/*
Package domain contains the pure value types shared by the hsm engine and its adapters.

It is kept free of engine state and I/O so that adapters (metrics, CLI, HTTP) can depend on it
without depending on the engine itself.

# Key Entities

  - StateID: the stable identifier of a state variant, resolved through a registry.
  - Transition: the immutable intent a state returns each scan (None, Inner, InnerEntry, Sibling).
  - Args: the ordered argument list a transition hands to the state it pushes.
  - LifecycleHooks: callbacks fired on push, pop, applied transitions and completed ticks.
  - Verbosity: how much the engine reports to its diagnostics sink.
*/
package domain
