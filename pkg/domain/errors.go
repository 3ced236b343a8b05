package domain

import "errors"

// ErrUnknownState is returned when a state identifier has no registered factory.
var ErrUnknownState = errors.New("unknown state")

// ErrDuplicateState is returned when a state identifier is registered twice.
var ErrDuplicateState = errors.New("duplicate state")

// ErrStateNotFound signals that a "get" stack query found no matching state.
var ErrStateNotFound = errors.New("state not found on stack")

// ErrArgsMismatch signals that a transition's arguments do not match the target's Enter signature.
var ErrArgsMismatch = errors.New("enter arguments mismatch")

// ErrRunaway signals that transition resolution did not settle within the scan bound.
var ErrRunaway = errors.New("runaway transition oscillation")

// ErrReentrantTick signals a Tick issued while the same machine is already ticking.
var ErrReentrantTick = errors.New("re-entrant tick")

// ErrUnknownVerbosity is returned when parsing an unrecognised verbosity name.
var ErrUnknownVerbosity = errors.New("unknown verbosity")
