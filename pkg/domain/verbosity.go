package domain

import (
	"fmt"
	"strings"
)

// Verbosity controls how much the engine reports to its diagnostics sink.
type Verbosity int

const (
	// VerbosityNone reports errors only.
	VerbosityNone Verbosity = iota
	// VerbosityBasic adds start, stop and every applied transition.
	VerbosityBasic
	// VerbosityDiagnostic adds every push, pop and scan.
	VerbosityDiagnostic
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityNone:
		return "none"
	case VerbosityBasic:
		return "basic"
	case VerbosityDiagnostic:
		return "diagnostic"
	default:
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
}

// ParseVerbosity maps a textual level (as used in flags and scenario files) to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return VerbosityNone, nil
	case "basic", "info":
		return VerbosityBasic, nil
	case "diagnostic", "debug", "verbose":
		return VerbosityDiagnostic, nil
	}
	return VerbosityNone, fmt.Errorf("%w: %q", ErrUnknownVerbosity, s)
}
