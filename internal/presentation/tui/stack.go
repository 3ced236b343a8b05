package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/hsm/pkg/domain"
)

// FormatStack renders a stack as "alive > chase", outermost first.
// With colour the innermost state is highlighted and outer states are dimmed.
func FormatStack(stack []domain.StateID, colour bool) string {
	if len(stack) == 0 {
		return "(stopped)"
	}
	parts := make([]string, len(stack))
	for i, id := range stack {
		parts[i] = string(id)
	}
	if !colour {
		return strings.Join(parts, " > ")
	}

	p := termenv.ColorProfile()
	last := len(parts) - 1
	for i := range parts[:last] {
		parts[i] = termenv.String(parts[i]).Faint().String()
	}
	parts[last] = termenv.String(parts[last]).Bold().Foreground(p.Color("#fbc02d")).String()
	return strings.Join(parts, termenv.String(" > ").Faint().String())
}
