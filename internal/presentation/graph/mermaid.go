package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/hsm/pkg/domain"
)

// Overlay contains extra state data to visualize next to the stack.
type Overlay struct {
	// Known lists registered states; those not on the stack are drawn unconnected.
	Known []domain.StateID
	// Visited lists states that were active at some point.
	Visited []domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of an active stack, outermost first.
// Each depth is linked to the one it contains; the root is drawn as a stadium and the
// innermost state is styled as current.
func GenerateMermaid(stack []domain.StateID, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	onStack := make(map[domain.StateID]bool, len(stack))
	for depth, id := range stack {
		onStack[id] = true
		opener, closer := "[", "]"
		if depth == 0 {
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", stackNodeID(depth, id), opener, id, closer)
		if depth > 0 {
			fmt.Fprintf(&sb, "    %s --> %s\n", stackNodeID(depth-1, stack[depth-1]), stackNodeID(depth, id))
		}
	}

	if overlay != nil {
		for _, id := range overlay.Known {
			if !onStack[id] {
				fmt.Fprintf(&sb, "    %s[\"%s\"]\n", idleNodeID(id), id)
			}
		}
	}

	sb.WriteString("\n    %% Styles\n")
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	if overlay != nil {
		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Visited {
			if seen[id] || onStack[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", idleNodeID(id))
		}
	}
	if n := len(stack); n > 0 {
		fmt.Fprintf(&sb, "    class %s current;\n", stackNodeID(n-1, stack[n-1]))
	}

	return sb.String()
}

func stackNodeID(depth int, id domain.StateID) string {
	return fmt.Sprintf("d%d_%s", depth, sanitizeMermaidID(string(id)))
}

func idleNodeID(id domain.StateID) string {
	return "s_" + sanitizeMermaidID(string(id))
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
