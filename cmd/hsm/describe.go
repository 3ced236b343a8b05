package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hsm/internal/demo"
	"github.com/aretw0/hsm/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe [scenario]",
	Short: "Describe the guard states and a scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(args)
		if err != nil {
			return err
		}
		reg, err := demo.NewRegistry()
		if err != nil {
			return err
		}

		var md strings.Builder
		md.WriteString("# States\n\n| State | Description |\n| --- | --- |\n")
		for _, id := range reg.IDs() {
			fmt.Fprintf(&md, "| `%s` | %s |\n", id, reg.Description(id))
		}
		fmt.Fprintf(&md, "\n# Scenario `%s`\n\n%d ticks of %s, verbosity `%s`.\n\n", sc.Name, sc.Ticks, sc.Step, sc.Verbosity)
		for _, e := range sc.Events {
			fmt.Fprintf(&md, "- tick %d: **%s**", e.Tick, e.Kind)
			if e.Target != "" {
				fmt.Fprintf(&md, " %s", e.Target)
			}
			if e.Level != 0 {
				fmt.Fprintf(&md, " (%g)", e.Level)
			}
			md.WriteString("\n")
		}

		out := md.String()
		noColor, _ := cmd.Flags().GetBool("no-color")
		if !noColor && isTerminal(cmd.OutOrStdout()) {
			if rendered, err := tui.NewRenderer()(out); err == nil {
				out = rendered
			} else {
				logger.Warn("markdown rendering failed", "error", err)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("no-color", false, "Print plain markdown")
}
