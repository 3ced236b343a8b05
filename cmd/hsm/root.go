package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hsm/internal/logging"
)

// logger is configured from the persistent flags before any command runs.
var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:   "hsm",
	Short: "hsm drives stack-based hierarchical state machines",
	Long: `hsm runs the guard demo on the stack-based hierarchical state machine engine.
Scenarios script what the guard sees; every tick prints the active stack.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")

		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return err
		}
		l, err := logging.NewWithFormat(cmd.ErrOrStderr(), level, format)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}
