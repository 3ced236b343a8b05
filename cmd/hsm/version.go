package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hsm"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hsm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hsm version %s\n", hsm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
