package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxday/planner-api/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "planner-configure",
		Short: "Configuration tool for the planner API",
		Long:  "CLI tool for testing connectivity and managing runtime settings",
	}

	rootCmd.AddCommand(commands.NewTestCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
