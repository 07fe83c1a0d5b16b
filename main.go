package main

import (
	"os"

	"github.com/cottand/manifold/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "manifold [subcommand]",
	Short:        "manifold 🔀\n multiple dispatch over the runtime types of every argument",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ResolveCmd)
}
