package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for levelverify
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levelverify",
		Short: "Automated level verification for the coding curriculum",
		Long: `levelverify drives the game through every curriculum level on its own.

For each level it loads the level, types the reference solution into the
editor at a human-visible pace, runs it against the robot world and checks
the level's completion flag. A pass/fail report is printed at the end.`,
		Version:      Version,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewLevelsCommand())

	return cmd
}
