package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/levelverify/internal/completion"
	"github.com/harrison/levelverify/internal/solutions"
)

// NewLevelsCommand creates the levels command
func NewLevelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the curriculum levels and their completion instructions",
		Args:  cobra.NoArgs,
		RunE:  levelsCommand,
	}
	cmd.Flags().String("solutions", "", "YAML or Markdown file with reference solutions")
	return cmd
}

func levelsCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	levels, err := loadLevels()
	if err != nil {
		return err
	}

	table := solutions.Builtin()
	if path, _ := cmd.Flags().GetString("solutions"); path != "" {
		fromFile, err := solutions.ParseFile(path)
		if err != nil {
			return fmt.Errorf("failed to load solutions: %w", err)
		}
		table = table.Merge(fromFile)
	}

	for i, level := range levels {
		mark := color.GreenString("solution")
		if _, ok := table.Solution(level.Name); !ok {
			mark = color.RedString("no solution")
		}
		fmt.Fprintf(out, "[%d] %s (%dx%d, %s)\n", i, level.Name, level.Width, level.Height, mark)
		flag := completion.ParseFlag(level.CompletionFlag, level.FallbackMarkers)
		fmt.Fprintf(out, "    %s\n", completion.Describe(flag))
	}
	return nil
}
