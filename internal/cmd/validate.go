package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/levelverify/internal/completion"
	"github.com/harrison/levelverify/internal/display"
	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/extract"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/syntax"
	"github.com/harrison/levelverify/internal/world"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check configuration and solutions without playing the levels",
		Long: `Validate the configuration, the curriculum and the solutions table.

For every level the reference solution is scanned and the number of robot
actions and printed lines is reported. Levels without a solution are listed
as a warning. With --execute each solution is also run against its level
immediately, without typing delays, and the completion flag is checked.

Examples:
  levelverify validate
  levelverify validate --solutions solutions.yaml --execute
  levelverify validate --syntax-check`,
		Args: cobra.NoArgs,
		RunE: validateCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("execute", false, "Run each solution and check its completion flag")

	return cmd
}

// validateCommand implements the validate command logic
func validateCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := orchestratorConfig(cfg).Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	levels, err := loadLevels()
	if err != nil {
		return err
	}
	table, err := loadSolutions(cfg)
	if err != nil {
		return err
	}
	execute, _ := cmd.Flags().GetBool("execute")

	var checker *syntax.TreeSitter
	if cfg.SyntaxCheck {
		checker = syntax.NewTreeSitter()
	}
	base := worldConfig(cfg)
	base.EnableLogging = false

	progress := display.NewProgressIndicator(out, len(levels))
	progress.Start()

	var problems []string
	for _, level := range levels {
		code, ok := table.Solution(level.Name)
		if !ok {
			progress.Step(level.Name, "no solution")
			continue
		}

		ex := extract.Extract(code)
		detail := fmt.Sprintf("%d action(s), %d print(s)", len(ex.Actions), len(ex.Prints))

		if checker != nil {
			if found := checker.Check(cmd.Context(), code); len(found) > 0 {
				detail += fmt.Sprintf(", syntax error at %s", found[0])
				problems = append(problems, fmt.Sprintf("%s: syntax error at %s", level.Name, found[0]))
			}
		}

		if execute {
			verdict, failure := executeSolution(cmd.Context(), level, code, base)
			detail += ", " + verdict
			if failure != "" {
				problems = append(problems, fmt.Sprintf("%s: %s", level.Name, failure))
			}
		}
		progress.Step(level.Name, detail)
	}
	progress.Complete()

	if missing := table.Missing(levels); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, l := range missing {
			names[i] = l.Name
		}
		fmt.Fprintln(out)
		display.WarnMissingSolutions(names).Display(out)
	}

	if len(problems) > 0 {
		fmt.Fprintln(out)
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		return fmt.Errorf("%d level(s) failed validation", len(problems))
	}

	fmt.Fprintf(out, "\nConfiguration and solutions are valid.\n")
	return nil
}

// executeSolution runs code once against level and evaluates its flag.
// failure is empty when the flag is satisfied.
func executeSolution(ctx context.Context, level models.Level, code string, base world.Config) (verdict, failure string) {
	session := executor.NewSession(world.ConfigForLevel(level, base))
	result := session.Run(ctx, code)
	flag := completion.ParseFlag(level.CompletionFlag, level.FallbackMarkers)
	if completion.Evaluate(flag, result, session.World()) {
		return "PASS", ""
	}
	reason := completion.Explain(flag, result, session.World())
	if result.Error != "" {
		reason = result.Error
	}
	return "FAIL", strings.TrimSpace(reason)
}
