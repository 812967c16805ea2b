package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/harrison/levelverify/internal/config"
	"github.com/harrison/levelverify/internal/display"
	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/extract"
	"github.com/harrison/levelverify/internal/filelock"
	"github.com/harrison/levelverify/internal/game"
	"github.com/harrison/levelverify/internal/logger"
	"github.com/harrison/levelverify/internal/metrics"
	"github.com/harrison/levelverify/internal/syntax"
	"github.com/harrison/levelverify/internal/tracing"
	"github.com/harrison/levelverify/internal/tui"
)

// outputTimeout bounds report, metrics and tracing flushes after the run,
// which may happen after the run context was cancelled.
const outputTimeout = 10 * time.Second

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Verify every curriculum level with its reference solution",
		Long: `Verify curriculum levels by playing them automatically.

Each level is loaded, its reference solution is typed into the editor,
executed against the robot world and checked against the level's completion
flag. When stdout is a terminal the run is drawn live; otherwise (or with
--headless) progress is logged line by line.

Configuration is loaded from .levelverify/config.yaml if present, then from
LEVELVERIFY_* environment variables. CLI flags override both.

Examples:
  levelverify run
  levelverify run --headless --typing-rate 0
  levelverify run --start-level 2 --max-levels 3
  levelverify run --solutions solutions.md --syntax-check
  levelverify run --report-file out/report.txt --metrics-file out/levelverify.prom`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().Bool("headless", false, "Log progress instead of drawing the game")
	cmd.Flags().String("report-file", "", "Write the summary to this file")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("report-file") {
		cfg.ReportFile, _ = cmd.Flags().GetString("report-file")
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
	}

	levels, err := loadLevels()
	if err != nil {
		return err
	}
	table, err := loadSolutions(cfg)
	if err != nil {
		return err
	}
	orchCfg := orchestratorConfig(cfg)
	if err := orchCfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	headless, _ := cmd.Flags().GetBool("headless")
	if !headless && !isTerminal(cmd.OutOrStdout()) {
		headless = true
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), outputTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to flush traces: %v\n", err)
		}
	}()

	logDir, err := config.ResolvePath(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to resolve log directory: %w", err)
	}
	fileLog, err := logger.NewFileLoggerWithDirAndLevel(logDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer fileLog.Close()

	// The console logger would tear the terminal UI, so it only runs headless.
	var consoleLog *logger.ConsoleLogger
	multiLog := logger.MultiLogger{fileLog}
	if headless {
		consoleLog = logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
		multiLog = append(multiLog, consoleLog)
	}

	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)

	cache, err := extract.NewCache(cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("failed to create extraction cache: %w", err)
	}

	sessionOpts := []executor.SessionOption{
		executor.WithCache(cache),
		executor.WithMetrics(m),
		executor.WithLogger(multiLog),
	}
	if cfg.SyntaxCheck {
		sessionOpts = append(sessionOpts, executor.WithSyntaxChecker(syntax.NewTreeSitter()))
	}
	g := game.New(worldConfig(cfg), sessionOpts...)

	runID := uuid.NewString()
	orch := executor.NewOrchestrator(g, levels, table, orchCfg, multiLog,
		executor.WithRunID(runID),
		executor.WithBaseContext(ctx),
		executor.WithOrchestratorMetrics(m),
	)
	defer orch.Close()

	multiLog.LogInfo(fmt.Sprintf("Run %s: verifying %d level(s), log %s", runID, plannedLevels(len(levels), cfg), fileLog.RunFile()))

	var completed bool
	if headless {
		completed = runHeadless(ctx, orch, cfg.FrameInterval(), consoleLog, plannedLevels(len(levels), cfg))
	} else {
		completed, err = runInteractive(ctx, orch, g, cfg.FrameInterval())
		if err != nil {
			return err
		}
	}

	report := orch.Report()
	fmt.Fprintln(cmd.OutOrStdout())
	if err := display.WriteSummary(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	outCtx, cancel := context.WithTimeout(context.Background(), outputTimeout)
	defer cancel()
	if cfg.ReportFile != "" {
		var buf bytes.Buffer
		if err := display.WriteSummary(&buf, report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if err := filelock.WriteFile(outCtx, cfg.ReportFile, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}
	if cfg.MetricsFile != "" {
		if err := writeMetrics(outCtx, cfg.MetricsFile, reg); err != nil {
			return err
		}
	}

	if !completed {
		return fmt.Errorf("run interrupted after %d of %d level(s)", len(report.Outcomes), plannedLevels(len(levels), cfg))
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d level(s) failed", report.Failed)
	}
	return nil
}

// runHeadless ticks the orchestrator from a wall-clock ticker until every
// planned level has an outcome. It returns false when ctx ends first.
func runHeadless(ctx context.Context, orch *executor.Orchestrator, interval time.Duration, progress *logger.ConsoleLogger, planned int) bool {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	reported := 0
	orch.Tick(0)
	for !orch.Done() {
		select {
		case <-ctx.Done():
			return false
		case now := <-ticker.C:
			orch.Tick(now.Sub(last))
			last = now
		}

		if progress == nil {
			continue
		}
		snap := orch.Snapshot()
		if done := snap.Passed + snap.Failed; done != reported {
			reported = done
			progress.LogProgress(done, planned)
		}
	}
	return true
}

// runInteractive draws the run with bubbletea. It returns false when the
// user quits or ctx ends before the run finishes.
func runInteractive(ctx context.Context, orch *executor.Orchestrator, g *game.Game, interval time.Duration) (bool, error) {
	program := tea.NewProgram(tui.New(orch, g, interval), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("terminal UI failed: %w", err)
	}
	if model, ok := final.(tui.Model); ok && model.Interrupted() {
		return false, nil
	}
	return orch.Done(), nil
}

func writeMetrics(ctx context.Context, path string, reg prometheus.Gatherer) error {
	lock := filelock.For(path)
	if err := lock.Acquire(ctx); err != nil {
		return fmt.Errorf("failed to lock metrics file: %w", err)
	}
	defer lock.Release()
	return metrics.WriteTextfile(path, reg)
}

// plannedLevels mirrors the orchestrator's level range.
func plannedLevels(count int, cfg *config.Config) int {
	start := cfg.StartLevel
	if start > count {
		start = count
	}
	planned := count - start
	if cfg.MaxLevels > 0 && cfg.MaxLevels < planned {
		planned = cfg.MaxLevels
	}
	return planned
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
