package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/levelverify/internal/config"
	"github.com/harrison/levelverify/internal/curriculum"
	"github.com/harrison/levelverify/internal/executor"
	"github.com/harrison/levelverify/internal/models"
	"github.com/harrison/levelverify/internal/solutions"
	"github.com/harrison/levelverify/internal/world"
)

// addConfigFlags registers the flags shared by run and validate.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .levelverify/config.yaml)")
	cmd.Flags().Int("start-level", 0, "Index of the first level to verify")
	cmd.Flags().Int("max-levels", 0, "Maximum number of levels to verify (0 = all)")
	cmd.Flags().Float64("typing-rate", 0, "Characters typed per second (0 = instant)")
	cmd.Flags().String("solutions", "", "YAML or Markdown file with reference solutions")
	cmd.Flags().String("log-dir", "", "Directory for log files")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().Bool("syntax-check", false, "Reject solutions that do not parse")
}

// loadConfig reads the config file, applies environment overrides, then the
// flags the user set explicitly, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		home, herr := config.Home()
		if herr != nil {
			return nil, fmt.Errorf("failed to resolve levelverify home: %w", herr)
		}
		cfg, err = config.LoadConfig(filepath.Join(home, "config.yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	var startLevelPtr, maxLevelsPtr *int
	if flags.Changed("start-level") {
		v, _ := flags.GetInt("start-level")
		startLevelPtr = &v
	}
	if flags.Changed("max-levels") {
		v, _ := flags.GetInt("max-levels")
		maxLevelsPtr = &v
	}

	var typingRatePtr *float64
	if flags.Changed("typing-rate") {
		v, _ := flags.GetFloat64("typing-rate")
		typingRatePtr = &v
	}

	var solutionsPtr, logDirPtr, logLevelPtr *string
	if flags.Changed("solutions") {
		v, _ := flags.GetString("solutions")
		solutionsPtr = &v
	}
	if flags.Changed("log-dir") {
		v, _ := flags.GetString("log-dir")
		logDirPtr = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevelPtr = &v
	}

	var syntaxCheckPtr *bool
	if flags.Changed("syntax-check") {
		v, _ := flags.GetBool("syntax-check")
		syntaxCheckPtr = &v
	}

	cfg.MergeWithFlags(startLevelPtr, maxLevelsPtr, typingRatePtr, solutionsPtr, logDirPtr, logLevelPtr, syntaxCheckPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadSolutions returns the built-in table, overlaid with the configured
// solutions file when there is one.
func loadSolutions(cfg *config.Config) (*solutions.Table, error) {
	table := solutions.Builtin()
	if cfg.SolutionsFile == "" {
		return table, nil
	}
	fromFile, err := solutions.ParseFile(cfg.SolutionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load solutions: %w", err)
	}
	return table.Merge(fromFile), nil
}

// loadLevels returns the curriculum after checking it is well formed.
func loadLevels() ([]models.Level, error) {
	levels := curriculum.Levels()
	if err := curriculum.Validate(levels); err != nil {
		return nil, fmt.Errorf("invalid curriculum: %w", err)
	}
	return levels, nil
}

func orchestratorConfig(cfg *config.Config) executor.OrchestratorConfig {
	return executor.OrchestratorConfig{
		StartLevel:        cfg.StartLevel,
		MaxLevels:         cfg.MaxLevels,
		TypingRate:        cfg.TypingRate,
		LoadDelay:         cfg.LoadDelay,
		ExecuteDelay:      cfg.ExecuteDelay,
		CompletionTimeout: cfg.CompletionTimeout,
		CompleteDelay:     cfg.CompleteDelay,
		NextLevelDelay:    cfg.NextLevelDelay,
		ExecutionTimeout:  cfg.ExecutionTimeout,
	}
}

func worldConfig(cfg *config.Config) world.Config {
	wc := world.DefaultConfig()
	wc.Width = cfg.Grid.Width
	wc.Height = cfg.Grid.Height
	wc.Start = models.Position{X: cfg.Grid.StartX, Y: cfg.Grid.StartY}
	return wc
}
