package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable that overrides a setting.
const EnvPrefix = "LEVELVERIFY_"

// GridConfig is the default layout for levels that do not define their own.
type GridConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
	StartX int `yaml:"start_x" env:"START_X"`
	StartY int `yaml:"start_y" env:"START_Y"`
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// Config represents the levelverify configuration.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogDir   string `yaml:"log_dir" env:"LOG_DIR"`

	// Which levels run
	StartLevel    int    `yaml:"start_level" env:"START_LEVEL"`
	MaxLevels     int    `yaml:"max_levels" env:"MAX_LEVELS"`
	SolutionsFile string `yaml:"solutions_file" env:"SOLUTIONS_FILE"`

	// Pacing
	TypingRate        float64       `yaml:"typing_rate" env:"TYPING_RATE"`
	LoadDelay         time.Duration `yaml:"-" env:"LOAD_DELAY"`
	ExecuteDelay      time.Duration `yaml:"-" env:"EXECUTE_DELAY"`
	CompletionTimeout time.Duration `yaml:"-" env:"COMPLETION_TIMEOUT"`
	CompleteDelay     time.Duration `yaml:"-" env:"COMPLETE_DELAY"`
	NextLevelDelay    time.Duration `yaml:"-" env:"NEXT_LEVEL_DELAY"`
	ExecutionTimeout  time.Duration `yaml:"-" env:"EXECUTION_TIMEOUT"`
	FrameRate         int           `yaml:"frame_rate" env:"FRAME_RATE"`

	// Execution
	SyntaxCheck bool       `yaml:"syntax_check" env:"SYNTAX_CHECK"`
	CacheSize   int        `yaml:"cache_size" env:"CACHE_SIZE"`
	Grid        GridConfig `yaml:"grid" envPrefix:"GRID_"`

	// Outputs
	ReportFile  string        `yaml:"report_file" env:"REPORT_FILE"`
	MetricsFile string        `yaml:"metrics_file" env:"METRICS_FILE"`
	Tracing     TracingConfig `yaml:"tracing" envPrefix:"TRACING_"`
}

// DefaultConfig returns a Config with the standard pacing and a 6x6 grid.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		LogDir:            ".levelverify/logs",
		StartLevel:        0,
		MaxLevels:         0, // All levels
		TypingRate:        20,
		LoadDelay:         time.Second,
		ExecuteDelay:      time.Second,
		CompletionTimeout: 5 * time.Second,
		CompleteDelay:     2 * time.Second,
		NextLevelDelay:    500 * time.Millisecond,
		ExecutionTimeout:  5 * time.Second,
		FrameRate:         30,
		SyntaxCheck:       false,
		CacheSize:         128,
		Grid: GridConfig{
			Width:  6,
			Height: 6,
			StartX: 1,
			StartY: 1,
		},
		Tracing: TracingConfig{
			ServiceName: "levelverify",
		},
	}
}

// LoadConfig loads configuration from the specified file path, then applies
// LEVELVERIFY_* environment overrides.
// If the file doesn't exist, defaults are used without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromDir loads configuration from .levelverify/config.yaml in the
// specified directory.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".levelverify", "config.yaml"))
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings ("1.5s") and bools need presence
	// detection, so the file goes through its own shape first.
	type yamlConfig struct {
		LogLevel          string         `yaml:"log_level"`
		LogDir            string         `yaml:"log_dir"`
		StartLevel        int            `yaml:"start_level"`
		MaxLevels         int            `yaml:"max_levels"`
		SolutionsFile     string         `yaml:"solutions_file"`
		TypingRate        float64        `yaml:"typing_rate"`
		LoadDelay         string         `yaml:"load_delay"`
		ExecuteDelay      string         `yaml:"execute_delay"`
		CompletionTimeout string         `yaml:"completion_timeout"`
		CompleteDelay     string         `yaml:"complete_delay"`
		NextLevelDelay    string         `yaml:"next_level_delay"`
		ExecutionTimeout  string         `yaml:"execution_timeout"`
		FrameRate         int            `yaml:"frame_rate"`
		SyntaxCheck       *bool          `yaml:"syntax_check"`
		CacheSize         int            `yaml:"cache_size"`
		Grid              *GridConfig    `yaml:"grid"`
		ReportFile        string         `yaml:"report_file"`
		MetricsFile       string         `yaml:"metrics_file"`
		Tracing           *TracingConfig `yaml:"tracing"`
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if y.LogLevel != "" {
		c.LogLevel = y.LogLevel
	}
	if y.LogDir != "" {
		c.LogDir = y.LogDir
	}
	if y.StartLevel != 0 {
		c.StartLevel = y.StartLevel
	}
	if y.MaxLevels != 0 {
		c.MaxLevels = y.MaxLevels
	}
	if y.SolutionsFile != "" {
		c.SolutionsFile = y.SolutionsFile
	}
	if y.TypingRate != 0 {
		c.TypingRate = y.TypingRate
	}
	if y.FrameRate != 0 {
		c.FrameRate = y.FrameRate
	}
	if y.SyntaxCheck != nil {
		c.SyntaxCheck = *y.SyntaxCheck
	}
	if y.CacheSize != 0 {
		c.CacheSize = y.CacheSize
	}
	if y.ReportFile != "" {
		c.ReportFile = y.ReportFile
	}
	if y.MetricsFile != "" {
		c.MetricsFile = y.MetricsFile
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"load_delay", y.LoadDelay, &c.LoadDelay},
		{"execute_delay", y.ExecuteDelay, &c.ExecuteDelay},
		{"completion_timeout", y.CompletionTimeout, &c.CompletionTimeout},
		{"complete_delay", y.CompleteDelay, &c.CompleteDelay},
		{"next_level_delay", y.NextLevelDelay, &c.NextLevelDelay},
		{"execution_timeout", y.ExecutionTimeout, &c.ExecutionTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s format %q: %w", d.name, d.value, err)
		}
		*d.dst = parsed
	}

	if y.Grid != nil {
		if y.Grid.Width != 0 {
			c.Grid.Width = y.Grid.Width
		}
		if y.Grid.Height != 0 {
			c.Grid.Height = y.Grid.Height
		}
		// A start of (0, 0) is a valid corner, so presence of the grid
		// section is enough to take both coordinates.
		c.Grid.StartX = y.Grid.StartX
		c.Grid.StartY = y.Grid.StartY
	}
	if y.Tracing != nil {
		c.Tracing.Enabled = y.Tracing.Enabled
		if y.Tracing.Endpoint != "" {
			c.Tracing.Endpoint = y.Tracing.Endpoint
		}
		if y.Tracing.ServiceName != "" {
			c.Tracing.ServiceName = y.Tracing.ServiceName
		}
	}
	return nil
}

// ApplyEnv overrides fields from LEVELVERIFY_* environment variables.
// Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(startLevel *int, maxLevels *int, typingRate *float64, solutionsFile *string, logDir *string, logLevel *string, syntaxCheck *bool) {
	if startLevel != nil {
		c.StartLevel = *startLevel
	}
	if maxLevels != nil {
		c.MaxLevels = *maxLevels
	}
	if typingRate != nil {
		c.TypingRate = *typingRate
	}
	if solutionsFile != nil {
		c.SolutionsFile = *solutionsFile
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if syntaxCheck != nil {
		c.SyntaxCheck = *syntaxCheck
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.StartLevel < 0 {
		return fmt.Errorf("start_level must be >= 0, got %d", c.StartLevel)
	}
	if c.MaxLevels < 0 {
		return fmt.Errorf("max_levels must be >= 0, got %d", c.MaxLevels)
	}
	if c.TypingRate < 0 {
		return fmt.Errorf("typing_rate must be >= 0, got %v", c.TypingRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be > 0, got %d", c.FrameRate)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be > 0, got %d", c.CacheSize)
	}

	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("completion_timeout must be > 0, got %v", c.CompletionTimeout)
	}
	for name, d := range map[string]time.Duration{
		"load_delay":        c.LoadDelay,
		"execute_delay":     c.ExecuteDelay,
		"complete_delay":    c.CompleteDelay,
		"next_level_delay":  c.NextLevelDelay,
		"execution_timeout": c.ExecutionTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", name, d)
		}
	}

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.StartX < 0 || c.Grid.StartX >= c.Grid.Width || c.Grid.StartY < 0 || c.Grid.StartY >= c.Grid.Height {
		return fmt.Errorf("grid start (%d, %d) is outside the %dx%d grid", c.Grid.StartX, c.Grid.StartY, c.Grid.Width, c.Grid.Height)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint cannot be empty when tracing is enabled")
	}
	return nil
}

// FrameInterval is the time between host frames.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}
