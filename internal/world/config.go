package world

import "github.com/harrison/levelverify/internal/models"

// Default grid geometry used when a level does not carry its own layout.
const (
	DefaultWidth  = 6
	DefaultHeight = 6
)

// Config holds everything needed to build a fresh World.
type Config struct {
	Width         int
	Height        int
	Start         models.Position
	EnableLogging bool
	Items         []models.Item
	Doors         []models.Position
	Blockers      []models.Position
}

// DefaultConfig returns an empty 6x6 grid with the robot at (1, 1).
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Start:         models.Position{X: 1, Y: 1},
		EnableLogging: true,
	}
}

// ConfigForLevel builds a world config from a level descriptor. Geometry the
// level leaves unset falls back to base.
func ConfigForLevel(level models.Level, base Config) Config {
	cfg := base
	if level.Width > 0 && level.Height > 0 {
		cfg.Width = level.Width
		cfg.Height = level.Height
		cfg.Start = level.Start
	}
	cfg.Items = append([]models.Item(nil), level.Items...)
	cfg.Doors = append([]models.Position(nil), level.Doors...)
	cfg.Blockers = append([]models.Position(nil), level.Blockers...)
	return cfg
}
