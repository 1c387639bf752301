package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default message texts used when a config leaves one empty
const (
	defaultWelcome   = "Push the boxes around. New ones keep coming!"
	defaultMoved     = "Moved %s"
	defaultPushed    = "Pushed box %s"
	defaultBlocked   = "Can't move %s"
	defaultSpawned   = "New box %s appeared"
	defaultBoardFull = "The board is full"
)

// TickPeriod returns the configured spawn period, defaulting to one second
func (c *GameConfig) TickPeriod() time.Duration {
	if c.TickPeriodMs <= 0 {
		return DefaultTickMs * time.Millisecond
	}
	return time.Duration(c.TickPeriodMs) * time.Millisecond
}

// LabelPoolSize returns how many Fibonacci numbers feed the label pool
func (c *GameConfig) LabelPoolSize() int {
	if c.LabelCount <= 0 {
		return DefaultLabelCount
	}
	return c.LabelCount
}

// CellCount returns the number of cells the config produces
func (c *GameConfig) CellCount() int {
	if c.CellSize < MinCellSize {
		return 0
	}
	cols := (c.Height + c.CellSize - 1) / c.CellSize
	rows := (c.Width + c.CellSize - 1) / c.CellSize
	return cols * rows
}

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid geometry
	if config.CellSize < MinCellSize {
		return fmt.Errorf("config validation: cell_size must be at least %d, got %d", MinCellSize, config.CellSize)
	}
	if config.Height < config.CellSize {
		return fmt.Errorf("config validation: height must be at least cell_size (%d), got %d", config.CellSize, config.Height)
	}
	if config.Width < config.CellSize {
		return fmt.Errorf("config validation: width must be at least cell_size (%d), got %d", config.CellSize, config.Width)
	}
	if cells := config.CellCount(); cells > MaxCells {
		return fmt.Errorf("config validation: grid has %d cells, maximum is %d", cells, MaxCells)
	}

	// Validate timing and labels (zero means default)
	if config.TickPeriodMs != 0 && (config.TickPeriodMs < MinTickPeriodMs || config.TickPeriodMs > MaxTickPeriodMs) {
		return fmt.Errorf("config validation: tick_period_ms must be between %d and %d, got %d",
			MinTickPeriodMs, MaxTickPeriodMs, config.TickPeriodMs)
	}
	if config.LabelCount < 0 || config.LabelCount > MaxLabelCount {
		return fmt.Errorf("config validation: label_count must be between 1 and %d, got %d", MaxLabelCount, config.LabelCount)
	}

	// Validate format strings
	formats := map[string]string{
		"moved":   config.Messages.Moved,
		"pushed":  config.Messages.Pushed,
		"blocked": config.Messages.Blocked,
		"spawned": config.Messages.Spawned,
	}
	for key, msg := range formats {
		if msg != "" && strings.Count(msg, "%s") != 1 {
			return fmt.Errorf("config validation: messages.%s must contain exactly one %%s", key)
		}
	}

	return nil
}

// ParseGameConfig decodes a config from JSON or YAML. The format is chosen by
// the file extension; an empty extension sniffs for a leading '{'.
func ParseGameConfig(data []byte, ext string) (*GameConfig, error) {
	var config GameConfig

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	default:
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			return ParseGameConfig(data, ".json")
		}
		return ParseGameConfig(data, ".yaml")
	}

	return &config, nil
}

// LoadGameConfig loads and validates a game configuration file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := ParseGameConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns the built-in 3x3 board with 100 unit cells
func DefaultConfig() *GameConfig {
	config := &GameConfig{
		Name:         "classic",
		Description:  "Three by three board, one new box per second",
		Height:       300,
		Width:        300,
		CellSize:     100,
		TickPeriodMs: DefaultTickMs,
		LabelCount:   DefaultLabelCount,
	}
	config.Messages.Welcome = defaultWelcome
	config.Messages.Moved = defaultMoved
	config.Messages.Pushed = defaultPushed
	config.Messages.Blocked = defaultBlocked
	config.Messages.Spawned = defaultSpawned
	config.Messages.BoardFull = defaultBoardFull
	return config
}

// messageOr returns msg formatted with arg, or fallback when msg is empty
func messageOr(msg, fallback string, arg ...any) string {
	if msg == "" {
		msg = fallback
	}
	if len(arg) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, arg...)
}
