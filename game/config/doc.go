// Package config provides board configuration management for Fib Box Pusher.
//
// The config package handles:
//   - Loading board configurations from JSON or YAML files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Boards are stored as *.json, *.yaml or *.yml files in the configs
// directory. The file name without extension is the config ID used when
// creating a session. Each configuration defines:
//   - Grid height, width and cell size
//   - Spawn period (tick_period_ms) and label pool size (label_count)
//   - An optional seed for reproducible boards
//   - Game messages for moves, pushes, spawns and a full board
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("fast")
//
//	// Get default configuration (classic, else the first valid board)
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
