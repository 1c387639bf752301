// Package service provides the business logic layer for Fib Box Pusher.
//
// The service package implements:
//   - Multi-session game management
//   - Move, key and bulk-move processing
//   - Per-session spawn scheduling
//   - Move history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages board configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine. Engines are not safe
// for concurrent use, so every operation that touches one holds the service
// mutex; a key press and a spawn tick on the same board are never
// interleaved.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.PressKey(ctx, info.ID, "ArrowUp")
//
// Spawning:
//
// TickDue is polled by the tick driver. A session's first poll only starts
// its schedule; after that it spawns once per configured tick period. A
// process that falls behind does not burst: the schedule restarts from now.
package service
