// Package mcp exposes Fib Box Pusher to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, so MCP players and browser players share the same sessions and
// WebSocket broadcasts.
//
// Tools:
//   - create_session, get_session, list_sessions
//   - game_state, move, bulk_move, press_key, reset_game
//   - spawn_box: run one spawner tick immediately
//   - move_history, list_configs, describe_cell, game_instructions
//
// The server can be driven over stdio (server.ServeStdio) or mounted on an
// HTTP endpoint via HandleMessage.
package mcp
