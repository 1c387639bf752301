// Package input maps raw key names to movement directions.
//
// Keys arrive from several surfaces: browser KeyboardEvent names over the
// WebSocket ("ArrowUp"), MCP tool arguments ("up", "arrow_up"), and raw
// terminal bytes from cmd/boxterm. MapKey normalizes all of them into an
// engine.Direction; anything unrecognized is reported as not mapped and the
// caller ignores it.
//
// Usage:
//
//	if d, ok := input.MapKey("ArrowLeft"); ok {
//		outcome := eng.TryMove(d)
//	}
//
//	key, n := input.DecodeTerminal(buf)
package input
