// Package websocket provides WebSocket transport for Fib Box Pusher.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Full-board broadcasting after every state change
//   - Key presses from clients
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub manages all connections. Its Run goroutine owns the client
// registry; registration, broadcasts and client counts all go through
// channels. Each client has a read and a write goroutine.
//
// Message Protocol:
//
// Messages are JSON-encoded, one per frame:
//   - Incoming: {"type": "key", "key": "ArrowUp"}
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Outgoing state updates always carry the whole board. Clients clear and
// redraw; there is no incremental diff. Unknown inbound frame types are
// ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	hub.SetKeyHandler(func(sessionID, key string) {
//		result, err := gameService.PressKey(ctx, sessionID, key)
//		if err == nil {
//			hub.BroadcastToSession(sessionID, result.GameState)
//		}
//	})
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Every client gets a random UUID used to tell connections apart in logs.
package websocket
