// Package api provides the HTTP REST API for Fib Box Pusher.
//
// Every endpoint accepts and returns JSON. Handlers call into a
// service.GameService and, after any call that changes a board, push the
// full snapshot to the session's WebSocket clients so they can clear and
// redraw.
//
// Endpoints:
//
//	GET    /api/health
//	POST   /api/sessions                  {"config_id": "classic"}
//	GET    /api/sessions                  ?sort=created|accessed&order=asc|desc&limit=N
//	GET    /api/sessions/unified          ?sessionIds=a,b or ?configName=fast
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	GET    /api/sessions/{id}/state
//	POST   /api/sessions/{id}/move        {"direction": "up", "reset": false}
//	POST   /api/sessions/{id}/bulk-move   {"moves": ["up", "left"], "reset": false}
//	POST   /api/sessions/{id}/key         {"key": "ArrowUp"}
//	POST   /api/sessions/{id}/tick
//	POST   /api/sessions/{id}/reset
//	GET    /api/sessions/{id}/history     ?page=1&limit=20&order=desc
//	GET    /api/sessions/{id}/cell        ?x=100&y=200
//	GET    /api/configs
//	POST   /api/configs
//	GET    /api/configs/{name}
//	GET    /ws?session={id}
//
// A blocked move is not an HTTP error: it comes back as 200 with
// success=false and a reason code (out_of_grid, push_out_of_grid,
// push_obstructed, invalid_direction).
//
// Errors are returned as {"error": "message"}. Unknown sessions and
// configurations map to 404, malformed input and invalid configurations
// to 400.
//
// Client is a typed wrapper over the same routes for the command line tools.
package api
