// Package session provides in-memory session management for Fib Box Pusher.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session store. Each service.Session it hands out owns its
// own game engine; the manager only guards the registry, not the engines.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, retried until unused.
// Caller-supplied IDs may use letters, digits, '-' and '_'. Lookups are
// case-insensitive.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//
//	// drop sessions idle for more than a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
//
// Sessions live only as long as the process.
package session
