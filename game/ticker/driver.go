// Package ticker drives the periodic box spawner for every live session.
//
// A single Driver goroutine polls the service at a fixed resolution. The
// service decides which sessions are due based on each board's own
// tick_period_ms, so boards with different periods share one driver.
// After a spawn the driver asks the notifier to redraw that session.
package ticker

import (
	"context"
	"log"
	"time"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
	"github.com/wricardo/mcp-training/fibbox/game/service"
)

// DefaultResolution is the polling interval used when none is given
const DefaultResolution = 10 * time.Millisecond

// Source reports and runs the spawns that are due at a point in time
type Source interface {
	TickDue(ctx context.Context, now time.Time) []*service.TickResult
}

// Notifier receives the full board after each spawn
type Notifier interface {
	BroadcastToSession(sessionID string, state *engine.GameState)
}

// Driver polls a Source and fans spawn results out to a Notifier
type Driver struct {
	source     Source
	notifier   Notifier
	resolution time.Duration
}

// NewDriver creates a driver. A nil notifier disables redraw notifications.
func NewDriver(source Source, notifier Notifier, resolution time.Duration) *Driver {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &Driver{
		source:     source,
		notifier:   notifier,
		resolution: resolution,
	}
}

// Run polls until ctx is cancelled
func (d *Driver) Run(ctx context.Context) error {
	t := time.NewTicker(d.resolution)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			d.Step(ctx, now)
		}
	}
}

// Step runs one poll at now and returns how many boxes were spawned
func (d *Driver) Step(ctx context.Context, now time.Time) int {
	spawned := 0
	for _, r := range d.source.TickDue(ctx, now) {
		if !r.Spawned {
			continue
		}
		spawned++

		full := ""
		if r.BoardFull {
			full = " board_full"
		}
		log.Printf("[TICK] session=%s spawned #%d at %s label=%s free=%d%s",
			r.SessionID, r.BoxID, r.Position, r.Label, r.FreeCells, full)

		if d.notifier != nil {
			d.notifier.BroadcastToSession(r.SessionID, r.GameState)
		}
	}
	return spawned
}
