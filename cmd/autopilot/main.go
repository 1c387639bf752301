// Command autopilot plays a session over the REST API. It is handy for
// watching the board in a browser while something moves the player, and as
// a smoke test against a running server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/wricardo/mcp-training/fibbox/api"
	"github.com/wricardo/mcp-training/fibbox/game/engine"
)

// Stats summarizes one autopilot run
type Stats struct {
	Moves     int
	Blocked   int
	Pushes    int
	Stuck     bool
	BoardFull bool
}

// Pilot drives one session with a strategy
type Pilot struct {
	client    *api.Client
	sessionID string
	strategy  Strategy
	delay     time.Duration
	verbose   bool
}

// Run plays until maxMoves successful moves, until every direction is
// blocked, or until ctx is cancelled.
func (p *Pilot) Run(ctx context.Context, maxMoves int) (Stats, error) {
	var stats Stats
	blocked := mapset.New[engine.Direction]()

	for stats.Moves < maxMoves {
		if err := ctx.Err(); err != nil {
			return stats, nil
		}

		d := p.strategy.Next(blocked.Has)
		if d == "" || blocked.Size() == len(engine.AllDirections()) {
			stats.Stuck = true
			return stats, nil
		}

		result, err := p.client.Move(ctx, p.sessionID, string(d))
		if err != nil {
			return stats, err
		}
		p.strategy.Observe(d, result.Success)

		if result.GameState != nil {
			stats.BoardFull = result.GameState.BoardFull
		}

		if !result.Success {
			stats.Blocked++
			blocked.Put(d)
			if p.verbose {
				log.Printf("blocked %s: %s", d, result.Reason)
			}
			continue
		}

		stats.Moves++
		blocked = mapset.New[engine.Direction]()
		if result.Step != nil && result.Step.PushedBox != 0 {
			stats.Pushes++
			if p.verbose {
				log.Printf("pushed #%d(%s) %s", result.Step.PushedBox, result.Step.BoxLabel, d)
			}
		}

		if p.delay > 0 {
			select {
			case <-ctx.Done():
				return stats, nil
			case <-time.After(p.delay):
			}
		}
	}
	return stats, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configName := flag.String("config", "", "Board configuration for a new session")
	continueSession := flag.String("continue", "", "Play an existing session by ID")
	strategyName := flag.String("strategy", "sweep", "Movement strategy (random, sweep)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for the random strategy")
	maxMoves := flag.Int("max-moves", 500, "Maximum successful moves")
	delayMs := flag.Int("delay", 200, "Delay between moves in milliseconds (0 = no delay)")
	reset := flag.Bool("reset", false, "Reset the board before playing")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	strategy, err := NewStrategy(*strategyName, *seed)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := api.NewClient(*serverURL)

	sessionID := *continueSession
	if sessionID != "" {
		if _, err := client.GetSession(ctx, sessionID); err != nil {
			log.Fatalf("Failed to resume session %s: %v", sessionID, err)
		}
		log.Printf("Resuming session: %s", sessionID)
	} else {
		info, err := client.CreateSession(ctx, *configName)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		sessionID = info.ID
		log.Printf("Session created: %s (%s, %dx%d)", sessionID, info.ConfigName,
			info.GameState.Grid.Columns, info.GameState.Grid.Rows)
	}

	if *reset {
		if _, err := client.Reset(ctx, sessionID); err != nil {
			log.Fatalf("Failed to reset game: %v", err)
		}
	}

	pilot := &Pilot{
		client:    client,
		sessionID: sessionID,
		strategy:  strategy,
		delay:     time.Duration(*delayMs) * time.Millisecond,
		verbose:   *verbose,
	}

	stats, err := pilot.Run(ctx, *maxMoves)
	if err != nil {
		log.Printf("Run aborted: %v", err)
	}
	log.Printf("Done: moves=%d blocked=%d pushes=%d stuck=%t board_full=%t",
		stats.Moves, stats.Blocked, stats.Pushes, stats.Stuck, stats.BoardFull)
	if err != nil {
		os.Exit(1)
	}
}
