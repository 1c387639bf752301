// Package engine provides the core game logic for Fib Box Pusher.
//
// The engine package implements the game mechanics including:
//   - A fixed square-cell grid and its set of valid positions
//   - Occupancy tracking for the player and every placed box
//   - Movement resolution with a single-step box push
//   - Periodic spawning of boxes labelled with Fibonacci numbers
//   - Configuration loading and validation
//
// Core Types:
//
// Grid is the immutable cell lattice. EntityStore owns the Player and the
// Boxes; boxes are kept in an arena and addressed by a stable BoxID, so a box
// keeps its identity while its position changes. Resolver validates and
// commits moves, Spawner places new boxes. GameEngine ties them together
// behind the Engine interface and produces GameState snapshots.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Spawn a box, then move the player
//	gameEngine.Tick()
//	outcome := gameEngine.TryMove(engine.Right)
//	if !outcome.Success {
//		log.Println(outcome.Err())
//	}
//
// Game Rules:
//
// The player moves one cell per direction. If a box sits on the target cell
// the box is pushed one further cell, but only when that cell is on the grid
// and empty; a box behind a box is never pushed. A failed move leaves the
// board untouched. Each tick places one new box on a random free cell until
// the board is full. There is no score and no end condition.
package engine
