package engine

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func createTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

// arrange places the player and boxes on a fresh 300x300 board
func arrange(t *testing.T, player Position, boxes ...Position) *GameEngine {
	t.Helper()
	e := createTestEngine(t)
	if err := e.PlacePlayer(player); err != nil {
		t.Fatalf("PlacePlayer(%v) failed: %v", player, err)
	}
	for _, b := range boxes {
		if _, err := e.PlaceBox(b, ""); err != nil {
			t.Fatalf("PlaceBox(%v) failed: %v", b, err)
		}
	}
	return e
}

func TestMovePlayer_ScenarioA_FreeMove(t *testing.T) {
	e := arrange(t, Position{0, 0})

	outcome := e.TryMove(Right)
	if !outcome.Success {
		t.Fatalf("Expected move right to succeed, got %v", outcome.Err())
	}
	if got := e.GetPlayerPosition(); got != (Position{100, 0}) {
		t.Errorf("Expected player at (100,0), got %v", got)
	}
	if outcome.Push != nil {
		t.Error("Expected no push on a free move")
	}
}

func TestMovePlayer_ScenarioB_SinglePush(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0})

	outcome := e.TryMove(Right)
	if !outcome.Success {
		t.Fatalf("Expected push to succeed, got %v", outcome.Err())
	}
	if got := e.GetPlayerPosition(); got != (Position{100, 0}) {
		t.Errorf("Expected player at (100,0), got %v", got)
	}
	box, _ := e.store.Box(1)
	if box.Position() != (Position{200, 0}) {
		t.Errorf("Expected box at (200,0), got %v", box.Position())
	}
	if outcome.Push == nil || outcome.Push.BoxID != 1 {
		t.Fatalf("Expected push of box 1, got %+v", outcome.Push)
	}
	if outcome.Push.From != (Position{100, 0}) || outcome.Push.To != (Position{200, 0}) {
		t.Errorf("Unexpected push trace %+v", outcome.Push)
	}
}

func TestMovePlayer_ScenarioC_NoChainPush(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0}, Position{200, 0})
	before := e.GetState()

	outcome := e.TryMove(Right)
	if outcome.Success {
		t.Fatal("Expected chained push to fail")
	}
	if !errors.Is(outcome.Err(), ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", outcome.Err())
	}
	if outcome.Reason != BlockedPushObstructed {
		t.Errorf("Expected reason %s, got %s", BlockedPushObstructed, outcome.Reason)
	}
	assertSameBoard(t, before, e.GetState())
}

func TestMovePlayer_ScenarioD_OffGrid(t *testing.T) {
	e := arrange(t, Position{200, 200})

	outcome := e.TryMove(Up)
	if outcome.Success {
		t.Fatal("Expected move off the grid to fail")
	}
	if outcome.Target != (Position{200, 300}) {
		t.Errorf("Expected target (200,300), got %v", outcome.Target)
	}
	if outcome.Reason != BlockedOutOfGrid {
		t.Errorf("Expected reason %s, got %s", BlockedOutOfGrid, outcome.Reason)
	}
	if e.GetPlayerPosition() != (Position{200, 200}) {
		t.Errorf("Player moved on failed move: %v", e.GetPlayerPosition())
	}
}

func TestMovePlayer_PushAgainstEdge(t *testing.T) {
	e := arrange(t, Position{100, 0}, Position{200, 0})
	before := e.GetState()

	outcome := e.TryMove(Right)
	if outcome.Success {
		t.Fatal("Expected push against the edge to fail")
	}
	if outcome.Reason != BlockedPushOutOfGrid {
		t.Errorf("Expected reason %s, got %s", BlockedPushOutOfGrid, outcome.Reason)
	}
	assertSameBoard(t, before, e.GetState())
}

func TestMovePlayer_Directions(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		expected  Position
	}{
		{"left", Left, Position{0, 100}},
		{"right", Right, Position{200, 100}},
		{"up", Up, Position{100, 200}},
		{"down", Down, Position{100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := arrange(t, Position{100, 100})
			outcome := e.TryMove(tt.direction)
			if !outcome.Success {
				t.Fatalf("Expected move %s to succeed: %v", tt.direction, outcome.Err())
			}
			if got := e.GetPlayerPosition(); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMovePlayer_PushEveryDirection(t *testing.T) {
	tests := []struct {
		direction Direction
		box       Position
		boxAfter  Position
	}{
		{Left, Position{100, 200}, Position{0, 200}},
		{Right, Position{200, 0}, Position{300, 0}},
		{Up, Position{200, 200}, Position{200, 300}},
		{Down, Position{200, 100}, Position{200, 0}},
	}

	for _, tt := range tests {
		t.Run(string(tt.direction), func(t *testing.T) {
			// 400x400 board so every push has room
			cfg := DefaultConfig()
			cfg.Height, cfg.Width = 400, 400
			e, err := NewEngine(cfg, WithRand(rand.New(rand.NewPCG(3, 4))))
			if err != nil {
				t.Fatalf("Failed to create engine: %v", err)
			}
			player := e.grid.Step(tt.box, directionOpposite(tt.direction))
			if err := e.PlacePlayer(player); err != nil {
				t.Fatal(err)
			}
			id, err := e.PlaceBox(tt.box, "8")
			if err != nil {
				t.Fatal(err)
			}

			if o := e.TryMove(tt.direction); !o.Success {
				t.Fatalf("Expected push %s to succeed: %v", tt.direction, o.Err())
			}
			box, _ := e.store.Box(id)
			if box.Position() != tt.boxAfter {
				t.Errorf("Expected box at %v, got %v", tt.boxAfter, box.Position())
			}
			if e.GetPlayerPosition() != tt.box {
				t.Errorf("Expected player at %v, got %v", tt.box, e.GetPlayerPosition())
			}
		})
	}
}

func TestMovePlayer_BoxKeepsIdentityAfterPush(t *testing.T) {
	e := arrange(t, Position{0, 0})
	id, err := e.PlaceBox(Position{100, 0}, "13")
	if err != nil {
		t.Fatal(err)
	}

	e.TryMove(Right)

	box, ok := e.store.Box(id)
	if !ok {
		t.Fatal("Pushed box lost from the store")
	}
	if box.Label() != "13" {
		t.Errorf("Expected label 13, got %s", box.Label())
	}
	if found, ok := e.store.BoxAt(Position{200, 0}); !ok || found.ID() != id {
		t.Error("Position index not updated after push")
	}
	if _, ok := e.store.BoxAt(Position{100, 0}); ok {
		t.Error("Vacated cell still indexed as occupied")
	}
}

func TestResolverPlan_DoesNotMutate(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0})
	before := e.GetState()

	for _, d := range AllDirections() {
		e.resolver.Plan(d)
	}
	assertSameBoard(t, before, e.GetState())
}

func TestMoveOutcome_Err(t *testing.T) {
	ok := MoveOutcome{Success: true}
	if ok.Err() != nil {
		t.Errorf("Expected nil error for success, got %v", ok.Err())
	}

	failed := MoveOutcome{Direction: Up, Reason: BlockedOutOfGrid}
	if !errors.Is(failed.Err(), ErrInvalidMove) {
		t.Errorf("Expected ErrInvalidMove, got %v", failed.Err())
	}
}

func directionOpposite(d Direction) Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func assertSameBoard(t *testing.T, before, after *GameState) {
	t.Helper()
	if before.Player.Pos != after.Player.Pos {
		t.Errorf("Player moved from %v to %v", before.Player.Pos, after.Player.Pos)
	}
	if len(before.Boxes) != len(after.Boxes) {
		t.Fatalf("Box count changed from %d to %d", len(before.Boxes), len(after.Boxes))
	}
	for i := range before.Boxes {
		if before.Boxes[i] != after.Boxes[i] {
			t.Errorf("Box %d changed from %+v to %+v", before.Boxes[i].ID, before.Boxes[i], after.Boxes[i])
		}
	}
}
