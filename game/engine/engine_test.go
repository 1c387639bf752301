package engine

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestNewEngine(t *testing.T) {
	e := createTestEngine(t)

	state := e.GetState()
	if state.ConfigName != "classic" {
		t.Errorf("Expected config name classic, got %s", state.ConfigName)
	}
	if len(state.Boxes) != 0 {
		t.Errorf("Expected no boxes on a fresh board, got %d", len(state.Boxes))
	}
	if state.FreeCells != 8 {
		t.Errorf("Expected 8 free cells, got %d", state.FreeCells)
	}
	if !e.Grid().IsValid(state.Player.Pos) {
		t.Errorf("Player placed off grid at %v", state.Player.Pos)
	}
	if state.Message != defaultWelcome {
		t.Errorf("Expected welcome message, got %q", state.Message)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.CellSize = 0
	if _, err := NewEngine(config); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	e := NewEngineWithDefaults()
	if e.Grid().Size() != 9 {
		t.Errorf("Expected 9 cells, got %d", e.Grid().Size())
	}
}

func TestNewEngine_SeedIsDeterministic(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 42

	a, _ := NewEngine(config)
	b, _ := NewEngine(config)
	for i := 0; i < 5; i++ {
		oa, ob := a.Tick(), b.Tick()
		if oa.Pos != ob.Pos || oa.Label != ob.Label {
			t.Fatalf("Tick %d diverged: %+v vs %+v", i, oa, ob)
		}
	}
	if a.GetPlayerPosition() != b.GetPlayerPosition() {
		t.Error("Player placement diverged for equal seeds")
	}
}

func TestGetState_IsSnapshot(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0})
	e.Move("up")

	state := e.GetState()
	state.Boxes[0].Pos = Position{999, 999}
	state.MoveHistory[0].Action = "tampered"

	fresh := e.GetState()
	if fresh.Boxes[0].Pos != (Position{100, 0}) {
		t.Error("Mutating a snapshot changed box state")
	}
	if fresh.MoveHistory[0].Action != "up" {
		t.Error("Mutating a snapshot changed move history")
	}
}

func TestGetState_Board(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 200})

	expected := []string{
		".#.",
		"...",
		"@..",
	}
	if got := e.GetState().Board; !slices.Equal(got, expected) {
		t.Errorf("Board = %q, want %q", got, expected)
	}
}

func TestMove_Messages(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{0, 100})

	e.Move("right")
	if got := e.GetState().Message; got != "Moved right" {
		t.Errorf("Expected move message, got %q", got)
	}

	e.Move("right")
	if e.Move("right") {
		t.Fatal("Expected move off grid to fail")
	}
	if got := e.GetState().Message; got != "Can't move right" {
		t.Errorf("Expected blocked message, got %q", got)
	}
}

func TestMove_PushMessage(t *testing.T) {
	e := createTestEngine(t)
	e.PlacePlayer(Position{0, 0})
	e.PlaceBox(Position{0, 100}, "13")

	if !e.Move("up") {
		t.Fatal("Expected push to succeed")
	}
	if got := e.GetState().Message; got != "Pushed box 13" {
		t.Errorf("Expected push message, got %q", got)
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	e := arrange(t, Position{100, 100})

	if e.Move("sideways") {
		t.Error("Expected invalid direction to fail")
	}
	if e.GetPlayerPosition() != (Position{100, 100}) {
		t.Error("Player moved on an invalid direction")
	}

	last := e.GetLastMove()
	if last == nil || last.Reason != BlockedInvalidDirection {
		t.Errorf("Expected invalid_direction in history, got %+v", last)
	}
}

func TestMove_CaseInsensitive(t *testing.T) {
	e := arrange(t, Position{0, 0})
	if !e.Move("UP") {
		t.Error("Expected uppercase direction to be accepted")
	}
}

func TestCanMoveAndPossibleMoves(t *testing.T) {
	// Player in the corner with a pushable box above and a blocked box right
	e := arrange(t, Position{0, 0}, Position{0, 100}, Position{100, 0}, Position{200, 0})

	if !e.CanMove("up") {
		t.Error("Expected up to be possible")
	}
	if e.CanMove("right") {
		t.Error("Expected right to be blocked by the box chain")
	}
	if e.CanMove("left") || e.CanMove("down") {
		t.Error("Expected left and down to be off grid")
	}
	if e.CanMove("bogus") {
		t.Error("Expected unknown direction to be rejected")
	}

	possible := e.GetPossibleMoves()
	if !slices.Equal(possible, []string{"up"}) {
		t.Errorf("GetPossibleMoves = %v, want [up]", possible)
	}

	// CanMove never mutates
	if e.GetPlayerPosition() != (Position{0, 0}) || len(e.GetMoveHistory()) != 0 {
		t.Error("CanMove changed state")
	}
}

func TestBulkMove(t *testing.T) {
	t.Run("all succeed", func(t *testing.T) {
		e := arrange(t, Position{0, 0})
		results := e.BulkMove([]string{"right", "up", "right"})
		if !slices.Equal(results, []bool{true, true, true}) {
			t.Errorf("results = %v", results)
		}
		if e.GetPlayerPosition() != (Position{200, 100}) {
			t.Errorf("Expected (200,100), got %v", e.GetPlayerPosition())
		}
	})

	t.Run("stops at first failure", func(t *testing.T) {
		e := arrange(t, Position{0, 0})
		results := e.BulkMove([]string{"right", "left", "left", "up"})
		if !slices.Equal(results, []bool{true, true, false}) {
			t.Errorf("results = %v", results)
		}
		if e.GetPlayerPosition() != (Position{0, 0}) {
			t.Errorf("Expected (0,0), got %v", e.GetPlayerPosition())
		}
	})

	t.Run("capped", func(t *testing.T) {
		e := arrange(t, Position{0, 0})
		moves := make([]string, 0, MaxBulkMoves+10)
		for i := 0; i < MaxBulkMoves+10; i++ {
			if i%2 == 0 {
				moves = append(moves, "up")
			} else {
				moves = append(moves, "down")
			}
		}
		if got := len(e.BulkMove(moves)); got != MaxBulkMoves {
			t.Errorf("Expected %d results, got %d", MaxBulkMoves, got)
		}
	})
}

func TestTick(t *testing.T) {
	e := arrange(t, Position{0, 0})

	outcome := e.Tick()
	if !outcome.Spawned {
		t.Fatal("Expected spawn on an empty board")
	}

	state := e.GetState()
	if state.TickCount != 1 || state.SpawnedCount != 1 {
		t.Errorf("Expected 1 tick and 1 spawn, got %d and %d", state.TickCount, state.SpawnedCount)
	}
	if len(state.Boxes) != 1 || state.Boxes[0].Pos != outcome.Pos {
		t.Errorf("Spawned box not visible in state: %+v", state.Boxes)
	}
	if !strings.HasPrefix(state.Message, "New box ") {
		t.Errorf("Expected spawn message, got %q", state.Message)
	}

	for i := 0; i < 7; i++ {
		e.Tick()
	}
	full := e.Tick()
	if full.Spawned || !full.BoardFull {
		t.Errorf("Expected full board no-op, got %+v", full)
	}
	state = e.GetState()
	if state.Message != defaultBoardFull {
		t.Errorf("Expected board full message, got %q", state.Message)
	}
	if state.TickCount != 9 || state.SpawnedCount != 8 {
		t.Errorf("Expected 9 ticks and 8 spawns, got %d and %d", state.TickCount, state.SpawnedCount)
	}
}

func TestReset(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{200, 200})
	e.Move("right")
	e.Move("up")
	e.Tick()

	state := e.Reset()
	if len(state.Boxes) != 0 {
		t.Errorf("Expected reset to clear boxes, got %d", len(state.Boxes))
	}
	if state.TickCount != 0 || state.SpawnedCount != 0 {
		t.Error("Expected reset to clear counters")
	}
	if state.TotalMoves != 2 {
		t.Errorf("Expected cumulative history to survive reset, got %d", state.TotalMoves)
	}
	if state.CurrentMovesCount != 0 {
		t.Errorf("Expected current moves cleared, got %d", state.CurrentMovesCount)
	}

	e.Move("up")
	state = e.GetState()
	if state.TotalMoves < 3 || state.CurrentMovesCount != 1 {
		t.Errorf("Unexpected history after reset: total=%d current=%d", state.TotalMoves, state.CurrentMovesCount)
	}
}

func TestMoveHistory(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0})

	e.Move("right")
	e.Move("up")

	history := e.GetMoveHistory()
	if len(history) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(history))
	}

	push := history[0]
	if push.PushedBox != 1 || push.BoxFrom == nil || *push.BoxTo != (Position{200, 0}) {
		t.Errorf("Push not recorded: %+v", push)
	}
	if push.MoveNumber != 1 || history[1].MoveNumber != 2 {
		t.Error("Move numbers are not sequential")
	}
	if history[1].PushedBox != 0 {
		t.Error("Plain move recorded a push")
	}

	if last := e.GetLastMove(); last.Action != "up" {
		t.Errorf("Expected last move up, got %s", last.Action)
	}
}

func TestGetLastMove_Empty(t *testing.T) {
	e := createTestEngine(t)
	if e.GetLastMove() != nil {
		t.Error("Expected nil last move on a fresh engine")
	}
}

func TestPlacePlayerAndBox_Errors(t *testing.T) {
	e := arrange(t, Position{0, 0}, Position{100, 0})

	if err := e.PlacePlayer(Position{100, 0}); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied placing player on box, got %v", err)
	}
	if err := e.PlacePlayer(Position{50, 0}); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Expected ErrInvalidCell, got %v", err)
	}
	if _, err := e.PlaceBox(Position{0, 0}, "1"); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied placing box on player, got %v", err)
	}
	if _, err := e.PlaceBox(Position{0, 300}, "1"); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Expected ErrInvalidCell, got %v", err)
	}
}

func TestDescribeCell(t *testing.T) {
	e := createTestEngine(t)
	e.PlacePlayer(Position{0, 0})
	id, _ := e.PlaceBox(Position{100, 0}, "21")

	tests := []struct {
		pos      Position
		occupant string
		label    string
		boxID    BoxID
		col, row int
		distance int
	}{
		{Position{0, 0}, "player", PlayerLabel, 0, 0, 0, 0},
		{Position{100, 0}, "box", "21", id, 1, 0, 1},
		{Position{200, 0}, "free", "", 0, 2, 0, 2},
		{Position{300, 0}, "outside", "", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.occupant, func(t *testing.T) {
			info := e.DescribeCell(tt.pos)
			if info.Occupant != tt.occupant || info.Label != tt.label || info.BoxID != tt.boxID {
				t.Errorf("DescribeCell(%v) = %+v", tt.pos, info)
			}
			if info.Col != tt.col || info.Row != tt.row || info.Distance != tt.distance {
				t.Errorf("DescribeCell(%v) at (%d,%d) distance %d, want (%d,%d) distance %d",
					tt.pos, info.Col, info.Row, info.Distance, tt.col, tt.row, tt.distance)
			}
		})
	}

	t.Run("distance follows the player", func(t *testing.T) {
		e.PlacePlayer(Position{200, 200})
		if got := e.DescribeCell(Position{0, 0}).Distance; got != 4 {
			t.Errorf("Expected 4 cells from the player, got %d", got)
		}
	})
}

func TestSetConfig(t *testing.T) {
	e := arrange(t, Position{0, 0})
	e.Move("up")

	config := DefaultConfig()
	config.Name = "wide"
	config.Width = 500
	if err := e.SetConfig(config); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}

	state := e.GetState()
	if state.ConfigName != "wide" || e.Grid().Size() != 15 {
		t.Errorf("Config not applied: name=%s cells=%d", state.ConfigName, e.Grid().Size())
	}
	if state.TotalMoves != 0 {
		t.Error("Expected history cleared on config change")
	}

	bad := DefaultConfig()
	bad.Name = ""
	if err := e.SetConfig(bad); err == nil {
		t.Error("Expected error for invalid config")
	}
	if e.GetConfig().Name != "wide" {
		t.Error("Invalid config replaced the current one")
	}
}

func TestWithRand(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	e, err := NewEngine(DefaultConfig(), WithRand(r))
	if err != nil {
		t.Fatal(err)
	}
	if e.rng != r {
		t.Error("WithRand did not install the source")
	}
}

func TestManhattanDistance(t *testing.T) {
	if got := ManhattanDistance(Position{0, 0}, Position{200, 100}, 100); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := ManhattanDistance(Position{200, 0}, Position{0, 200}, 100); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}
}
