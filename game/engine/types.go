package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrCellOccupied     = errors.New("cell occupied")
	ErrInvalidCell      = errors.New("invalid cell")
)

const (
	// PlayerLabel is the display label of the player token
	PlayerLabel = "player"

	// Validation constants
	MinCellSize       = 1
	MaxCells          = 2500
	MinTickPeriodMs   = 10
	MaxTickPeriodMs   = 60000
	DefaultTickMs     = 1000
	DefaultLabelCount = 20
	MaxLabelCount     = 90
	MaxBulkMoves      = 50
)

// Position represents x,y coordinates in grid units (multiples of the cell size)
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the component-wise sum of two positions
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four movement directions
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// AllDirections returns the directions in the order possible moves are reported
func AllDirections() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// ParseDirection converts a direction name (case-insensitive) to a Direction
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right, Up, Down:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Delta returns the unit displacement of the direction. Up increases Y.
func (d Direction) Delta() Position {
	switch d {
	case Left:
		return Position{X: -1, Y: 0}
	case Right:
		return Position{X: 1, Y: 0}
	case Up:
		return Position{X: 0, Y: 1}
	case Down:
		return Position{X: 0, Y: -1}
	}
	return Position{}
}

// GameConfig represents a board configuration loaded from JSON or YAML
type GameConfig struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Height       int    `json:"height" yaml:"height"`
	Width        int    `json:"width" yaml:"width"`
	CellSize     int    `json:"cell_size" yaml:"cell_size"`
	TickPeriodMs int    `json:"tick_period_ms,omitempty" yaml:"tick_period_ms,omitempty"`
	LabelCount   int    `json:"label_count,omitempty" yaml:"label_count,omitempty"`
	Seed         int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	Messages     struct {
		Welcome   string `json:"welcome" yaml:"welcome"`
		Moved     string `json:"moved" yaml:"moved"`
		Pushed    string `json:"pushed" yaml:"pushed"`
		Blocked   string `json:"blocked" yaml:"blocked"`
		Spawned   string `json:"spawned" yaml:"spawned"`
		BoardFull string `json:"board_full" yaml:"board_full"`
	} `json:"messages" yaml:"messages"`
}

// GridInfo describes the board dimensions in a snapshot
type GridInfo struct {
	Height   int `json:"height"`
	Width    int `json:"width"`
	CellSize int `json:"cell_size"`
	Columns  int `json:"columns"`
	Rows     int `json:"rows"`
}

// EntityView is the snapshot of the player or a box
type EntityView struct {
	ID    BoxID    `json:"id,omitempty"`
	Label string   `json:"label"`
	Pos   Position `json:"pos"`
}

// GameState is a point-in-time snapshot of a board. It is rebuilt on every
// GetState call and never aliases live engine state.
type GameState struct {
	Grid         GridInfo     `json:"grid"`
	Player       EntityView   `json:"player"`
	Boxes        []EntityView `json:"boxes"`
	FreeCells    int          `json:"free_cells"`
	BoardFull    bool         `json:"board_full"`
	Message      string       `json:"message"`
	ConfigName   string       `json:"config_name"`
	TickCount    int          `json:"tick_count"`
	SpawnedCount int          `json:"spawned_count"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Board is a text view of the grid, top row first: '@' player, '#' box, '.' free
	Board []string `json:"board,omitempty"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       string      `json:"action"`
	FromPosition Position    `json:"from_position"`
	ToPosition   Position    `json:"to_position"`
	Success      bool        `json:"success"`
	Reason       BlockReason `json:"reason,omitempty"`
	PushedBox    BoxID       `json:"pushed_box,omitempty"`
	BoxFrom      *Position   `json:"box_from,omitempty"`
	BoxTo        *Position   `json:"box_to,omitempty"`
	Timestamp    int64       `json:"timestamp"`
	MoveNumber   int         `json:"move_number"`
}

// CellInfo describes what occupies a single cell
type CellInfo struct {
	Pos      Position `json:"pos"`
	Valid    bool     `json:"valid"`
	Occupant string   `json:"occupant"` // "player", "box", "free" or "outside"
	BoxID    BoxID    `json:"box_id,omitempty"`
	Label    string   `json:"label,omitempty"`
	Col      int      `json:"col"`
	Row      int      `json:"row"`
	Distance int      `json:"distance"` // cells from the player, valid cells only
}
