package service

import (
	"time"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
)

// Event types carried in results and broadcasts
const (
	EventMove       = "move"
	EventPush       = "push"
	EventBlocked    = "blocked"
	EventSpawn      = "spawn"
	EventBoardFull  = "board_full"
	EventReset      = "reset"
	EventKeyIgnored = "key_ignored"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	NextTickAt     time.Time          `json:"next_tick_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool               `json:"success"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Step      *StepInfo          `json:"step,omitempty"`
	Reason    engine.BlockReason `json:"reason,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // out_of_grid|push_out_of_grid|push_obstructed|invalid_direction
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos    engine.Position `json:"start_pos"`
	EndPos      engine.Position `json:"end_pos"`
	BoxesPushed int             `json:"boxes_pushed"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx       int                `json:"idx"`
	Dir       string             `json:"dir"`
	From      engine.Position    `json:"from"`
	To        engine.Position    `json:"to"`
	Success   bool               `json:"success"`
	Reason    engine.BlockReason `json:"reason,omitempty"`
	PushedBox engine.BoxID       `json:"pushed_box,omitempty"`
	BoxLabel  string             `json:"box_label,omitempty"`
	BoxFrom   *engine.Position   `json:"box_from,omitempty"`
	BoxTo     *engine.Position   `json:"box_to,omitempty"`
}

// KeyResult is the outcome of a raw key press. Unmapped keys are ignored and
// leave the board untouched.
type KeyResult struct {
	Key       string            `json:"key"`
	Mapped    bool              `json:"mapped"`
	Direction string            `json:"direction,omitempty"`
	Move      *MoveResult       `json:"move,omitempty"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// TickResult is the outcome of one spawner step on a session
type TickResult struct {
	SessionID string            `json:"session_id"`
	Spawned   bool              `json:"spawned"`
	BoxID     engine.BoxID      `json:"box_id,omitempty"`
	Label     string            `json:"label,omitempty"`
	Position  engine.Position   `json:"position"`
	FreeCells int               `json:"free_cells"`
	BoardFull bool              `json:"board_full"`
	GameState *engine.GameState `json:"game_state"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "push", "blocked", "spawn", "board_full", "reset", "key_ignored"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	CellSize     int    `json:"cell_size"`
	Cells        int    `json:"cells"`
	TickPeriodMs int    `json:"tick_period_ms"`
}
