package engine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	GetPlayerPosition() Position
	FreeCells() []Position

	// Movement operations
	Move(direction string) bool
	TryMove(d Direction) MoveOutcome
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Spawning
	Tick() SpawnOutcome

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Inspection
	DescribeCell(pos Position) CellInfo
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize moves and ticks.
type GameEngine struct {
	config   *GameConfig
	rng      *rand.Rand
	grid     *Grid
	labels   LabelPool
	store    *EntityStore
	resolver *Resolver
	spawner  *Spawner

	message      string
	tickCount    int
	spawnedCount int
	history      []MoveHistoryEntry
	current      []MoveHistoryEntry
}

// Option customizes a GameEngine
type Option func(*GameEngine)

// WithRand sets the random source used for player placement and spawning
func WithRand(r *rand.Rand) Option {
	return func(e *GameEngine) {
		e.rng = r
	}
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand(config.Seed)
	}

	if err := e.setup(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in config
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return e
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// setup builds the grid, label pool and a fresh store with the player on a
// random cell
func (e *GameEngine) setup() error {
	grid, err := NewGrid(e.config.Height, e.config.Width, e.config.CellSize)
	if err != nil {
		return fmt.Errorf("failed to build grid: %w", err)
	}
	e.grid = grid
	e.labels = NewLabelPool(e.config.LabelPoolSize())
	e.spawner = NewSpawner(e.rng, e.labels)
	e.resetBoard()
	return nil
}

func (e *GameEngine) resetBoard() {
	cells := e.grid.cells
	e.store = NewEntityStore(cells[e.rng.IntN(len(cells))])
	e.resolver = NewResolver(e.grid, e.store)
	e.tickCount = 0
	e.spawnedCount = 0
	e.message = messageOr(e.config.Messages.Welcome, defaultWelcome)
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	player := e.store.Player()
	boxes := e.store.Boxes()
	views := make([]EntityView, len(boxes))
	for i, b := range boxes {
		views[i] = EntityView{ID: b.ID(), Label: b.Label(), Pos: b.Position()}
	}
	free := len(freeCells(e.grid, e.store))

	return &GameState{
		Grid:              e.grid.Info(),
		Player:            EntityView{Label: player.Label(), Pos: player.Position()},
		Boxes:             views,
		FreeCells:         free,
		BoardFull:         free == 0,
		Message:           e.message,
		ConfigName:        e.config.Name,
		TickCount:         e.tickCount,
		SpawnedCount:      e.spawnedCount,
		MoveHistory:       append([]MoveHistoryEntry{}, e.history...),
		TotalMoves:        len(e.history),
		CurrentMoves:      append([]MoveHistoryEntry{}, e.current...),
		CurrentMovesCount: len(e.current),
		Board:             BoardRows(e.grid, e.store),
	}
}

// Reset clears all boxes and places the player on a new random cell.
// Cumulative move history is preserved; the current segment is cleared.
func (e *GameEngine) Reset() *GameState {
	e.resetBoard()
	e.current = nil
	return e.GetState()
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.store.Player().Position()
}

// FreeCells returns the cells occupied by neither the player nor a box
func (e *GameEngine) FreeCells() []Position {
	return freeCells(e.grid, e.store)
}

// Grid returns the board lattice
func (e *GameEngine) Grid() *Grid {
	return e.grid
}

// Move attempts to move the player in the named direction
func (e *GameEngine) Move(direction string) bool {
	d, err := ParseDirection(direction)
	if err != nil {
		from := e.GetPlayerPosition()
		e.message = messageOr(e.config.Messages.Blocked, defaultBlocked, direction)
		e.record(MoveOutcome{Direction: Direction(direction), From: from, To: from, Target: from, Reason: BlockedInvalidDirection})
		return false
	}
	return e.TryMove(d).Success
}

// TryMove moves the player and returns the full outcome
func (e *GameEngine) TryMove(d Direction) MoveOutcome {
	outcome := e.resolver.MovePlayer(d)

	switch {
	case !outcome.Success:
		e.message = messageOr(e.config.Messages.Blocked, defaultBlocked, string(d))
	case outcome.Push != nil:
		e.message = messageOr(e.config.Messages.Pushed, defaultPushed, outcome.Push.Label)
	default:
		e.message = messageOr(e.config.Messages.Moved, defaultMoved, string(d))
	}

	e.record(outcome)
	return outcome
}

// CanMove checks if the player can move in the named direction
func (e *GameEngine) CanMove(direction string) bool {
	d, err := ParseDirection(direction)
	if err != nil {
		return false
	}
	return e.resolver.Plan(d).Success
}

// GetPossibleMoves returns all directions the player can currently move
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, d := range AllDirections() {
		if e.resolver.Plan(d).Success {
			possible = append(possible, string(d))
		}
	}
	return possible
}

// BulkMove executes moves in sequence, stopping after the first failure
func (e *GameEngine) BulkMove(moves []string) []bool {
	if len(moves) > MaxBulkMoves {
		moves = moves[:MaxBulkMoves]
	}

	results := make([]bool, 0, len(moves))
	for _, direction := range moves {
		success := e.Move(direction)
		results = append(results, success)
		if !success {
			break
		}
	}
	return results
}

// Tick runs one spawner step
func (e *GameEngine) Tick() SpawnOutcome {
	e.tickCount++
	outcome := e.spawner.SpawnOne(e.store, e.grid)

	switch {
	case outcome.Spawned:
		e.spawnedCount++
		e.message = messageOr(e.config.Messages.Spawned, defaultSpawned, outcome.Label)
	case outcome.BoardFull:
		e.message = messageOr(e.config.Messages.BoardFull, defaultBoardFull)
	}
	return outcome
}

// PlacePlayer moves the player directly to pos, bypassing movement rules
// but not the occupancy invariant
func (e *GameEngine) PlacePlayer(pos Position) error {
	if !e.grid.IsValid(pos) {
		return fmt.Errorf("%w: %s", ErrInvalidCell, pos)
	}
	if _, ok := e.store.BoxAt(pos); ok {
		return fmt.Errorf("%w: %s", ErrCellOccupied, pos)
	}
	e.store.Relocate(e.store.Player(), pos)
	return nil
}

// PlaceBox adds a box at pos. An empty label draws one from the pool.
func (e *GameEngine) PlaceBox(pos Position, label string) (BoxID, error) {
	if !e.grid.IsValid(pos) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCell, pos)
	}
	if label == "" {
		label = e.labels.Pick(e.rng)
	}
	box, err := e.store.AddBox(pos, label)
	if err != nil {
		return 0, err
	}
	return box.ID(), nil
}

// DescribeCell reports what occupies pos
func (e *GameEngine) DescribeCell(pos Position) CellInfo {
	info := CellInfo{Pos: pos, Valid: e.grid.IsValid(pos)}
	if info.Valid {
		player := e.store.Player().Position()
		info.Col, info.Row = e.grid.Coords(pos)
		info.Distance = ManhattanDistance(player, pos, e.grid.CellSize())
	}
	switch {
	case !info.Valid:
		info.Occupant = "outside"
	case e.store.Player().Position() == pos:
		info.Occupant = "player"
		info.Label = PlayerLabel
	default:
		if box, ok := e.store.BoxAt(pos); ok {
			info.Occupant = "box"
			info.BoxID = box.ID()
			info.Label = box.Label()
		} else {
			info.Occupant = "free"
		}
	}
	return info
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and rebuilds the board
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	prev := e.config
	e.config = config
	if err := e.setup(); err != nil {
		e.config = prev
		return err
	}
	e.history = nil
	e.current = nil
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// record appends a move to the cumulative and current histories
func (e *GameEngine) record(o MoveOutcome) {
	entry := MoveHistoryEntry{
		Action:       string(o.Direction),
		FromPosition: o.From,
		ToPosition:   o.To,
		Success:      o.Success,
		Reason:       o.Reason,
		Timestamp:    time.Now().Unix(),
		MoveNumber:   len(e.history) + 1,
	}
	if o.Push != nil {
		from, to := o.Push.From, o.Push.To
		entry.PushedBox = o.Push.BoxID
		entry.BoxFrom = &from
		entry.BoxTo = &to
	}
	e.history = append(e.history, entry)
	e.current = append(e.current, entry)
}
