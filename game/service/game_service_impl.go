package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
	"github.com/wricardo/mcp-training/fibbox/game/input"
)

// ErrConfigNotFound is matched against config manager errors to build a
// friendlier message listing the available boards
var ErrConfigNotFound = errors.New("configuration not found")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		NextTickAt:     sess.NextTickAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// session looks up a session and marks it accessed. Callers hold s.mu.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions ordered by ID
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sortedSessions()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	return s.move(sess, direction, events), nil
}

// move runs one direction on a session engine. Callers hold s.mu.
func (s *gameServiceImpl) move(sess *Session, direction string, events []GameEvent) *MoveResult {
	step, stepEvents := applyMove(sess.Engine, direction, 1)
	state := sess.Engine.GetState()

	return &MoveResult{
		Success:   step.Success,
		GameState: state,
		Message:   state.Message,
		Events:    append(events, stepEvents...),
		Step:      &step,
		Reason:    step.Reason,
	}
}

// BulkMove executes moves in sequence, stopping at the first blocked move
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartPos = sess.Engine.GetPlayerPosition()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		step, events := applyMove(sess.Engine, move, i+1)
		result.Events = append(result.Events, events...)
		result.Steps = append(result.Steps, step)

		if !step.Success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, move)
			result.StopReasonCode = string(step.Reason)
			result.StoppedOnMove = i + 1
			break
		}

		result.MovesExecuted++
		if step.PushedBox != 0 {
			result.BoxesPushed++
		}
	}

	state := sess.Engine.GetState()
	result.GameState = state
	result.EndPos = state.Player.Pos
	result.Message = state.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	return result, nil
}

// PressKey maps a raw key to a direction and moves. Unmapped keys are ignored.
func (s *gameServiceImpl) PressKey(ctx context.Context, sessionID, key string) (*KeyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	d, ok := input.MapKey(key)
	if !ok {
		return &KeyResult{
			Key:       key,
			GameState: sess.Engine.GetState(),
			Events: []GameEvent{{
				Type:      EventKeyIgnored,
				Message:   fmt.Sprintf("Key %q is not bound to a direction", key),
				Timestamp: time.Now(),
			}},
		}, nil
	}

	move := s.move(sess, string(d), []GameEvent{})
	return &KeyResult{
		Key:       key,
		Mapped:    true,
		Direction: string(d),
		Move:      move,
		GameState: move.GameState,
		Events:    move.Events,
	}, nil
}

// Reset resets a game session to a fresh board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Reset(), nil
}

// Tick runs one spawner step on a session immediately
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string) (*TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return tick(sess), nil
}

// TickDue runs the spawner on every session whose next tick is at or before
// now and returns what each spawn did. Sessions seen for the first time are
// scheduled one period ahead.
func (s *gameServiceImpl) TickDue(ctx context.Context, now time.Time) []*TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*TickResult
	for _, sess := range s.sortedSessions() {
		if ctx.Err() != nil {
			break
		}

		period := sess.Config.TickPeriod()
		if sess.NextTickAt.IsZero() {
			sess.NextTickAt = now.Add(period)
			continue
		}
		if now.Before(sess.NextTickAt) {
			continue
		}

		results = append(results, tick(sess))

		next := sess.NextTickAt.Add(period)
		if !next.After(now) {
			next = now.Add(period)
		}
		sess.NextTickAt = next
	}
	return results
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// DescribeCell reports what occupies a single cell
func (s *gameServiceImpl) DescribeCell(ctx context.Context, sessionID string, pos engine.Position) (*engine.CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	info := sess.Engine.DescribeCell(pos)
	return &info, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) sortedSessions() []*Session {
	sessions := s.sessions.List()
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

// applyMove performs one move on eng and describes it as a step and events
func applyMove(eng *engine.GameEngine, direction string, idx int) (StepInfo, []GameEvent) {
	eng.Move(direction)
	entry := eng.GetLastMove()
	now := time.Now()

	step := StepInfo{
		Idx:     idx,
		Dir:     entry.Action,
		From:    entry.FromPosition,
		To:      entry.ToPosition,
		Success: entry.Success,
		Reason:  entry.Reason,
	}

	if !entry.Success {
		return step, []GameEvent{{
			Type:      EventBlocked,
			Message:   fmt.Sprintf("Blocked moving %s from %s: %s", direction, entry.FromPosition, entry.Reason),
			Timestamp: now,
			Position:  entry.FromPosition,
		}}
	}

	var events []GameEvent
	if entry.PushedBox != 0 {
		step.PushedBox = entry.PushedBox
		step.BoxFrom = entry.BoxFrom
		step.BoxTo = entry.BoxTo
		step.BoxLabel = eng.DescribeCell(*entry.BoxTo).Label
		events = append(events, GameEvent{
			Type:      EventPush,
			Message:   fmt.Sprintf("Pushed box %s from %s to %s", step.BoxLabel, *entry.BoxFrom, *entry.BoxTo),
			Timestamp: now,
			Position:  *entry.BoxTo,
		})
	}
	events = append(events, GameEvent{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s to %s", entry.Action, entry.ToPosition),
		Timestamp: now,
		Position:  entry.ToPosition,
	})
	return step, events
}

// tick runs one spawner step on a session. Callers hold s.mu.
func tick(sess *Session) *TickResult {
	outcome := sess.Engine.Tick()
	result := &TickResult{
		SessionID: sess.ID,
		Spawned:   outcome.Spawned,
		BoxID:     outcome.BoxID,
		Label:     outcome.Label,
		Position:  outcome.Pos,
		FreeCells: outcome.FreeAfter,
		BoardFull: outcome.BoardFull,
		GameState: sess.Engine.GetState(),
	}

	now := time.Now()
	if outcome.Spawned {
		result.Events = append(result.Events, GameEvent{
			Type:      EventSpawn,
			Message:   fmt.Sprintf("Box %s appeared at %s", outcome.Label, outcome.Pos),
			Timestamp: now,
			Position:  outcome.Pos,
		})
	}
	if outcome.BoardFull {
		result.Events = append(result.Events, GameEvent{
			Type:      EventBoardFull,
			Message:   result.GameState.Message,
			Timestamp: now,
		})
	}
	return result
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to a fresh board",
		Timestamp: time.Now(),
	}
}
