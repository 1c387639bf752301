package engine

import "fmt"

// BlockReason explains why a move was rejected
type BlockReason string

const (
	BlockedNone             BlockReason = ""
	BlockedOutOfGrid        BlockReason = "out_of_grid"
	BlockedPushOutOfGrid    BlockReason = "push_out_of_grid"
	BlockedPushObstructed   BlockReason = "push_obstructed"
	BlockedInvalidDirection BlockReason = "invalid_direction"
)

// Push describes a box moved as part of a player move
type Push struct {
	BoxID BoxID    `json:"box_id"`
	Label string   `json:"label"`
	From  Position `json:"from"`
	To    Position `json:"to"`
}

// MoveOutcome is the result of a movement request. A failed outcome means
// nothing on the board changed.
type MoveOutcome struct {
	Direction Direction   `json:"direction"`
	Success   bool        `json:"success"`
	From      Position    `json:"from"`
	To        Position    `json:"to"`
	Target    Position    `json:"target"`
	Push      *Push       `json:"push,omitempty"`
	Reason    BlockReason `json:"reason,omitempty"`
}

// Err returns nil for a successful move and a wrapped ErrInvalidMove otherwise
func (o MoveOutcome) Err() error {
	if o.Success {
		return nil
	}
	return fmt.Errorf("%w: %s from %s to %s (%s)", ErrInvalidMove, o.Direction, o.From, o.Target, o.Reason)
}

// Resolver validates and performs player moves on a store
type Resolver struct {
	grid  *Grid
	store *EntityStore
}

// NewResolver creates a resolver for the given grid and store
func NewResolver(grid *Grid, store *EntityStore) *Resolver {
	return &Resolver{grid: grid, store: store}
}

// Plan computes the outcome of moving in direction d without mutating anything
func (r *Resolver) Plan(d Direction) MoveOutcome {
	from := r.store.Player().Position()
	outcome := MoveOutcome{Direction: d, From: from, To: from}

	if d.Delta() == (Position{}) {
		outcome.Target = from
		outcome.Reason = BlockedInvalidDirection
		return outcome
	}

	target := r.grid.Step(from, d)
	outcome.Target = target

	if box, ok := r.store.BoxAt(target); ok {
		// Only the adjacent box is considered; a box behind it blocks the push.
		beyond := r.grid.Step(target, d)
		if !r.grid.IsValid(beyond) {
			outcome.Reason = BlockedPushOutOfGrid
			return outcome
		}
		if r.store.Occupied(beyond) {
			outcome.Reason = BlockedPushObstructed
			return outcome
		}
		outcome.Success = true
		outcome.To = target
		outcome.Push = &Push{BoxID: box.ID(), Label: box.Label(), From: target, To: beyond}
		return outcome
	}

	if !r.grid.IsValid(target) {
		outcome.Reason = BlockedOutOfGrid
		return outcome
	}

	outcome.Success = true
	outcome.To = target
	return outcome
}

// MovePlayer validates the move fully, then commits it. The pushed box is
// relocated before the player so the vacated cell is free for the player.
func (r *Resolver) MovePlayer(d Direction) MoveOutcome {
	outcome := r.Plan(d)
	if !outcome.Success {
		return outcome
	}

	if outcome.Push != nil {
		box, _ := r.store.Box(outcome.Push.BoxID)
		r.store.Relocate(box, outcome.Push.To)
	}
	r.store.Relocate(r.store.Player(), outcome.To)
	return outcome
}
