package engine

import "fmt"

// Positioned is the capability shared by the player and boxes. Movement
// logic lives in the Resolver and works on either through this interface.
type Positioned interface {
	Position() Position
	Label() string
}

// Player is the singleton token that initiates moves
type Player struct {
	pos Position
}

func (p *Player) Position() Position { return p.pos }
func (p *Player) Label() string      { return PlayerLabel }

// BoxID is the stable identity of a box. Zero means no box.
type BoxID int

// Box is an obstacle with a Fibonacci label. Its position changes when it is
// pushed; its ID never does.
type Box struct {
	id    BoxID
	label string
	pos   Position
}

func (b *Box) ID() BoxID          { return b.id }
func (b *Box) Position() Position { return b.pos }
func (b *Box) Label() string      { return b.label }

// EntityStore owns the player and all boxes. Boxes live in an arena indexed
// by BoxID-1 and a position index keeps occupancy lookups constant time.
type EntityStore struct {
	player *Player
	boxes  []*Box
	byPos  map[Position]BoxID
}

// NewEntityStore creates a store with the player at pos and no boxes
func NewEntityStore(pos Position) *EntityStore {
	return &EntityStore{
		player: &Player{pos: pos},
		byPos:  make(map[Position]BoxID),
	}
}

// Player returns the player entity
func (s *EntityStore) Player() *Player {
	return s.player
}

// Boxes returns every box ordered by ID
func (s *EntityStore) Boxes() []*Box {
	out := make([]*Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// Box looks up a box by ID
func (s *EntityStore) Box(id BoxID) (*Box, bool) {
	if id < 1 || int(id) > len(s.boxes) {
		return nil, false
	}
	return s.boxes[id-1], true
}

// BoxAt returns the box occupying pos, if any
func (s *EntityStore) BoxAt(pos Position) (*Box, bool) {
	id, ok := s.byPos[pos]
	if !ok {
		return nil, false
	}
	return s.boxes[id-1], true
}

// BoxPositions returns the positions of all boxes ordered by ID
func (s *EntityStore) BoxPositions() []Position {
	out := make([]Position, len(s.boxes))
	for i, b := range s.boxes {
		out[i] = b.pos
	}
	return out
}

// Occupied reports whether the player or a box is on pos
func (s *EntityStore) Occupied(pos Position) bool {
	if s.player.pos == pos {
		return true
	}
	_, ok := s.byPos[pos]
	return ok
}

// Count returns the number of boxes
func (s *EntityStore) Count() int {
	return len(s.boxes)
}

// AddBox places a new box on an empty cell and returns it
func (s *EntityStore) AddBox(pos Position, label string) (*Box, error) {
	if s.Occupied(pos) {
		return nil, fmt.Errorf("%w: %s", ErrCellOccupied, pos)
	}
	b := &Box{id: BoxID(len(s.boxes) + 1), label: label, pos: pos}
	s.boxes = append(s.boxes, b)
	s.byPos[pos] = b.id
	return b, nil
}

// Relocate moves an entity to pos. The caller has already checked that pos
// is a free valid cell.
func (s *EntityStore) Relocate(e Positioned, pos Position) {
	switch v := e.(type) {
	case *Player:
		v.pos = pos
	case *Box:
		delete(s.byPos, v.pos)
		v.pos = pos
		s.byPos[pos] = v.id
	}
}
