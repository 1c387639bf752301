package engine

import (
	"slices"
	"testing"
)

func TestFreePositions(t *testing.T) {
	g, _ := NewGrid(300, 300, 100)

	t.Run("empty board", func(t *testing.T) {
		free := FreePositions(g.Cells(), Position{0, 0}, nil)
		if len(free) != 8 {
			t.Errorf("Expected 8 free cells, got %d", len(free))
		}
		if slices.Contains(free, Position{0, 0}) {
			t.Error("Player cell reported free")
		}
	})

	t.Run("with boxes", func(t *testing.T) {
		boxes := []Position{{100, 0}, {200, 0}}
		free := FreePositions(g.Cells(), Position{0, 0}, boxes)
		if len(free) != 6 {
			t.Errorf("Expected 6 free cells, got %d", len(free))
		}
		for _, b := range boxes {
			if slices.Contains(free, b) {
				t.Errorf("Box cell %v reported free", b)
			}
		}
	})

	t.Run("preserves cell order", func(t *testing.T) {
		free := FreePositions(g.Cells(), Position{0, 100}, []Position{{0, 0}})
		if free[0] != (Position{0, 200}) {
			t.Errorf("Expected first free cell (0,200), got %v", free[0])
		}
	})

	t.Run("full board", func(t *testing.T) {
		cells := g.Cells()
		free := FreePositions(cells, cells[0], cells[1:])
		if len(free) != 0 {
			t.Errorf("Expected no free cells, got %v", free)
		}
	})
}

func TestEntityStore(t *testing.T) {
	s := NewEntityStore(Position{0, 0})

	if _, err := s.AddBox(Position{0, 0}, "1"); err == nil {
		t.Error("Expected error adding box on the player")
	}

	b1, err := s.AddBox(Position{100, 0}, "1")
	if err != nil {
		t.Fatalf("AddBox failed: %v", err)
	}
	b2, err := s.AddBox(Position{200, 0}, "1")
	if err != nil {
		t.Fatalf("AddBox failed: %v", err)
	}

	// Same label, different identity
	if b1.ID() == b2.ID() {
		t.Error("Boxes with equal labels share an ID")
	}
	if _, err := s.AddBox(Position{100, 0}, "2"); err == nil {
		t.Error("Expected error adding box on a box")
	}

	s.Relocate(b1, Position{100, 100})
	if _, ok := s.BoxAt(Position{100, 0}); ok {
		t.Error("Old position still occupied after relocate")
	}
	if got, ok := s.BoxAt(Position{100, 100}); !ok || got.ID() != b1.ID() {
		t.Error("New position not indexed after relocate")
	}

	s.Relocate(s.Player(), Position{100, 0})
	if !s.Occupied(Position{100, 0}) || s.Occupied(Position{0, 0}) {
		t.Error("Player relocation not reflected in occupancy")
	}

	if _, ok := s.Box(0); ok {
		t.Error("BoxID 0 should not resolve")
	}
	if _, ok := s.Box(3); ok {
		t.Error("Unknown BoxID should not resolve")
	}
	if s.Count() != 2 {
		t.Errorf("Expected 2 boxes, got %d", s.Count())
	}
}
