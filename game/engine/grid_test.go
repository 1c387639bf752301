package engine

import (
	"slices"
	"testing"
)

func TestCellsAlong(t *testing.T) {
	tests := []struct {
		name         string
		length, step int
		expected     []int
	}{
		{"exact multiple", 300, 100, []int{0, 100, 200}},
		{"partial last cell", 250, 100, []int{0, 100, 200}},
		{"single cell", 100, 100, []int{0}},
		{"unit step", 3, 1, []int{0, 1, 2}},
		{"zero length", 0, 100, nil},
		{"zero step", 300, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(CellsAlong(tt.length, tt.step))
			if !slices.Equal(got, tt.expected) {
				t.Errorf("CellsAlong(%d, %d) = %v, want %v", tt.length, tt.step, got, tt.expected)
			}
		})
	}
}

func TestCellsAlong_Restartable(t *testing.T) {
	seq := CellsAlong(300, 100)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("Second pass %v differs from first %v", second, first)
	}
}

func TestNewGrid_Cells(t *testing.T) {
	g, err := NewGrid(300, 300, 100)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if g.Size() != 9 {
		t.Fatalf("Expected 9 cells, got %d", g.Size())
	}

	expected := []Position{
		{0, 0}, {0, 100}, {0, 200},
		{100, 0}, {100, 100}, {100, 200},
		{200, 0}, {200, 100}, {200, 200},
	}
	if !slices.Equal(g.Cells(), expected) {
		t.Errorf("Cells() = %v, want %v", g.Cells(), expected)
	}
}

func TestNewGrid_NonSquare(t *testing.T) {
	// X spans the height, Y spans the width
	g, err := NewGrid(200, 400, 100)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.Columns() != 2 || g.Rows() != 4 {
		t.Errorf("Expected 2 columns x 4 rows, got %d x %d", g.Columns(), g.Rows())
	}
	if !g.IsValid(Position{100, 300}) {
		t.Error("(100,300) should be valid")
	}
	if g.IsValid(Position{300, 100}) {
		t.Error("(300,100) should be invalid")
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name                     string
		height, width, cellSize int
	}{
		{"zero cell size", 300, 300, 0},
		{"height below cell", 50, 300, 100},
		{"width below cell", 300, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.height, tt.width, tt.cellSize); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestGrid_IsValid(t *testing.T) {
	g, _ := NewGrid(300, 300, 100)

	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"origin", Position{0, 0}, true},
		{"last cell", Position{200, 200}, true},
		{"past height", Position{300, 0}, false},
		{"past width", Position{0, 300}, false},
		{"negative x", Position{-100, 0}, false},
		{"negative y", Position{0, -100}, false},
		{"off lattice", Position{50, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsValid(tt.pos); got != tt.expected {
				t.Errorf("IsValid(%v) = %v, want %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestGrid_StepAndCoords(t *testing.T) {
	g, _ := NewGrid(300, 300, 100)

	if got := g.Step(Position{100, 100}, Up); got != (Position{100, 200}) {
		t.Errorf("Step up = %v, want (100,200)", got)
	}
	if got := g.Step(Position{0, 0}, Left); got != (Position{-100, 0}) {
		t.Errorf("Step left = %v, want (-100,0)", got)
	}

	col, row := g.Coords(Position{200, 100})
	if col != 2 || row != 1 {
		t.Errorf("Coords = (%d,%d), want (2,1)", col, row)
	}
	if g.CellAt(col, row) != (Position{200, 100}) {
		t.Errorf("CellAt(%d,%d) did not round-trip", col, row)
	}
}

func TestGrid_CellsIsCopy(t *testing.T) {
	g, _ := NewGrid(300, 300, 100)
	cells := g.Cells()
	cells[0] = Position{999, 999}
	if g.Cells()[0] != (Position{0, 0}) {
		t.Error("Mutating Cells() result changed the grid")
	}
}
