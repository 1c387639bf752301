package engine

import (
	"fmt"
	"iter"
)

// Grid is the immutable lattice of valid cells. The X coordinate runs along
// the configured height and the Y coordinate along the width, both in steps
// of the cell size.
type Grid struct {
	height   int
	width    int
	cellSize int
	cells    []Position
}

// CellsAlong yields 0, step, 2*step, ... while the value is below length.
// The sequence can be ranged over any number of times.
func CellsAlong(length, step int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if step <= 0 {
			return
		}
		for v := 0; v < length; v += step {
			if !yield(v) {
				return
			}
		}
	}
}

// NewGrid builds the cell set for the given dimensions
func NewGrid(height, width, cellSize int) (*Grid, error) {
	if cellSize < MinCellSize {
		return nil, fmt.Errorf("cell size must be at least %d, got %d", MinCellSize, cellSize)
	}
	if height < cellSize || width < cellSize {
		return nil, fmt.Errorf("grid %dx%d cannot hold a single %d cell", height, width, cellSize)
	}

	g := &Grid{height: height, width: width, cellSize: cellSize}
	for i := range CellsAlong(height, cellSize) {
		for j := range CellsAlong(width, cellSize) {
			g.cells = append(g.cells, Position{X: i, Y: j})
		}
	}
	return g, nil
}

// Cells returns a copy of every valid cell in construction order
func (g *Grid) Cells() []Position {
	out := make([]Position, len(g.cells))
	copy(out, g.cells)
	return out
}

// IsValid reports whether pos is one of the grid's cells
func (g *Grid) IsValid(pos Position) bool {
	if pos.X < 0 || pos.X >= g.height || pos.X%g.cellSize != 0 {
		return false
	}
	return pos.Y >= 0 && pos.Y < g.width && pos.Y%g.cellSize == 0
}

// Step returns the position one cell away from pos in direction d.
// The result is not checked against the grid.
func (g *Grid) Step(pos Position, d Direction) Position {
	delta := d.Delta()
	return pos.Add(Position{X: delta.X * g.cellSize, Y: delta.Y * g.cellSize})
}

// CellAt converts cell coordinates to a position
func (g *Grid) CellAt(col, row int) Position {
	return Position{X: col * g.cellSize, Y: row * g.cellSize}
}

// Coords converts a position to cell coordinates
func (g *Grid) Coords(pos Position) (col, row int) {
	return pos.X / g.cellSize, pos.Y / g.cellSize
}

func (g *Grid) Height() int   { return g.height }
func (g *Grid) Width() int    { return g.width }
func (g *Grid) CellSize() int { return g.cellSize }
func (g *Grid) Size() int     { return len(g.cells) }

// Columns is the number of distinct X values
func (g *Grid) Columns() int {
	return (g.height + g.cellSize - 1) / g.cellSize
}

// Rows is the number of distinct Y values
func (g *Grid) Rows() int {
	return (g.width + g.cellSize - 1) / g.cellSize
}

// Info returns the snapshot description of the grid
func (g *Grid) Info() GridInfo {
	return GridInfo{
		Height:   g.height,
		Width:    g.width,
		CellSize: g.cellSize,
		Columns:  g.Columns(),
		Rows:     g.Rows(),
	}
}
