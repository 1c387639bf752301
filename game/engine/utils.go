package engine

import "strings"

// Board glyphs used by BoardRows
const (
	GlyphPlayer = '@'
	GlyphBox    = '#'
	GlyphFree   = '.'
)

// BoardRows renders the store as text rows. The first row is the highest Y,
// so "up" points towards the top of the printout.
func BoardRows(grid *Grid, store *EntityStore) []string {
	cols, rows := grid.Columns(), grid.Rows()
	lines := make([]string, 0, rows)
	for row := rows - 1; row >= 0; row-- {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			pos := grid.CellAt(col, row)
			switch {
			case store.Player().Position() == pos:
				b.WriteRune(GlyphPlayer)
			case store.Occupied(pos):
				b.WriteRune(GlyphBox)
			default:
				b.WriteRune(GlyphFree)
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// ManhattanDistance calculates the distance between two positions in cells
func ManhattanDistance(from, to Position, cellSize int) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	return (dx + dy) / cellSize
}
