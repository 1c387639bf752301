package engine

import "github.com/zyedidia/generic/mapset"

// FreePositions returns the cells of allCells occupied by neither the player
// nor any box, in allCells order. It is a pure function of its inputs and is
// meant to be recomputed whenever the store changes.
func FreePositions(allCells []Position, player Position, boxes []Position) []Position {
	occupied := mapset.New[Position]()
	occupied.Put(player)
	for _, b := range boxes {
		occupied.Put(b)
	}

	free := make([]Position, 0, len(allCells))
	for _, c := range allCells {
		if !occupied.Has(c) {
			free = append(free, c)
		}
	}
	return free
}

// freeCells computes the free cells of a store on a grid
func freeCells(grid *Grid, store *EntityStore) []Position {
	return FreePositions(grid.cells, store.Player().Position(), store.BoxPositions())
}
