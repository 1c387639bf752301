package engine

import (
	"log"
	"math/rand/v2"
)

// SpawnOutcome reports what a single spawn attempt did
type SpawnOutcome struct {
	Spawned   bool     `json:"spawned"`
	BoxID     BoxID    `json:"box_id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Pos       Position `json:"pos"`
	FreeAfter int      `json:"free_after"`
	BoardFull bool     `json:"board_full"`
}

// Spawner places new boxes on random free cells
type Spawner struct {
	rng    *rand.Rand
	labels LabelPool
}

// NewSpawner creates a spawner drawing cells and labels from rng
func NewSpawner(rng *rand.Rand, labels LabelPool) *Spawner {
	return &Spawner{rng: rng, labels: labels}
}

// SpawnOne places one box on a uniformly chosen free cell with a uniformly
// chosen label. With no free cells it does nothing.
func (s *Spawner) SpawnOne(store *EntityStore, grid *Grid) SpawnOutcome {
	free := freeCells(grid, store)
	if len(free) == 0 {
		return SpawnOutcome{BoardFull: true}
	}

	pos := free[s.rng.IntN(len(free))]
	box, err := store.AddBox(pos, s.labels.Pick(s.rng))
	if err != nil {
		// pos came from the free set, so the store and grid disagree
		log.Printf("[SPAWN] add box at %s failed: %v", pos, err)
		return SpawnOutcome{}
	}

	return SpawnOutcome{
		Spawned:   true,
		BoxID:     box.ID(),
		Label:     box.Label(),
		Pos:       pos,
		FreeAfter: len(free) - 1,
		BoardFull: len(free) == 1,
	}
}
