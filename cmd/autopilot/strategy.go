package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
)

// Strategy decides the next direction. blocked is the set of directions that
// failed since the player last moved.
type Strategy interface {
	Next(blocked func(engine.Direction) bool) engine.Direction
	// Observe is told how the chosen move went
	Observe(d engine.Direction, moved bool)
}

// NewStrategy returns the strategy registered under name
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "random":
		return NewRandomStrategy(seed), nil
	case "sweep":
		return NewSweepStrategy(), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (use random or sweep)", name)
}

// RandomStrategy walks in a uniformly random direction, skipping directions
// already known to be blocked.
type RandomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

func (s *RandomStrategy) Next(blocked func(engine.Direction) bool) engine.Direction {
	var open []engine.Direction
	for _, d := range engine.AllDirections() {
		if !blocked(d) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return ""
	}
	return open[s.rng.IntN(len(open))]
}

func (s *RandomStrategy) Observe(engine.Direction, bool) {}

// SweepStrategy mows the board: it runs left or right until blocked, steps
// one cell up or down, then runs back the other way. Boxes in the lane get
// shoved toward the edges.
type SweepStrategy struct {
	lane engine.Direction
	step engine.Direction
}

func NewSweepStrategy() *SweepStrategy {
	return &SweepStrategy{lane: engine.Right, step: engine.Up}
}

func (s *SweepStrategy) Next(blocked func(engine.Direction) bool) engine.Direction {
	if !blocked(s.lane) {
		return s.lane
	}
	if blocked(s.step) {
		s.step = opposite(s.step)
	}
	if !blocked(s.step) {
		return s.step
	}
	s.lane = opposite(s.lane)
	if !blocked(s.lane) {
		return s.lane
	}
	return ""
}

func (s *SweepStrategy) Observe(d engine.Direction, moved bool) {
	if moved && d == s.step {
		s.lane = opposite(s.lane)
	}
}

func opposite(d engine.Direction) engine.Direction {
	switch d {
	case engine.Left:
		return engine.Right
	case engine.Right:
		return engine.Left
	case engine.Up:
		return engine.Down
	case engine.Down:
		return engine.Up
	}
	return d
}
