package engine

import (
	"math/rand/v2"
	"strconv"
)

// Fibonacci returns the first n Fibonacci numbers starting 1, 1, 2, 3, 5
func Fibonacci(n int) []int64 {
	out := make([]int64, 0, n)
	a, b := int64(1), int64(1)
	for i := 0; i < n; i++ {
		out = append(out, a)
		a, b = b, a+b
	}
	return out
}

// LabelPool is the set of labels a spawned box can carry. Duplicated values
// (the leading 1, 1) are kept so every Fibonacci entry is equally likely.
type LabelPool []string

// NewLabelPool builds the pool from the first n Fibonacci numbers
func NewLabelPool(n int) LabelPool {
	fib := Fibonacci(n)
	pool := make(LabelPool, len(fib))
	for i, v := range fib {
		pool[i] = strconv.FormatInt(v, 10)
	}
	return pool
}

// Pick returns a uniformly random label
func (lp LabelPool) Pick(r *rand.Rand) string {
	return lp[r.IntN(len(lp))]
}

// contains reports whether label belongs to the pool
func (lp LabelPool) contains(label string) bool {
	for _, l := range lp {
		if l == label {
			return true
		}
	}
	return false
}
