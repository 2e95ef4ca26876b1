package identity

import "math"

// Weighted is one entry of a weighted choice table.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// Choose maps a unit draw r in [0,1) onto table by cumulative weight:
// target = floor(r * total), and the first entry whose running sum exceeds
// target wins. fallback is returned when no entry qualifies, which can only
// happen for an empty table or a draw outside [0,1).
func Choose[T any](table []Weighted[T], r float64, fallback T) T {
	total := 0
	for _, e := range table {
		total += e.Weight
	}
	target := int(math.Floor(r * float64(total)))

	acc := 0
	for _, e := range table {
		acc += e.Weight
		if target < acc {
			return e.Value
		}
	}
	return fallback
}
