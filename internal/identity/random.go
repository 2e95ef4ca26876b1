package identity

import "math"

// seeded is a deterministic unit draw for seed s, in [0,1).
func seeded(s float64) float64 {
	x1 := float64(math.Sin(float64(s*12.9898)) * 43758.5453)
	x2 := float64(math.Sin(float64(s*78.233)) * 23421.6312)
	x3 := float64(math.Sin(float64(s*15.789)) * 67291.8472)
	c := (x1 + x2 + x3) / 3
	return c - math.Floor(c)
}

// scaled returns floor(r*n) as an int.
func scaled(r float64, n int) int {
	return int(math.Floor(r * float64(n)))
}

// seedFrom evaluates (base*mult + terms[0] + terms[1] ...) mod 999999991,
// adding left to right so float64 rounding happens in a fixed order.
func seedFrom(base, mult float64, terms ...float64) float64 {
	acc := float64(base * mult)
	for _, t := range terms {
		acc = float64(acc + t)
	}
	return math.Mod(acc, 999999991)
}
