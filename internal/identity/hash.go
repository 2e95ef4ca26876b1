package identity

import (
	"math"
	"unicode/utf16"
)

const hashSalt = "artcom_ultra_salt_2024_v2"

// units returns s as UTF-16 code units, the indexing used by every
// rolling hash in this package.
func units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// toInt32 wraps an integral float64 modulo 2^32 into the signed 32-bit range.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(f), 4294967296))))
}

// mixHash runs the three accumulators over name|card|salt and folds them
// into a non-negative float64 seed. The fold is evaluated in float64 on
// purpose: the products exceed 2^53 and their rounding is part of the output.
func mixHash(name, card string) float64 {
	h1 := int32(5381)
	h2 := int32(7919)
	h3 := toInt32(2166136261)

	for i, u := range units(name + "|" + card + "|" + hashSalt) {
		c := int64(u)
		idx := int64(i)

		h1 = int32(int64(h1<<5) + int64(h1) + c)
		h2 = int32(int64(h2<<7)+int64(h2)+c*(idx+1)+idx*37) ^ int32(c)
		h3 ^= int32(c)
		h3 = toInt32(float64(float64(h3) * 16777619))
	}

	x := float64(h1 ^ h2 ^ h3)
	p1 := float64(float64(h1) * float64(h2))
	p2 := float64(float64(h2) * float64(h3))
	return math.Abs(float64(x+p1) + p2)
}

// djb2 is the simple 32-bit hash used for fallback names.
func djb2(s string) int64 {
	h := int32(5381)
	for _, u := range units(s) {
		h = int32(int64(h<<5) + int64(h) + int64(u))
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
