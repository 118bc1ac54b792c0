package wheel

import "math"

// DefaultFiller is the entry interleaved after every participant in
// alternate mode.
const DefaultFiller = "Snake"

// Expand returns the effective selection sequence: names unchanged, or with
// filler inserted after every name when alternate is set.
func Expand(names []string, alternate bool, filler string) []string {
	if !alternate {
		out := make([]string, len(names))
		copy(out, names)
		return out
	}
	out := make([]string, 0, 2*len(names))
	for _, n := range names {
		out = append(out, n, filler)
	}
	return out
}

// NormalizeAngle maps any angle into [0,360).
func NormalizeAngle(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	return n
}

// PointerAngle is the wheel-frame angle under the fixed top pointer when
// the wheel has rotated clockwise by rotation degrees.
func PointerAngle(rotation float64) float64 {
	return NormalizeAngle(360 - NormalizeAngle(rotation))
}

// WinningIndex returns the index of the segment under the pointer for a
// wheel of count equal segments, or -1 when count is not positive.
func WinningIndex(rotation float64, count int) int {
	if count <= 0 {
		return -1
	}
	segment := 360 / float64(count)
	idx := int(math.Floor(PointerAngle(rotation) / segment))
	return ((idx % count) + count) % count
}
