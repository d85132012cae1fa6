package curve

import "github.com/lixenwraith/raycar/vmath"

// DefaultLUTSize is the resolution used by Bake when size is not positive
const DefaultLUTSize = 256

// LUT is a curve pre-sampled into a fixed table
// Sampling interpolates between neighbouring entries, O(1) with no search
type LUT struct {
	table []float64
}

// Bake samples c at size evenly spaced points over [0,1]
func Bake(c Curve, size int) *LUT {
	if size < 2 {
		size = DefaultLUTSize
	}
	table := make([]float64, size)
	for i := range table {
		table[i] = c.Sample(float64(i) / float64(size-1))
	}
	return &LUT{table: table}
}

// Len returns the table resolution
func (l *LUT) Len() int { return len(l.table) }

func (l *LUT) Sample(x float64) float64 {
	x = vmath.Clamp01(x)
	last := len(l.table) - 1

	pos := x * float64(last)
	idx := int(pos)
	if idx >= last {
		return l.table[last]
	}
	frac := pos - float64(idx)

	v0 := l.table[idx]
	v1 := l.table[idx+1]
	return v0 + (v1-v0)*frac
}
