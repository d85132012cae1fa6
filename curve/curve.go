// Package curve provides the 1D response curves used by the vehicle model
//
// A curve maps a normalized input in [0,1] to an output, usually a multiplier in
// [0,1]. Curves may be non-monotonic; the only contract is that Sample is
// deterministic, continuous, and clamps its input to the domain.
package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/raycar/vmath"
)

// ErrNoKeys is returned when a keyframe curve is built without points
var ErrNoKeys = errors.New("curve has no keyframes")

// Curve is a response function over [0,1]
type Curve interface {
	Sample(x float64) float64
}

// Constant returns the same value for every input
type Constant float64

func (c Constant) Sample(float64) float64 { return float64(c) }

// Key is one control point of a keyframe curve
type Key struct {
	X float64 `mapstructure:"x" json:"x"`
	Y float64 `mapstructure:"y" json:"y"`
}

// Keyframes is a piecewise-linear curve through sorted keys
// Inputs left of the first key or right of the last key hold the end value
type Keyframes struct {
	keys []Key
}

// NewKeyframes sorts keys by X and rejects empty or out-of-domain tables
func NewKeyframes(keys ...Key) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	for i, k := range sorted {
		if k.X < 0 || k.X > 1 {
			return nil, fmt.Errorf("key %d x=%v outside [0,1]", i, k.X)
		}
	}
	return &Keyframes{keys: sorted}, nil
}

// MustKeyframes is NewKeyframes for static tables, panics on error
func MustKeyframes(keys ...Key) *Keyframes {
	k, err := NewKeyframes(keys...)
	if err != nil {
		panic(err)
	}
	return k
}

// Linear returns a two-key curve from (0,from) to (1,to)
func Linear(from, to float64) *Keyframes {
	return MustKeyframes(Key{0, from}, Key{1, to})
}

func (k *Keyframes) Sample(x float64) float64 {
	x = vmath.Clamp01(x)
	keys := k.keys

	if x <= keys[0].X {
		return keys[0].Y
	}
	last := keys[len(keys)-1]
	if x >= last.X {
		return last.Y
	}

	// First key with X > x; keys[i-1].X <= x < keys[i].X
	i := sort.Search(len(keys), func(i int) bool { return keys[i].X > x })
	a, b := keys[i-1], keys[i]
	span := b.X - a.X
	if span <= 0 {
		return b.Y
	}
	t := (x - a.X) / span
	return a.Y + (b.Y-a.Y)*t
}
