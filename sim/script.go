package sim

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/raycar/vehicle"
	"github.com/lixenwraith/raycar/vmath"
)

var ErrEmptyScript = errors.New("script has no keys")

// Key is one control point of a scripted drive
// Steer is signed, positive left
type Key struct {
	At       time.Duration `mapstructure:"at" json:"at"`
	Throttle float64       `mapstructure:"throttle" json:"throttle"`
	Brake    float64       `mapstructure:"brake" json:"brake"`
	Steer    float64       `mapstructure:"steer" json:"steer"`
}

// Script interpolates driver input linearly between keys
// Before the first key and after the last the end values hold
type Script struct {
	keys []Key
}

func NewScript(keys ...Key) (*Script, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyScript
	}
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	if sorted[0].At < 0 {
		return nil, fmt.Errorf("script key at %v: negative time", sorted[0].At)
	}
	return &Script{keys: sorted}, nil
}

// Duration is the time of the last key
func (s *Script) Duration() time.Duration {
	return s.keys[len(s.keys)-1].At
}

func (s *Script) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// At returns the interpolated input at t
func (s *Script) At(t time.Duration) vehicle.Input {
	k := s.keys
	if t <= k[0].At {
		return k[0].input()
	}
	last := k[len(k)-1]
	if t >= last.At {
		return last.input()
	}

	i := sort.Search(len(k), func(i int) bool { return k[i].At > t })
	a, b := k[i-1], k[i]
	f := float64(t-a.At) / float64(b.At-a.At)
	return Key{
		Throttle: lerp(a.Throttle, b.Throttle, f),
		Brake:    lerp(a.Brake, b.Brake, f),
		Steer:    lerp(a.Steer, b.Steer, f),
	}.input()
}

func (k Key) input() vehicle.Input {
	in := vehicle.Input{
		Throttle: vmath.Clamp01(k.Throttle),
		Brake:    vmath.Clamp01(k.Brake),
	}
	in.SetSteer(k.Steer)
	return in
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }

// DemoKeys is a launch, a hard left flick into a slide, a brake, and a short reverse
func DemoKeys() []Key {
	s := time.Second
	return []Key{
		{At: 0, Throttle: 1},
		{At: 4 * s, Throttle: 1},
		{At: 4*s + 200*time.Millisecond, Throttle: 0.6, Steer: 1},
		{At: 6 * s, Throttle: 0.6, Steer: 1},
		{At: 6*s + 200*time.Millisecond, Brake: 1},
		{At: 9 * s, Brake: 1},
		{At: 12 * s, Brake: 1, Steer: -0.5},
		{At: 12*s + 100*time.Millisecond},
		{At: 14 * s},
	}
}
