package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/raycar/vmath"
)

// Squeal gates an endless source by a target intensity set from the sim
// SetIntensity is called from the tick loop; Stream runs on the speaker goroutine
type Squeal struct {
	source beep.Streamer
	rate   beep.SampleRate

	target atomic.Uint64 // float64 bits, 0..1
	gain   float64       // touched only by Stream

	attack  float64 // per-sample coefficient
	release float64
}

// NewSqueal wraps source; attack and release are slew rates in 1/s
func NewSqueal(source beep.Streamer, rate beep.SampleRate, attack, release float64) *Squeal {
	return &Squeal{
		source:  source,
		rate:    rate,
		attack:  slewCoefficient(attack, rate),
		release: slewCoefficient(release, rate),
	}
}

// slewCoefficient converts a 1/s rate to a one-pole per-sample step
func slewCoefficient(perSecond float64, rate beep.SampleRate) float64 {
	if perSecond <= 0 {
		return 1
	}
	return 1 - math.Exp(-perSecond/float64(rate))
}

// SetIntensity sets the target loudness, clamped to [0, 1]
func (s *Squeal) SetIntensity(x float64) {
	s.target.Store(math.Float64bits(vmath.Clamp01(x)))
}

func (s *Squeal) Intensity() float64 {
	return math.Float64frombits(s.target.Load())
}

func (s *Squeal) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = s.source.Stream(samples)
	target := s.Intensity()

	for i := 0; i < n; i++ {
		k := s.release
		if target > s.gain {
			k = s.attack
		}
		s.gain += (target - s.gain) * k

		samples[i][0] *= s.gain
		samples[i][1] *= s.gain
	}
	return n, ok
}

func (s *Squeal) Err() error { return s.source.Err() }
