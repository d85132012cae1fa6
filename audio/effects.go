package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/raycar/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
// duration 0 streams forever
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate

	// Pitch vibrato
	wobbleHz    float64
	wobbleDepth float64
	wobblePhase float64

	rng *rand.Rand
}

// NewOscillator creates an oscillator; duration 0 never ends
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newOscillator(freq, duration, wave, rate)
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(1)),
	}
}

// NewWobbleOscillator is an endless oscillator whose pitch swings by depth
// (fraction of freq) at wobbleHz
func NewWobbleOscillator(freq, wobbleHz, depth float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := newOscillator(freq, 0, wave, rate)
	o.wobbleHz = wobbleHz
	o.wobbleDepth = depth
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration > 0 && o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.wobbleHz > 0 {
			freq *= 1 + o.wobbleDepth*math.Sin(2*math.Pi*o.wobblePhase)
			o.wobblePhase += o.wobbleHz / float64(o.rate)
			o.wobblePhase -= math.Floor(o.wobblePhase)
		}

		// Advance phase, keep in [0, 1)
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// lowpass is a one-pole filter, y += a*(x-y)
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	y        [2]float64
}

func newLowpass(s beep.Streamer, cutoffHz float64, rate beep.SampleRate) *lowpass {
	dt := 1 / float64(rate)
	rc := 1 / (2 * math.Pi * cutoffHz)
	return &lowpass{streamer: s, alpha: dt / (rc + dt)}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			l.y[c] += l.alpha * (samples[i][c] - l.y[c])
			samples[i][c] = l.y[c]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateSquealSource is the endless un-gated squeal: wobbling tone plus filtered noise
func CreateSquealSource(rate beep.SampleRate) beep.Streamer {
	tone := NewWobbleOscillator(parameter.SquealToneHz, parameter.SquealWobbleHz, parameter.SquealWobbleDepth, WaveSine, rate)
	noise := newLowpass(NewOscillator(0, 0, WaveNoise, rate), parameter.SquealNoiseCutoffHz, rate)

	return beep.Mix(
		newVolume(tone, 1-parameter.SquealNoiseMix),
		newVolume(noise, parameter.SquealNoiseMix),
	)
}

// CreateChirp is the short bark when a tire breaks loose
func CreateChirp(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.ChirpHz, parameter.ChirpDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.ChirpDuration, parameter.ChirpAttack, parameter.ChirpRelease, rate)

	return newVolume(shaped, cfg.ChirpVolume*cfg.MasterVolume)
}
