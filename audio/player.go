package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/raycar/parameter"
)

// Player owns the speaker, the looping squeal and one-shot chirps
// Every method is safe before Initialize and after Cleanup
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	squeal      *Squeal
	squealCtrl  *beep.Ctrl
	initialized bool
}

func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	return &Player{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		squeal: NewSqueal(CreateSquealSource(rate), rate, cfg.SquealAttack, cfg.SquealRelease),
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	p.squealCtrl = &beep.Ctrl{Streamer: newVolume(p.squeal, p.cfg.SquealVolume*p.cfg.MasterVolume)}
	speaker.Lock()
	p.mixer.Add(p.squealCtrl)
	speaker.Unlock()

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetSlide drives squeal loudness from the fraction of sliding wheels
func (p *Player) SetSlide(fraction float64) {
	p.squeal.SetIntensity(fraction)
}

// Chirp plays a one-shot slide-start bark
func (p *Player) Chirp() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(CreateChirp(p.cfg))
	speaker.Unlock()
}

// Cleanup silences everything and clears the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.squealCtrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	p.initialized = false
}

// Squeal exposes the intensity-gated streamer
func (p *Player) Squeal() *Squeal { return p.squeal }
