package skidmark

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/vmath"
)

// State is the per-wheel trail state
type State uint8

const (
	Idle State = iota
	Sliding
)

func (s State) String() string {
	if s == Sliding {
		return "sliding"
	}
	return "idle"
}

// Config sizes a trail
type Config struct {
	Capacity int
	Width    float64
	Lift     float64
}

// Sample is the per-tick input to a trail
type Sample struct {
	Sliding   bool
	InContact bool

	Position mgl64.Vec3 // contact point
	Normal   mgl64.Vec3 // contact normal
	Velocity mgl64.Vec3 // contact point velocity
	Up       mgl64.Vec3 // vehicle up axis

	// Fallback width axis when velocity is zero, usually the wheel's lateral axis
	Fallback mgl64.Vec3
}

// Trail turns consecutive sliding samples into connected segments
type Trail struct {
	cfg   Config
	ring  *Ring
	state State

	hasPrev   bool
	prevLeft  mgl64.Vec3
	prevRight mgl64.Vec3
}

// NewTrail creates an idle trail with its own ring
func NewTrail(cfg Config) *Trail {
	return &Trail{
		cfg:  cfg,
		ring: NewRing(cfg.Capacity),
	}
}

// Ring exposes the segment buffer for rendering
func (t *Trail) Ring() *Ring { return t.ring }

// State returns Idle or Sliding
func (t *Trail) State() State { return t.state }

// Update advances the state machine, returns true when a segment was emitted
func (t *Trail) Update(s Sample) bool {
	if !s.Sliding || !s.InContact {
		t.state = Idle
		t.hasPrev = false
		return false
	}
	t.state = Sliding

	axis := vmath.SafeNormalize(vmath.SafeNormalize(s.Velocity).Cross(s.Up))
	if vmath.IsZero(axis) {
		axis = vmath.SafeNormalize(s.Fallback)
	}

	pos := s.Position.Add(s.Normal.Mul(t.cfg.Lift))
	half := axis.Mul(t.cfg.Width / 2)
	left := pos.Add(half)
	right := pos.Sub(half)

	emitted := false
	if t.hasPrev {
		t.ring.Push(Segment{
			StartLeft:  t.prevLeft,
			StartRight: t.prevRight,
			EndLeft:    left,
			EndRight:   right,
		})
		emitted = true
	}

	t.prevLeft, t.prevRight = left, right
	t.hasPrev = true
	return emitted
}

// Reset clears trail geometry and returns to Idle
func (t *Trail) Reset() {
	t.ring.Reset()
	t.state = Idle
	t.hasPrev = false
}
