package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/parameter"
)

// Slot binds a body-local mount point to a shared wheel config
type Slot struct {
	Name   string
	Mount  mgl64.Vec3
	Config *WheelConfig
}

// Forces are the world-space forces one wheel submitted in a tick
type Forces struct {
	Suspension mgl64.Vec3
	Drive      mgl64.Vec3
	Lateral    mgl64.Vec3
	Rolling    mgl64.Vec3
}

// Total sums all wheel force components
func (f Forces) Total() mgl64.Vec3 {
	return f.Suspension.Add(f.Drive).Add(f.Lateral).Add(f.Rolling)
}

// WheelState is the per-slot runtime state, rewritten every tick
type WheelState struct {
	InContact       bool
	ContactPoint    mgl64.Vec3
	ContactNormal   mgl64.Vec3
	ContactDistance float64

	SteerAngle   float64 // rad, positive turns left
	SpringLength float64
	Compression  float64
	VisualOffset float64 // cosmetic wheel height below the mount, negative down

	SlipRatio float64
	Sliding   bool

	Forces Forces
}

// DefaultSlots returns a four-wheel layout: steering front, driven rear
// Front and rear pairs share one config each
func DefaultSlots() []Slot {
	front := DefaultWheelConfig(false, true)
	rear := DefaultWheelConfig(true, false)

	x, z := parameter.WheelHalfTrack, parameter.WheelHalfBase
	return []Slot{
		{Name: "front_left", Mount: mgl64.Vec3{-x, 0, -z}, Config: front},
		{Name: "front_right", Mount: mgl64.Vec3{x, 0, -z}, Config: front},
		{Name: "rear_left", Mount: mgl64.Vec3{-x, 0, z}, Config: rear},
		{Name: "rear_right", Mount: mgl64.Vec3{x, 0, z}, Config: rear},
	}
}
