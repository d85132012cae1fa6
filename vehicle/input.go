package vehicle

import "github.com/lixenwraith/raycar/vmath"

// Input is the driver control snapshot, all axes 0..1
type Input struct {
	Throttle   float64
	Brake      float64
	SteerLeft  float64
	SteerRight float64
}

// Clamped returns the input with every axis limited to [0, 1]
func (in Input) Clamped() Input {
	return Input{
		Throttle:   vmath.Clamp01(in.Throttle),
		Brake:      vmath.Clamp01(in.Brake),
		SteerLeft:  vmath.Clamp01(in.SteerLeft),
		SteerRight: vmath.Clamp01(in.SteerRight),
	}
}

// Steer returns the signed steering axis, positive left
func (in Input) Steer() float64 {
	return in.SteerLeft - in.SteerRight
}

// SetSteer splits a signed axis in [-1, 1] into left/right components
func (in *Input) SetSteer(axis float64) {
	axis = vmath.Clamp(axis, -1, 1)
	in.SteerLeft, in.SteerRight = 0, 0
	if axis > 0 {
		in.SteerLeft = axis
	} else {
		in.SteerRight = -axis
	}
}
