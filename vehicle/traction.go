package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/vmath"
)

type traction struct {
	Lateral   mgl64.Vec3
	Rolling   mgl64.Vec3
	SlipRatio float64
	Grip      float64
	Sliding   bool
}

// slipRatio is the sideways fraction of contact speed, 0..1
func slipRatio(lateralVel, speed, eps float64) float64 {
	return math.Abs(lateralVel) / math.Max(eps, speed)
}

// tractionForce resists sideways motion and applies rolling resistance
// Grip comes from the curve until the wheel breaks loose or brakes
func tractionForce(t Tuning, cfg *WheelConfig, grip curve.Curve, forward, lateral, pointVel mgl64.Vec3, wheelLoad float64, isBraking bool) traction {
	lateralVel := lateral.Dot(pointVel)
	speed := pointVel.Len()
	slip := slipRatio(lateralVel, speed, t.SlipEpsilon)

	g := cfg.BaseGrip * grip.Sample(vmath.Clamp01(slip))
	slipping := !isBraking && slip > t.SlideThreshold && speed >= t.MinSlideSpeed
	switch {
	case isBraking:
		g = t.BrakingTraction
	case slipping:
		g = t.SlippingTraction
	}

	forwardVel := forward.Dot(pointVel)
	return traction{
		Lateral:   lateral.Mul(-lateralVel * g * wheelLoad),
		Rolling:   forward.Mul(-forwardVel * t.RollingResistance * wheelLoad),
		SlipRatio: slip,
		Grip:      g,
		Sliding:   isBraking || slipping,
	}
}

// sampled adapts one Sampler id to a Curve
type sampled struct {
	s  curve.Sampler
	id curve.ID
}

func (c sampled) Sample(x float64) float64 { return c.s.Sample(c.id, x) }
