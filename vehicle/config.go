package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/parameter"
)

var (
	ErrNoBody        = errors.New("vehicle needs a body and a ground caster")
	ErrNoWheels      = errors.New("vehicle has no wheels")
	ErrInvalidWheel  = errors.New("invalid wheel config")
	ErrInvalidTuning = errors.New("invalid tuning")
)

// WheelConfig is the immutable tuning of one wheel type
// Wheels of the same type share one *WheelConfig
type WheelConfig struct {
	RestLength      float64
	SpringStiffness float64
	SpringDamping   float64
	OverExtend      float64
	Radius          float64

	Drive bool
	Steer bool

	BaseGrip float64

	// GripCurve maps slip ratio to a grip multiplier; nil falls back to the
	// vehicle's curve.Grip
	GripCurve curve.Curve
}

// DefaultWheelConfig returns a wheel with parameter defaults
func DefaultWheelConfig(drive, steer bool) *WheelConfig {
	return &WheelConfig{
		RestLength:      parameter.WheelRestLength,
		SpringStiffness: parameter.WheelSpringStiffness,
		SpringDamping:   parameter.WheelSpringDamping,
		OverExtend:      parameter.WheelOverExtend,
		Radius:          parameter.WheelRadius,
		Drive:           drive,
		Steer:           steer,
		BaseGrip:        parameter.WheelBaseGrip,
	}
}

// CastLength is the full contact cast distance from the mount
func (c *WheelConfig) CastLength() float64 {
	return c.RestLength + c.Radius + c.OverExtend
}

func (c *WheelConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil", ErrInvalidWheel)
	}
	checks := []struct {
		name string
		v    float64
		min  float64
	}{
		{"rest length", c.RestLength, math.SmallestNonzeroFloat64},
		{"radius", c.Radius, math.SmallestNonzeroFloat64},
		{"spring stiffness", c.SpringStiffness, 0},
		{"spring damping", c.SpringDamping, 0},
		{"over extend", c.OverExtend, 0},
		{"base grip", c.BaseGrip, 0},
	}
	for _, ch := range checks {
		if math.IsNaN(ch.v) || math.IsInf(ch.v, 0) || ch.v < ch.min {
			return fmt.Errorf("%w: %s %v", ErrInvalidWheel, ch.name, ch.v)
		}
	}
	return nil
}

// Tuning holds the vehicle-wide force model constants
type Tuning struct {
	Gravity float64

	Acceleration           float64
	MaxSpeed               float64
	BrakingSpeedMultiplier float64
	ReverseSpeedMultiplier float64
	ReverseThreshold       float64

	SteeringMaxDegrees float64
	TireTurnSpeed      float64 // rad/s

	SlideThreshold    float64
	MinSlideSpeed     float64
	SlippingTraction  float64
	BrakingTraction   float64
	RollingResistance float64
	SlipEpsilon       float64

	WheelVisualSpeed float64

	SkidmarkCapacity int
	SkidmarkWidth    float64
	SkidmarkLift     float64
}

// DefaultTuning returns the parameter defaults
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:                parameter.Gravity,
		Acceleration:           parameter.Acceleration,
		MaxSpeed:               parameter.MaxSpeed,
		BrakingSpeedMultiplier: parameter.BrakingSpeedMultiplier,
		ReverseSpeedMultiplier: parameter.ReverseSpeedMultiplier,
		ReverseThreshold:       parameter.ReverseThreshold,
		SteeringMaxDegrees:     parameter.SteeringMaxDegrees,
		TireTurnSpeed:          parameter.TireTurnSpeed,
		SlideThreshold:         parameter.SlideThreshold,
		MinSlideSpeed:          parameter.MinSlideSpeed,
		SlippingTraction:       parameter.SlippingTraction,
		BrakingTraction:        parameter.BrakingTraction,
		RollingResistance:      parameter.RollingResistance,
		SlipEpsilon:            parameter.SlipEpsilon,
		WheelVisualSpeed:       parameter.WheelVisualSpeed,
		SkidmarkCapacity:       parameter.SkidmarkCapacity,
		SkidmarkWidth:          parameter.SkidmarkWidth,
		SkidmarkLift:           parameter.SkidmarkLift,
	}
}

func (t Tuning) Validate() error {
	if !(t.MaxSpeed > 0) {
		return fmt.Errorf("%w: max speed %v", ErrInvalidTuning, t.MaxSpeed)
	}
	if !(t.SlipEpsilon > 0) {
		return fmt.Errorf("%w: slip epsilon %v", ErrInvalidTuning, t.SlipEpsilon)
	}
	if t.SkidmarkCapacity < 1 {
		return fmt.Errorf("%w: skidmark capacity %d", ErrInvalidTuning, t.SkidmarkCapacity)
	}
	if t.SteeringMaxDegrees < 0 || t.SteeringMaxDegrees >= 90 {
		return fmt.Errorf("%w: steering max degrees %v", ErrInvalidTuning, t.SteeringMaxDegrees)
	}
	nonNeg := map[string]float64{
		"gravity":                  t.Gravity,
		"acceleration":             t.Acceleration,
		"braking speed multiplier": t.BrakingSpeedMultiplier,
		"reverse speed multiplier": t.ReverseSpeedMultiplier,
		"tire turn speed":          t.TireTurnSpeed,
		"slide threshold":          t.SlideThreshold,
		"min slide speed":          t.MinSlideSpeed,
		"slipping traction":        t.SlippingTraction,
		"braking traction":         t.BrakingTraction,
		"rolling resistance":       t.RollingResistance,
		"wheel visual speed":       t.WheelVisualSpeed,
		"skidmark width":           t.SkidmarkWidth,
		"skidmark lift":            t.SkidmarkLift,
	}
	for name, v := range nonNeg {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidTuning, name, v)
		}
	}
	return nil
}
