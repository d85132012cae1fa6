package vehicle

import "github.com/go-gl/mathgl/mgl64"

type driveMode uint8

const (
	driveNone driveMode = iota
	driveThrottle
	driveBrake
	driveReverse
)

func (m driveMode) String() string {
	switch m {
	case driveThrottle:
		return "throttle"
	case driveBrake:
		return "brake"
	case driveReverse:
		return "reverse"
	default:
		return "none"
	}
}

// braking reports whether brake input decelerates rather than reverses
func braking(in Input, t Tuning, forwardSpeed float64) bool {
	return in.Brake > 0 && forwardSpeed > t.ReverseThreshold
}

// driveForce is the longitudinal push for one contacting wheel
// Brake dominates throttle; reversing drives every wheel, the rest only drive wheels
func driveForce(in Input, t Tuning, cfg *WheelConfig, forward mgl64.Vec3, forwardSpeed, accelSample float64) (mgl64.Vec3, driveMode) {
	if in.Brake > 0 {
		backward := t.Acceleration * -in.Brake * accelSample
		if braking(in, t, forwardSpeed) {
			if !cfg.Drive {
				return mgl64.Vec3{}, driveBrake
			}
			return forward.Mul(backward * t.BrakingSpeedMultiplier), driveBrake
		}
		return forward.Mul(backward * t.ReverseSpeedMultiplier), driveReverse
	}

	if in.Throttle > 0 && cfg.Drive {
		return forward.Mul(t.Acceleration * in.Throttle * accelSample), driveThrottle
	}
	return mgl64.Vec3{}, driveNone
}
