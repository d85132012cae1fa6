// Package vmath holds the float64 vector helpers shared by the vehicle model
// Vectors are mgl64 values; every helper here is zero-safe so the per-tick
// force code never has to branch on degenerate input
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the magnitude below which a vector is treated as zero
const Epsilon = 1e-9

// World axes, Y up, -Z forward
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, -1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1], NaN maps to 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// MoveTowards steps current toward target by at most maxDelta
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta <= 0 {
		return current
	}
	d := target - current
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

// SafeNormalize returns the unit vector of v, or zero for a zero-length input
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// IsZero reports whether v is shorter than Epsilon
func IsZero(v mgl64.Vec3) bool {
	return v.Len() < Epsilon
}

// PointVelocity returns v + ω × r, the velocity of a point offset r from the centre of mass
func PointVelocity(linear, angular, offset mgl64.Vec3) mgl64.Vec3 {
	return linear.Add(angular.Cross(offset))
}

// Deg2Rad converts degrees to radians
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
