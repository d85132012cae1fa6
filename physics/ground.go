package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/vmath"
)

// Plane is an infinite flat ground through Point with unit Normal
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

// FlatGround returns the y=0 plane
func FlatGround() Plane {
	return Plane{Normal: vmath.Up}
}

func (p Plane) CastContact(origin, direction mgl64.Vec3, length float64) Contact {
	n := vmath.SafeNormalize(p.Normal)
	denom := direction.Dot(n)
	// Parallel or casting away from the surface
	if denom > -vmath.Epsilon {
		return Contact{}
	}
	t := p.Point.Sub(origin).Dot(n) / denom
	if t < 0 || t > length {
		return Contact{}
	}
	return Contact{
		Hit:      true,
		Point:    origin.Add(direction.Mul(t)),
		Normal:   n,
		Distance: t,
	}
}

// HeightField is terrain defined by a height function over the XZ plane
type HeightField struct {
	Height func(x, z float64) float64

	// Step is the ray-march increment; zero uses 0.05
	Step float64
}

const (
	defaultFieldStep  = 0.05
	fieldRefineIters  = 16
	fieldNormalSample = 0.01
)

func (h HeightField) CastContact(origin, direction mgl64.Vec3, length float64) Contact {
	if h.Height == nil || length <= 0 {
		return Contact{}
	}
	step := h.Step
	if step <= 0 {
		step = defaultFieldStep
	}

	above := func(t float64) float64 {
		p := origin.Add(direction.Mul(t))
		return p[1] - h.Height(p[0], p[2])
	}

	// Origin already below the surface counts as contact at zero distance
	if above(0) <= 0 {
		return h.contactAt(origin, direction, 0)
	}

	prev := 0.0
	for t := step; ; t += step {
		if t > length {
			t = length
		}
		if above(t) <= 0 {
			lo, hi := prev, t
			for i := 0; i < fieldRefineIters; i++ {
				mid := (lo + hi) / 2
				if above(mid) > 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			return h.contactAt(origin, direction, hi)
		}
		if t >= length {
			return Contact{}
		}
		prev = t
	}
}

func (h HeightField) contactAt(origin, direction mgl64.Vec3, t float64) Contact {
	p := origin.Add(direction.Mul(t))
	return Contact{
		Hit:      true,
		Point:    mgl64.Vec3{p[0], h.Height(p[0], p[2]), p[2]},
		Normal:   h.normalAt(p[0], p[2]),
		Distance: t,
	}
}

func (h HeightField) normalAt(x, z float64) mgl64.Vec3 {
	e := fieldNormalSample
	dx := (h.Height(x+e, z) - h.Height(x-e, z)) / (2 * e)
	dz := (h.Height(x, z+e) - h.Height(x, z-e)) / (2 * e)
	n := vmath.SafeNormalize(mgl64.Vec3{-dx, 1, -dz})
	if math.IsNaN(n[0]) || vmath.IsZero(n) {
		return vmath.Up
	}
	return n
}
