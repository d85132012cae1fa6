package vehicle

import "github.com/go-gl/mathgl/mgl64"

// Report summarizes one tick
// Slices are owned by the vehicle and overwritten by the next Tick
type Report struct {
	Tick         uint64
	DT           float64
	Speed        float64
	ForwardSpeed float64

	Wheels []WheelState

	// SlideStarted and SlideStopped list wheel indices whose sliding flag changed this tick
	SlideStarted []int
	SlideStopped []int
}

// SlidingCount returns how many wheels are sliding
func (r *Report) SlidingCount() int {
	n := 0
	for i := range r.Wheels {
		if r.Wheels[i].Sliding {
			n++
		}
	}
	return n
}

// SlidingFraction is SlidingCount over wheel count, 0 with no wheels
func (r *Report) SlidingFraction() float64 {
	if len(r.Wheels) == 0 {
		return 0
	}
	return float64(r.SlidingCount()) / float64(len(r.Wheels))
}

// ContactCount returns how many wheels touched ground
func (r *Report) ContactCount() int {
	n := 0
	for i := range r.Wheels {
		if r.Wheels[i].InContact {
			n++
		}
	}
	return n
}

// MaxSlip is the highest slip ratio among contacting wheels
func (r *Report) MaxSlip() float64 {
	m := 0.0
	for i := range r.Wheels {
		if r.Wheels[i].InContact && r.Wheels[i].SlipRatio > m {
			m = r.Wheels[i].SlipRatio
		}
	}
	return m
}

// TotalForce sums every wheel force submitted this tick
func (r *Report) TotalForce() mgl64.Vec3 {
	var f mgl64.Vec3
	for i := range r.Wheels {
		f = f.Add(r.Wheels[i].Forces.Total())
	}
	return f
}
