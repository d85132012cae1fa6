package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/vmath"
)

// steerTarget is the desired wheel yaw for the current input and speed response
func steerTarget(in Input, t Tuning, speedSample float64) float64 {
	maxRad := vmath.Deg2Rad(t.SteeringMaxDegrees)
	return vmath.Clamp(in.Steer()*speedSample*maxRad, -maxRad, maxRad)
}

// stepSteer slews the angle toward target at rate rad/s
func stepSteer(current, target, rate, dt float64) float64 {
	return vmath.MoveTowards(current, target, rate*dt)
}

// wheelAxes yaws the body forward/right axes by angle about up
func wheelAxes(up, forward, right mgl64.Vec3, angle float64) (mgl64.Vec3, mgl64.Vec3) {
	if angle == 0 {
		return forward, right
	}
	q := mgl64.QuatRotate(angle, up)
	return q.Rotate(forward), q.Rotate(right)
}
