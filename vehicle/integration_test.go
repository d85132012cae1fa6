package vehicle

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/raycar/parameter"
	"github.com/lixenwraith/raycar/physics"
)

const step = 1.0 / 60

func newCar(t *testing.T) (*Vehicle, *physics.RigidBody) {
	t.Helper()
	body := physics.NewBoxBody(parameter.VehicleMass,
		mgl64.Vec3{parameter.VehicleWidth, parameter.VehicleHeight, parameter.VehicleLength})
	body.Position = mgl64.Vec3{0, parameter.WheelRestLength + parameter.WheelRadius, 0}

	v, err := New(body, physics.FlatGround(), DefaultSlots(), DefaultTuning())
	require.NoError(t, err)
	return v, body
}

func run(v *Vehicle, body *physics.RigidBody, ticks int) {
	for i := 0; i < ticks; i++ {
		v.Tick(step)
		body.Integrate(step)
	}
}

func TestCarSettlesOnSuspension(t *testing.T) {
	v, body := newCar(t)
	run(v, body, 300)

	assert.Less(t, v.Speed(), 0.05)
	assert.InDelta(t, 0.7, body.Position.Y(), 0.1)

	staticCompression := parameter.VehicleMass * parameter.Gravity / 4 / parameter.WheelSpringStiffness
	for i := 0; i < v.WheelCount(); i++ {
		w := v.Wheel(i)
		assert.True(t, w.InContact, "wheel %d", i)
		assert.False(t, w.Sliding, "wheel %d", i)
		assert.InDelta(t, staticCompression, w.Compression, 0.02, "wheel %d", i)
	}
}

func TestCarAcceleratesForward(t *testing.T) {
	v, body := newCar(t)
	run(v, body, 180)

	startZ := body.Position.Z()
	v.SetInput(Input{Throttle: 1})
	run(v, body, 120)

	assert.Greater(t, v.ForwardSpeed(), 3.0)
	assert.Less(t, body.Position.Z(), startZ)
	for i := 0; i < v.WheelCount(); i++ {
		assert.False(t, v.Sliding(i), "wheel %d slid in a straight line", i)
	}
}

func TestCarSteersLeft(t *testing.T) {
	v, body := newCar(t)
	run(v, body, 180)

	v.SetInput(Input{Throttle: 1})
	run(v, body, 120)
	v.SetInput(Input{Throttle: 0.3, SteerLeft: 1})
	run(v, body, 30)

	assert.Greater(t, body.Angular.Y(), 0.0, "positive yaw turns left")
	assert.Greater(t, v.Wheel(0).SteerAngle, 0.0)
}

func TestCarBrakesThenReverses(t *testing.T) {
	v, body := newCar(t)
	run(v, body, 180)
	v.SetInput(Input{Throttle: 1})
	run(v, body, 60)
	moving := v.ForwardSpeed()
	require.Greater(t, moving, 0.5)

	v.SetInput(Input{Brake: 1})
	v.Tick(step)
	for i := 0; i < v.WheelCount(); i++ {
		assert.True(t, v.Sliding(i), "wheel %d should skid under braking", i)
	}
	body.Integrate(step)

	run(v, body, 600)
	assert.Less(t, v.ForwardSpeed(), 0.0, "sustained brake from rest reverses")
}
