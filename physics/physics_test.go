package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/raycar/vmath"
)

func TestPlaneCastHit(t *testing.T) {
	ground := FlatGround()
	c := ground.CastContact(mgl64.Vec3{1, 0.8, 2}, mgl64.Vec3{0, -1, 0}, 1)

	if !c.Hit {
		t.Fatal("expected hit")
	}
	assert.InDelta(t, 0.8, c.Distance, 1e-12)
	assert.True(t, vecNear(c.Point, mgl64.Vec3{1, 0, 2}, 1e-9), "point %v", c.Point)
	assert.True(t, vecNear(c.Normal, vmath.Up, 1e-9), "normal %v", c.Normal)
}

func TestPlaneCastMisses(t *testing.T) {
	ground := FlatGround()
	tests := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
		length    float64
	}{
		{"out of range", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, -1, 0}, 1},
		{"casting upward", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 1, 0}, 10},
		{"parallel", mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{1, 0, 0}, 10},
		{"origin below", mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{0, -1, 0}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := ground.CastContact(tt.origin, tt.direction, tt.length); c.Hit {
				t.Errorf("unexpected hit %+v", c)
			}
		})
	}
}

func TestHeightFieldFlatMatchesPlane(t *testing.T) {
	field := HeightField{Height: func(x, z float64) float64 { return 0.25 }}
	c := field.CastContact(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 2)

	if !c.Hit {
		t.Fatal("expected hit")
	}
	assert.InDelta(t, 0.75, c.Distance, 1e-4)
	assert.InDelta(t, 0.25, c.Point[1], 1e-12)
	assert.True(t, vecNear(c.Normal, vmath.Up, 1e-9))
}

func TestHeightFieldSlopeNormal(t *testing.T) {
	// 45° ramp rising along +X
	field := HeightField{Height: func(x, z float64) float64 { return x }}
	c := field.CastContact(mgl64.Vec3{0.5, 2, 0}, mgl64.Vec3{0, -1, 0}, 3)

	if !c.Hit {
		t.Fatal("expected hit")
	}
	want := mgl64.Vec3{-1, 1, 0}.Normalize()
	assert.True(t, vecNear(c.Normal, want, 1e-6), "normal %v", c.Normal)
	assert.InDelta(t, 1.5, c.Distance, 1e-4)
}

func TestHeightFieldMiss(t *testing.T) {
	field := HeightField{Height: func(x, z float64) float64 { return -5 }}
	if c := field.CastContact(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, -1, 0}, 2); c.Hit {
		t.Errorf("unexpected hit %+v", c)
	}
}

func TestRigidBodyFreeFall(t *testing.T) {
	b := NewBoxBody(1000, mgl64.Vec3{2, 1, 4})
	dt := 1.0 / 60
	for i := 0; i < 60; i++ {
		b.Integrate(dt)
	}
	assert.InDelta(t, -StandardGravity, b.Linear[1], 1e-9)
	assert.Less(t, b.Position[1], -4.8)
}

func TestRigidBodyForceAtOffsetSpins(t *testing.T) {
	b := NewBoxBody(100, mgl64.Vec3{1, 1, 1})
	b.Gravity = mgl64.Vec3{}

	// Push +Z at a point on +X: torque about -Y
	b.ApplyForce(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{1, 0, 0})
	assert.True(t, vecNear(b.PendingTorque(), mgl64.Vec3{0, -10, 0}, 1e-9), "torque %v", b.PendingTorque())

	b.Integrate(0.1)
	assert.Less(t, b.Angular[1], 0.0)
	assert.InDelta(t, 0.01, b.Linear[2], 1e-12)
	assert.True(t, vecNear(b.PendingForce(), mgl64.Vec3{}, 1e-9), "accumulator not cleared")
}

func TestRigidBodyOrientationStaysUnit(t *testing.T) {
	b := NewBoxBody(10, mgl64.Vec3{1, 1, 1})
	b.Gravity = mgl64.Vec3{}
	b.Angular = mgl64.Vec3{0.3, 2, -1}
	for i := 0; i < 500; i++ {
		b.Integrate(1.0 / 120)
	}
	assert.InDelta(t, 1.0, b.Orientation.Len(), 1e-9)
}

func TestStateAxesFollowOrientation(t *testing.T) {
	s := State{Orientation: mgl64.QuatRotate(math.Pi/2, vmath.Up)}
	// Quarter turn left: forward (-Z) becomes -X
	assert.True(t, vecNear(s.Forward(), mgl64.Vec3{-1, 0, 0}, 1e-9), "forward %v", s.Forward())
	assert.True(t, vecNear(s.Up(), vmath.Up, 1e-9))
}

func TestStateVelocityAtPoint(t *testing.T) {
	s := State{
		Orientation:  mgl64.QuatIdent(),
		Linear:       mgl64.Vec3{0, 0, -5},
		Angular:      mgl64.Vec3{0, 1, 0},
		CenterOfMass: mgl64.Vec3{0, 0, 0},
	}
	got := s.VelocityAtPoint(mgl64.Vec3{1, 0, 0})
	assert.True(t, vecNear(got, mgl64.Vec3{0, 0, -6}, 1e-9), "got %v", got)
}

// vecNear compares by absolute distance; mgl64's ApproxEqual is relative and
// rejects float noise against an exact zero component
func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
