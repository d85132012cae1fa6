package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/physics"
)

// stubBody returns a fixed state and records submitted forces
type stubBody struct {
	state  physics.State
	mass   float64
	forces []appliedForce

	// casts seen by the paired stubCaster when each force arrived
	castsAtApply []int
	caster       *stubCaster

	// mutate perturbs the state on every ApplyForce
	mutate bool
}

func newStubBody() *stubBody {
	return &stubBody{
		state: physics.State{Orientation: mgl64.QuatIdent()},
		mass:  1000,
	}
}

func (b *stubBody) State() physics.State { return b.state }
func (b *stubBody) Mass() float64        { return b.mass }

func (b *stubBody) ApplyForce(force, offset mgl64.Vec3) {
	b.forces = append(b.forces, appliedForce{force, offset})
	if b.caster != nil {
		b.castsAtApply = append(b.castsAtApply, b.caster.casts)
	}
	if b.mutate {
		b.state.Linear = b.state.Linear.Add(mgl64.Vec3{100, 100, 100})
	}
}

func (b *stubBody) total() mgl64.Vec3 {
	var f mgl64.Vec3
	for _, e := range b.forces {
		f = f.Add(e.force)
	}
	return f
}

// stubCaster reports ground at a fixed distance below every origin
type stubCaster struct {
	hit      bool
	distance float64
	casts    int
}

func (c *stubCaster) CastContact(origin, direction mgl64.Vec3, length float64) physics.Contact {
	c.casts++
	if !c.hit || c.distance > length {
		return physics.Contact{}
	}
	return physics.Contact{
		Hit:      true,
		Point:    origin.Add(direction.Mul(c.distance)),
		Normal:   mgl64.Vec3{0, 1, 0},
		Distance: c.distance,
	}
}

func oneWheel(drive, steer bool) []Slot {
	return []Slot{{Name: "solo", Config: DefaultWheelConfig(drive, steer)}}
}

func restDistance(cfg *WheelConfig) float64 {
	return cfg.RestLength + cfg.Radius
}

// vecNear compares by absolute distance; mgl64's ApproxEqual is relative and
// rejects float noise against an exact zero component
func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
