package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StandardGravity is Earth gravity in m/s²
const StandardGravity = 9.81

// RigidBody is a minimal 6-DOF body with box inertia
// Forces accumulate between Integrate calls and are cleared after each step
type RigidBody struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Linear      mgl64.Vec3
	Angular     mgl64.Vec3

	// Gravity is acceleration applied every step, world space
	Gravity mgl64.Vec3

	// LinearDamping and AngularDamping are per-second velocity decay fractions
	LinearDamping  float64
	AngularDamping float64

	mass       float64
	invMass    float64
	invInertia mgl64.Vec3 // body-space diagonal
	localCOM   mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3
}

// NewBoxBody creates a body with the inertia of a solid box of the given full extents
func NewBoxBody(mass float64, size mgl64.Vec3) *RigidBody {
	w, h, l := size[0], size[1], size[2]
	inertia := mgl64.Vec3{
		mass / 12 * (h*h + l*l),
		mass / 12 * (w*w + l*l),
		mass / 12 * (w*w + h*h),
	}

	b := &RigidBody{
		Orientation: mgl64.QuatIdent(),
		Gravity:     mgl64.Vec3{0, -StandardGravity, 0},
		mass:        mass,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	for i := range inertia {
		if inertia[i] > 0 {
			b.invInertia[i] = 1 / inertia[i]
		}
	}
	return b
}

// SetCenterOfMass moves the centre of mass, body-local
func (b *RigidBody) SetCenterOfMass(local mgl64.Vec3) {
	b.localCOM = local
}

func (b *RigidBody) Mass() float64 { return b.mass }

func (b *RigidBody) State() State {
	return State{
		Position:     b.Position,
		Orientation:  b.Orientation,
		Linear:       b.Linear,
		Angular:      b.Angular,
		CenterOfMass: b.Position.Add(b.Orientation.Rotate(b.localCOM)),
	}
}

// ApplyForce adds force and the torque it produces about the centre of mass
func (b *RigidBody) ApplyForce(force, offset mgl64.Vec3) {
	b.force = b.force.Add(force)
	b.torque = b.torque.Add(offset.Cross(force))
}

// PendingForce returns the force accumulated since the last Integrate
func (b *RigidBody) PendingForce() mgl64.Vec3 { return b.force }

// PendingTorque returns the torque accumulated since the last Integrate
func (b *RigidBody) PendingTorque() mgl64.Vec3 { return b.torque }

// Integrate advances the body by dt using semi-implicit Euler: v += a*dt; p += v*dt
func (b *RigidBody) Integrate(dt float64) {
	if dt <= 0 || b.invMass == 0 {
		b.clearAccumulators()
		return
	}

	accel := b.force.Mul(b.invMass).Add(b.Gravity)
	b.Linear = b.Linear.Add(accel.Mul(dt))
	b.Angular = b.Angular.Add(b.worldInvInertia().Mul3x1(b.torque).Mul(dt))

	if b.LinearDamping > 0 {
		b.Linear = b.Linear.Mul(math.Max(0, 1-b.LinearDamping*dt))
	}
	if b.AngularDamping > 0 {
		b.Angular = b.Angular.Mul(math.Max(0, 1-b.AngularDamping*dt))
	}

	// Rotation about the centre of mass moves the origin when COM is offset
	comBefore := b.Orientation.Rotate(b.localCOM)

	spin := mgl64.Quat{W: 0, V: b.Angular}.Mul(b.Orientation).Scale(0.5 * dt)
	b.Orientation = b.Orientation.Add(spin).Normalize()

	comAfter := b.Orientation.Rotate(b.localCOM)
	b.Position = b.Position.Add(b.Linear.Mul(dt)).Add(comBefore.Sub(comAfter))

	b.clearAccumulators()
}

func (b *RigidBody) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}

// worldInvInertia returns R * diag(invInertia) * Rᵀ
func (b *RigidBody) worldInvInertia() mgl64.Mat3 {
	r := b.Orientation.Mat4().Mat3()
	return r.Mul3(mgl64.Diag3(b.invInertia)).Mul3(r.Transpose())
}
