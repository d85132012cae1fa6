// Package physics defines the rigid-body collaborator the vehicle model talks to,
// plus a small reference body and ground casters for headless runs
//
// The vehicle only reads a State snapshot, submits forces, and casts contact
// rays; integration belongs to whoever implements Body.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/vmath"
)

// State is a snapshot of a body taken once per tick
// All vectors are world space
type State struct {
	Position     mgl64.Vec3
	Orientation  mgl64.Quat
	Linear       mgl64.Vec3
	Angular      mgl64.Vec3
	CenterOfMass mgl64.Vec3
}

// VelocityAtPoint returns the velocity of world point p moving with the body
func (s State) VelocityAtPoint(p mgl64.Vec3) mgl64.Vec3 {
	return vmath.PointVelocity(s.Linear, s.Angular, p.Sub(s.CenterOfMass))
}

// TransformPoint maps a body-local point to world space
func (s State) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return s.Position.Add(s.Orientation.Rotate(local))
}

// Up returns the body's local up axis in world space
func (s State) Up() mgl64.Vec3 { return s.Orientation.Rotate(vmath.Up) }

// Forward returns the body's local forward axis in world space
func (s State) Forward() mgl64.Vec3 { return s.Orientation.Rotate(vmath.Forward) }

// Right returns the body's local right axis in world space
func (s State) Right() mgl64.Vec3 { return s.Orientation.Rotate(vmath.Right) }

// Body is the rigid body owned by the physics engine
type Body interface {
	// State returns the current snapshot
	State() State

	// Mass returns the body mass in kg
	Mass() float64

	// ApplyForce accumulates force (N) acting at offset from the centre of mass
	ApplyForce(force, offset mgl64.Vec3)
}

// Contact is the result of a downward wheel raycast
type Contact struct {
	Hit      bool
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// Caster answers contact raycasts against world geometry
type Caster interface {
	// CastContact casts from origin along unit direction up to length
	CastContact(origin, direction mgl64.Vec3, length float64) Contact
}
