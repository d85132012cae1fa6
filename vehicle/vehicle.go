// Package vehicle is the raycast-suspension force model
//
// Each Tick reads one physics.State snapshot, casts every wheel, computes
// suspension, drive, steering and traction, feeds the skid trails, and only
// then submits the collected forces to the body. Forces never depend on the
// order wheels are processed in.
package vehicle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/physics"
	"github.com/lixenwraith/raycar/skidmark"
	"github.com/lixenwraith/raycar/vmath"
)

// Vehicle owns wheel state and skid trails for one body
type Vehicle struct {
	body   physics.Body
	ground physics.Caster
	tuning Tuning
	curves curve.Sampler
	log    zerolog.Logger

	slots  []Slot
	grips  []curve.Curve
	wheels []WheelState
	modes  []driveMode
	trails []*skidmark.Trail

	input Input
	batch forceBatch

	tick   uint64
	report Report

	// Debug emits one log event per wheel per tick
	Debug bool
}

// Option configures a Vehicle at construction
type Option func(*Vehicle)

// WithCurves replaces the default response curves
func WithCurves(s curve.Sampler) Option {
	return func(v *Vehicle) {
		if s != nil {
			v.curves = s
		}
	}
}

// WithLogger sets the debug logger
func WithLogger(l zerolog.Logger) Option {
	return func(v *Vehicle) { v.log = l }
}

// WithDebug enables per-wheel debug events
func WithDebug(on bool) Option {
	return func(v *Vehicle) { v.Debug = on }
}

// New validates the configuration and builds a vehicle with a fixed wheel set
func New(body physics.Body, ground physics.Caster, slots []Slot, tuning Tuning, opts ...Option) (*Vehicle, error) {
	if body == nil || ground == nil {
		return nil, ErrNoBody
	}
	if len(slots) == 0 {
		return nil, ErrNoWheels
	}
	if err := tuning.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}
	for i, s := range slots {
		if err := s.Config.Validate(); err != nil {
			return nil, fmt.Errorf("vehicle: wheel %d %q: %w", i, s.Name, err)
		}
	}

	v := &Vehicle{
		body:   body,
		ground: ground,
		tuning: tuning,
		curves: curve.Defaults(),
		log:    zerolog.Nop(),
		slots:  append([]Slot(nil), slots...),
		wheels: make([]WheelState, len(slots)),
		modes:  make([]driveMode, len(slots)),
		trails: make([]*skidmark.Trail, len(slots)),
		grips:  make([]curve.Curve, len(slots)),
		batch:  newForceBatch(len(slots) * 4),
	}
	for _, opt := range opts {
		opt(v)
	}

	trailCfg := skidmark.Config{
		Capacity: tuning.SkidmarkCapacity,
		Width:    tuning.SkidmarkWidth,
		Lift:     tuning.SkidmarkLift,
	}
	for i, s := range v.slots {
		v.trails[i] = skidmark.NewTrail(trailCfg)
		v.wheels[i].VisualOffset = -s.Config.RestLength
		if s.Config.GripCurve != nil {
			v.grips[i] = s.Config.GripCurve
		} else {
			v.grips[i] = sampled{s: v.curves, id: curve.Grip}
		}
	}

	v.report.Wheels = make([]WheelState, len(slots))
	v.report.SlideStarted = make([]int, 0, len(slots))
	v.report.SlideStopped = make([]int, 0, len(slots))
	return v, nil
}

// SetInput stores the control snapshot used by subsequent ticks
func (v *Vehicle) SetInput(in Input) { v.input = in.Clamped() }

func (v *Vehicle) Input() Input { return v.input }

func (v *Vehicle) Tuning() Tuning { return v.tuning }

func (v *Vehicle) Body() physics.Body { return v.body }

func (v *Vehicle) WheelCount() int { return len(v.slots) }

func (v *Vehicle) Slot(i int) Slot { return v.slots[i] }

// Wheel returns a copy of wheel i's state
func (v *Vehicle) Wheel(i int) WheelState { return v.wheels[i] }

// Sliding reports wheel i's sliding flag from the last tick
func (v *Vehicle) Sliding(i int) bool { return v.wheels[i].Sliding }

// SlidingFlags appends every wheel's sliding flag to dst
func (v *Vehicle) SlidingFlags(dst []bool) []bool {
	for i := range v.wheels {
		dst = append(dst, v.wheels[i].Sliding)
	}
	return dst
}

// Skidmarks returns wheel i's segment ring
func (v *Vehicle) Skidmarks(i int) *skidmark.Ring { return v.trails[i].Ring() }

// Speed is the body's linear speed
func (v *Vehicle) Speed() float64 { return v.body.State().Linear.Len() }

// ForwardSpeed is the body velocity along its forward axis, negative reversing
func (v *Vehicle) ForwardSpeed() float64 {
	s := v.body.State()
	return s.Linear.Dot(s.Forward())
}

// ClearSkidmarks drops every trail
func (v *Vehicle) ClearSkidmarks() {
	for _, t := range v.trails {
		t.Reset()
	}
}

// Tick advances the force model by dt seconds and submits forces to the body
// The returned report is reused by the next call
func (v *Vehicle) Tick(dt float64) *Report {
	v.tick++
	state := v.body.State()
	up, forward, right := state.Up(), state.Forward(), state.Right()

	bodyForward := state.Linear.Dot(forward)
	speedRatio := vmath.Clamp01(math.Abs(bodyForward) / v.tuning.MaxSpeed)
	target := steerTarget(v.input, v.tuning, v.curves.Sample(curve.SpeedSteering, speedRatio))
	wheelLoad := v.body.Mass() * v.tuning.Gravity / float64(len(v.slots))

	r := &v.report
	r.Tick = v.tick
	r.DT = dt
	r.Speed = state.Linear.Len()
	r.ForwardSpeed = bodyForward
	r.SlideStarted = r.SlideStarted[:0]
	r.SlideStopped = r.SlideStopped[:0]
	v.batch.reset()

	for i := range v.slots {
		cfg := v.slots[i].Config
		w := &v.wheels[i]
		wasSliding := w.Sliding

		if cfg.Steer {
			w.SteerAngle = stepSteer(w.SteerAngle, target, v.tuning.TireTurnSpeed, dt)
		}
		wheelForward, wheelRight := wheelAxes(up, forward, right, w.SteerAngle)

		mount := state.TransformPoint(v.slots[i].Mount)
		contact := sense(v.ground, mount, up, cfg)
		v.wheelTick(i, w, cfg, state, contact, up, wheelForward, wheelRight, wheelLoad, dt)

		v.trails[i].Update(skidmark.Sample{
			Sliding:   w.Sliding,
			InContact: w.InContact,
			Position:  w.ContactPoint,
			Normal:    w.ContactNormal,
			Velocity:  state.VelocityAtPoint(w.ContactPoint),
			Up:        up,
			Fallback:  wheelRight,
		})

		switch {
		case w.Sliding && !wasSliding:
			r.SlideStarted = append(r.SlideStarted, i)
		case !w.Sliding && wasSliding:
			r.SlideStopped = append(r.SlideStopped, i)
		}

		if v.Debug {
			v.logWheel(i, w)
		}
	}

	v.batch.flush(v.body)
	copy(r.Wheels, v.wheels)
	return r
}

// wheelTick fills w from one contact raycast and queues its forces
func (v *Vehicle) wheelTick(i int, w *WheelState, cfg *WheelConfig, state physics.State, contact physics.Contact,
	up, forward, right mgl64.Vec3, wheelLoad, dt float64) {
	w.InContact = contact.Hit
	w.Forces = Forces{}
	v.modes[i] = driveNone
	if !contact.Hit {
		w.ContactPoint = mgl64.Vec3{}
		w.ContactNormal = mgl64.Vec3{}
		w.ContactDistance = 0
		w.SpringLength = cfg.RestLength
		w.Compression = 0
		w.SlipRatio = 0
		w.Sliding = false
		w.VisualOffset = easeVisual(w.VisualOffset, cfg.RestLength, v.tuning.WheelVisualSpeed, dt)
		return
	}

	w.ContactPoint = contact.Point
	w.ContactNormal = contact.Normal
	w.ContactDistance = contact.Distance

	pointVel := state.VelocityAtPoint(contact.Point)
	offset := contact.Point.Sub(state.CenterOfMass)

	susp := suspensionForce(cfg, contact, up, pointVel)
	w.SpringLength = susp.SpringLength
	w.Compression = susp.Compression
	w.VisualOffset = easeVisual(w.VisualOffset, susp.SpringLength, v.tuning.WheelVisualSpeed, dt)

	forwardVel := forward.Dot(pointVel)
	accel := v.curves.Sample(curve.Acceleration, vmath.Clamp01(math.Abs(forwardVel)/v.tuning.MaxSpeed))
	drive, mode := driveForce(v.input, v.tuning, cfg, forward, forwardVel, accel)
	v.modes[i] = mode

	tr := tractionForce(v.tuning, cfg, v.grips[i], forward, right, pointVel, wheelLoad, braking(v.input, v.tuning, forwardVel))
	w.SlipRatio = tr.SlipRatio
	w.Sliding = tr.Sliding

	w.Forces = Forces{
		Suspension: susp.Force,
		Drive:      drive,
		Lateral:    tr.Lateral,
		Rolling:    tr.Rolling,
	}
	v.batch.add(w.Forces.Total(), offset)
}

func (v *Vehicle) logWheel(i int, w *WheelState) {
	v.log.Debug().
		Uint64("tick", v.tick).
		Int("wheel", i).
		Str("name", v.slots[i].Name).
		Bool("contact", w.InContact).
		Float64("compression", w.Compression).
		Float64("steer", w.SteerAngle).
		Float64("slip", w.SlipRatio).
		Bool("sliding", w.Sliding).
		Stringer("drive", v.modes[i]).
		Float64("suspension_n", w.Forces.Suspension.Len()).
		Float64("drive_n", w.Forces.Drive.Len()).
		Float64("lateral_n", w.Forces.Lateral.Len()).
		Msg("wheel")
}

type appliedForce struct {
	force  mgl64.Vec3
	offset mgl64.Vec3
}

// forceBatch defers submission until every wheel has read the snapshot
type forceBatch struct {
	entries []appliedForce
}

func newForceBatch(capacity int) forceBatch {
	return forceBatch{entries: make([]appliedForce, 0, capacity)}
}

func (b *forceBatch) reset() { b.entries = b.entries[:0] }

func (b *forceBatch) add(force, offset mgl64.Vec3) {
	if vmath.IsZero(force) {
		return
	}
	b.entries = append(b.entries, appliedForce{force, offset})
}

func (b *forceBatch) flush(body physics.Body) {
	for _, e := range b.entries {
		body.ApplyForce(e.force, e.offset)
	}
	b.entries = b.entries[:0]
}
