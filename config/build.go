package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/physics"
	"github.com/lixenwraith/raycar/sim"
	"github.com/lixenwraith/raycar/vehicle"
)

// Rig is everything needed to step one vehicle
type Rig struct {
	Body    *physics.RigidBody
	Ground  physics.Caster
	Curves  *curve.Set
	Vehicle *vehicle.Vehicle
	Script  *sim.Script
}

func vec3(name string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("%s: %w, got %d", name, ErrBadVector, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func (f *File) VehicleTuning() vehicle.Tuning {
	t := f.Tuning
	return vehicle.Tuning{
		Gravity:                t.Gravity,
		Acceleration:           t.Acceleration,
		MaxSpeed:               t.MaxSpeed,
		BrakingSpeedMultiplier: t.BrakingSpeedMultiplier,
		ReverseSpeedMultiplier: t.ReverseSpeedMultiplier,
		ReverseThreshold:       t.ReverseThreshold,
		SteeringMaxDegrees:     t.SteeringMaxDegrees,
		TireTurnSpeed:          t.TireTurnSpeed,
		SlideThreshold:         t.SlideThreshold,
		MinSlideSpeed:          t.MinSlideSpeed,
		SlippingTraction:       t.SlippingTraction,
		BrakingTraction:        t.BrakingTraction,
		RollingResistance:      t.RollingResistance,
		SlipEpsilon:            t.SlipEpsilon,
		WheelVisualSpeed:       t.WheelVisualSpeed,
		SkidmarkCapacity:       t.SkidmarkCapacity,
		SkidmarkWidth:          t.SkidmarkWidth,
		SkidmarkLift:           t.SkidmarkLift,
	}
}

// CurveSet starts from curve.Defaults and replaces every configured curve
// with a baked lookup table of its keyframes
func (f *File) CurveSet() (*curve.Set, error) {
	set := curve.Defaults()

	names := make([]string, 0, len(f.Curves))
	for name := range f.Curves {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id, ok := curve.ParseID(strings.ToLower(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
		}
		kf, err := curve.NewKeyframes(f.Curves[name]...)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", name, err)
		}
		set.With(id, curve.Bake(kf, curve.DefaultLUTSize))
	}
	return set, nil
}

// Slots builds one shared *vehicle.WheelConfig per referenced wheel type
func (f *File) Slots() ([]vehicle.Slot, error) {
	types := make(map[string]*vehicle.WheelConfig)
	slots := make([]vehicle.Slot, 0, len(f.Wheels))

	for i, w := range f.Wheels {
		key := strings.ToLower(w.Type)
		cfg, ok := types[key]
		if !ok {
			wt, found := f.WheelTypes[key]
			if !found {
				return nil, fmt.Errorf("wheel %d %q: %w %q", i, w.Name, ErrUnknownWheelType, w.Type)
			}
			built, err := wt.build()
			if err != nil {
				return nil, fmt.Errorf("wheel type %q: %w", w.Type, err)
			}
			types[key] = built
			cfg = built
		}

		mount, err := vec3(fmt.Sprintf("wheel %d mount", i), w.Mount)
		if err != nil {
			return nil, err
		}
		slots = append(slots, vehicle.Slot{Name: w.Name, Mount: mount, Config: cfg})
	}
	return slots, nil
}

func (wt WheelTypeConfig) build() (*vehicle.WheelConfig, error) {
	cfg := &vehicle.WheelConfig{
		RestLength:      wt.RestLength,
		SpringStiffness: wt.SpringStiffness,
		SpringDamping:   wt.SpringDamping,
		OverExtend:      wt.OverExtend,
		Radius:          wt.Radius,
		Drive:           wt.Drive,
		Steer:           wt.Steer,
		BaseGrip:        wt.BaseGrip,
	}
	if len(wt.GripCurve) > 0 {
		kf, err := curve.NewKeyframes(wt.GripCurve...)
		if err != nil {
			return nil, fmt.Errorf("grip curve: %w", err)
		}
		cfg.GripCurve = kf
	}
	return cfg, cfg.Validate()
}

// NewBody creates the reference rigid body at its start position
func (f *File) NewBody() (*physics.RigidBody, error) {
	size, err := vec3("body size", f.Body.Size)
	if err != nil {
		return nil, err
	}
	com, err := vec3("body centerOfMass", f.Body.CenterOfMass)
	if err != nil {
		return nil, err
	}
	start, err := vec3("body start", f.Body.Start)
	if err != nil {
		return nil, err
	}
	if !(f.Body.Mass > 0) {
		return nil, fmt.Errorf("body mass %v must be positive", f.Body.Mass)
	}

	b := physics.NewBoxBody(f.Body.Mass, size)
	b.SetCenterOfMass(com)
	b.Position = start
	b.Gravity = mgl64.Vec3{0, -f.Tuning.Gravity, 0}
	b.LinearDamping = f.Body.LinearDamping
	b.AngularDamping = f.Body.AngularDamping
	return b, nil
}

// NewGround returns flat ground or sine-wave terrain
func (f *File) NewGround() (physics.Caster, error) {
	g := f.Ground
	switch strings.ToLower(g.Type) {
	case "", "flat":
		return physics.FlatGround(), nil
	case "waves":
		if !(g.Wavelength > 0) {
			return nil, fmt.Errorf("ground wavelength %v must be positive", g.Wavelength)
		}
		k := 2 * math.Pi / g.Wavelength
		amp := g.Amplitude
		return physics.HeightField{
			Height: func(x, z float64) float64 {
				return amp * math.Sin(k*x) * math.Cos(k*z)
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown ground type %q", g.Type)
	}
}

// NewScript builds the scripted input timeline
func (f *File) NewScript() (*sim.Script, error) {
	return sim.NewScript(f.Script...)
}

// Assemble builds body, ground, curves, vehicle and script from the file
func (f *File) Assemble(log zerolog.Logger) (*Rig, error) {
	body, err := f.NewBody()
	if err != nil {
		return nil, err
	}
	ground, err := f.NewGround()
	if err != nil {
		return nil, err
	}
	curves, err := f.CurveSet()
	if err != nil {
		return nil, err
	}
	slots, err := f.Slots()
	if err != nil {
		return nil, err
	}
	script, err := f.NewScript()
	if err != nil {
		return nil, err
	}

	v, err := vehicle.New(body, ground, slots, f.VehicleTuning(),
		vehicle.WithCurves(curves),
		vehicle.WithLogger(log),
		vehicle.WithDebug(f.Sim.Debug),
	)
	if err != nil {
		return nil, err
	}

	return &Rig{
		Body:    body,
		Ground:  ground,
		Curves:  curves,
		Vehicle: v,
		Script:  script,
	}, nil
}
