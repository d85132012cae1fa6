package vehicle

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/curve"
)

func newStubVehicle(t *testing.T, slots []Slot, tu Tuning, hit bool, distance float64, opts ...Option) (*Vehicle, *stubBody, *stubCaster) {
	t.Helper()
	body := newStubBody()
	ground := &stubCaster{hit: hit, distance: distance}
	body.caster = ground
	v, err := New(body, ground, slots, tu, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v, body, ground
}

func TestTickNoContactAppliesNothing(t *testing.T) {
	v, body, _ := newStubVehicle(t, DefaultSlots(), DefaultTuning(), false, 0)
	body.state.Linear = mgl64.Vec3{3, 0, -10}
	v.SetInput(Input{Throttle: 1, SteerLeft: 1})

	r := v.Tick(1.0 / 60)

	if len(body.forces) != 0 {
		t.Errorf("applied %d forces without contact", len(body.forces))
	}
	for i := 0; i < v.WheelCount(); i++ {
		w := v.Wheel(i)
		if w.InContact || w.Sliding {
			t.Errorf("wheel %d contact=%v sliding=%v", i, w.InContact, w.Sliding)
		}
		if w.Forces != (Forces{}) {
			t.Errorf("wheel %d forces = %+v", i, w.Forces)
		}
	}
	if r.ContactCount() != 0 {
		t.Errorf("ContactCount() = %d", r.ContactCount())
	}
}

func TestTickRestLengthAtRestIsForceFree(t *testing.T) {
	slots := oneWheel(true, false)
	v, body, _ := newStubVehicle(t, slots, DefaultTuning(), true, restDistance(slots[0].Config))

	v.Tick(1.0 / 60)

	w := v.Wheel(0)
	if !w.InContact {
		t.Fatal("wheel not in contact")
	}
	if w.Forces.Suspension.Len() != 0 || w.Forces.Total().Len() != 0 {
		t.Errorf("forces = %+v, want zero", w.Forces)
	}
	if len(body.forces) != 0 {
		t.Errorf("applied %v", body.forces)
	}
}

func TestTickThrottleFiveHundredNewtons(t *testing.T) {
	tu := DefaultTuning()
	tu.Acceleration = 500
	slots := oneWheel(true, false)
	v, _, _ := newStubVehicle(t, slots, tu, true, restDistance(slots[0].Config), WithCurves(curve.NewSet()))

	v.SetInput(Input{Throttle: 1})
	v.Tick(1.0 / 60)

	drive := v.Wheel(0).Forces.Drive
	if !approx(drive.Len(), 500) {
		t.Errorf("drive = %v N, want 500", drive.Len())
	}
	if drive.Dot(testForward) <= 0 {
		t.Errorf("drive %v not forward", drive)
	}
}

func TestTickStoppedBrakeReversesEveryWheel(t *testing.T) {
	tu := DefaultTuning()
	slots := DefaultSlots()
	v, _, _ := newStubVehicle(t, slots, tu, true, restDistance(slots[0].Config), WithCurves(curve.NewSet()))

	v.SetInput(Input{Brake: 1})
	v.Tick(1.0 / 60)

	want := tu.Acceleration * tu.ReverseSpeedMultiplier
	for i := 0; i < v.WheelCount(); i++ {
		d := v.Wheel(i).Forces.Drive
		if !approx(d.Len(), want) {
			t.Errorf("wheel %d drive = %v, want %v", i, d.Len(), want)
		}
		if d.Dot(testForward) >= 0 {
			t.Errorf("wheel %d drive %v not backward", i, d)
		}
		if v.Sliding(i) {
			t.Errorf("wheel %d sliding while reversing from rest", i)
		}
	}
}

func TestTickUsesSingleSnapshot(t *testing.T) {
	slots := DefaultSlots()
	cfg := slots[0].Config
	v, body, ground := newStubVehicle(t, slots, DefaultTuning(), true, cfg.Radius+cfg.RestLength/2)
	body.mutate = true

	v.Tick(1.0 / 60)

	if len(body.forces) != 4 {
		t.Fatalf("applied %d forces, want 4", len(body.forces))
	}
	for i, casts := range body.castsAtApply {
		if casts != ground.casts {
			t.Errorf("force %d applied after %d of %d casts", i, casts, ground.casts)
		}
	}
	first := v.Wheel(0).Forces
	for i := 1; i < 4; i++ {
		if v.Wheel(i).Forces != first {
			t.Errorf("wheel %d forces %+v differ from wheel 0 %+v", i, v.Wheel(i).Forces, first)
		}
	}
}

func TestTickForceOffsetFromCentreOfMass(t *testing.T) {
	slots := []Slot{{Mount: mgl64.Vec3{1, 0, -2}, Config: DefaultWheelConfig(false, false)}}
	cfg := slots[0].Config
	v, body, _ := newStubVehicle(t, slots, DefaultTuning(), true, cfg.Radius+cfg.RestLength/2)
	body.state.Position = mgl64.Vec3{5, 1, 5}
	body.state.CenterOfMass = mgl64.Vec3{5, 1.2, 5}

	v.Tick(1.0 / 60)

	if len(body.forces) != 1 {
		t.Fatalf("applied %d forces", len(body.forces))
	}
	d := cfg.Radius + cfg.RestLength/2
	want := mgl64.Vec3{1, -0.2 - d, -2}
	if !vecNear(body.forces[0].offset, want, 1e-9) {
		t.Errorf("offset = %v, want %v", body.forces[0].offset, want)
	}
}

func TestTickSteeringSlew(t *testing.T) {
	v, _, _ := newStubVehicle(t, DefaultSlots(), DefaultTuning(), false, 0, WithCurves(curve.NewSet()))
	v.SetInput(Input{SteerLeft: 1})

	v.Tick(0.1)
	tu := v.Tuning()
	if got := v.Wheel(0).SteerAngle; !approx(got, tu.TireTurnSpeed*0.1) {
		t.Errorf("front angle after one tick = %v", got)
	}
	if got := v.Wheel(2).SteerAngle; got != 0 {
		t.Errorf("rear angle = %v, want 0", got)
	}

	for i := 0; i < 20; i++ {
		v.Tick(0.1)
	}
	maxRad := tu.SteeringMaxDegrees * math.Pi / 180
	if got := v.Wheel(1).SteerAngle; !approx(got, maxRad) {
		t.Errorf("settled angle = %v, want %v", got, maxRad)
	}

	v.SetInput(Input{})
	for i := 0; i < 20; i++ {
		v.Tick(0.1)
	}
	if got := v.Wheel(0).SteerAngle; got != 0 {
		t.Errorf("angle without input = %v, want 0", got)
	}
}

func TestTickSlideTransitionsAndSkidmarks(t *testing.T) {
	slots := DefaultSlots()
	v, body, _ := newStubVehicle(t, slots, DefaultTuning(), true, restDistance(slots[0].Config))

	body.state.Linear = mgl64.Vec3{10, 0, 0}
	r := v.Tick(1.0 / 60)
	if len(r.SlideStarted) != 4 {
		t.Errorf("SlideStarted = %v, want all wheels", r.SlideStarted)
	}
	if r.SlidingFraction() != 1 {
		t.Errorf("SlidingFraction() = %v", r.SlidingFraction())
	}
	if got := v.SlidingFlags(nil); len(got) != 4 || !got[0] || !got[3] {
		t.Errorf("SlidingFlags() = %v", got)
	}
	if v.Skidmarks(0).Len() != 0 {
		t.Error("first sliding tick emitted a segment")
	}

	body.state.Position = body.state.Position.Add(mgl64.Vec3{10.0 / 60, 0, 0})
	r = v.Tick(1.0 / 60)
	if len(r.SlideStarted) != 0 {
		t.Errorf("SlideStarted on continued slide = %v", r.SlideStarted)
	}
	if v.Skidmarks(0).Len() != 1 {
		t.Errorf("skidmarks = %d, want 1", v.Skidmarks(0).Len())
	}

	body.state.Linear = mgl64.Vec3{0, 0, -10}
	r = v.Tick(1.0 / 60)
	if len(r.SlideStopped) != 4 {
		t.Errorf("SlideStopped = %v, want all wheels", r.SlideStopped)
	}
	if v.Sliding(0) {
		t.Error("still sliding when rolling straight")
	}

	v.ClearSkidmarks()
	if v.Skidmarks(0).Len() != 0 {
		t.Error("ClearSkidmarks left segments")
	}
}

func TestTickVisualOffset(t *testing.T) {
	slots := oneWheel(false, false)
	cfg := slots[0].Config
	v, _, ground := newStubVehicle(t, slots, DefaultTuning(), true, cfg.Radius)

	if got := v.Wheel(0).VisualOffset; got != -cfg.RestLength {
		t.Fatalf("initial offset = %v", got)
	}
	for i := 0; i < 60; i++ {
		v.Tick(1.0 / 60)
	}
	if got := v.Wheel(0).VisualOffset; got != 0 {
		t.Errorf("fully compressed offset = %v, want 0", got)
	}

	ground.hit = false
	for i := 0; i < 60; i++ {
		v.Tick(1.0 / 60)
	}
	if got := v.Wheel(0).VisualOffset; !approx(got, -cfg.RestLength) {
		t.Errorf("airborne offset = %v, want %v", got, -cfg.RestLength)
	}
}

func TestTickWheelGripCurveOverride(t *testing.T) {
	slots := DefaultSlots()
	rear := *slots[2].Config
	rear.GripCurve = curve.Constant(0)
	slots[2].Config, slots[3].Config = &rear, &rear

	v, body, _ := newStubVehicle(t, slots, DefaultTuning(), true, restDistance(slots[0].Config))
	body.state.Linear = mgl64.Vec3{0.5, 0, -10}
	v.Tick(1.0 / 60)

	if v.Wheel(0).Forces.Lateral.Len() == 0 {
		t.Error("front wheel has no lateral force")
	}
	if v.Wheel(2).Forces.Lateral.Len() != 0 {
		t.Errorf("rear lateral = %v, want zero grip", v.Wheel(2).Forces.Lateral)
	}
}

func TestTickDebugLogsEveryWheel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	v, _, _ := newStubVehicle(t, DefaultSlots(), DefaultTuning(), false, 0, WithLogger(logger))
	v.Tick(1.0 / 60)
	if buf.Len() != 0 {
		t.Fatalf("logged without Debug: %s", buf.String())
	}

	v.Debug = true
	v.Tick(1.0 / 60)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d debug lines, want 4", len(lines))
	}
	if !strings.Contains(lines[2], `"name":"rear_left"`) {
		t.Errorf("line 2 = %s", lines[2])
	}
}

func TestReportReusedAcrossTicks(t *testing.T) {
	v, _, _ := newStubVehicle(t, DefaultSlots(), DefaultTuning(), false, 0)
	a := v.Tick(1.0 / 60)
	b := v.Tick(1.0 / 60)
	if a != b {
		t.Error("report not reused")
	}
	if b.Tick != 2 || len(b.Wheels) != 4 {
		t.Errorf("tick=%d wheels=%d", b.Tick, len(b.Wheels))
	}
}

func TestTickSlowSlipUsesSlippingTraction(t *testing.T) {
	tu := DefaultTuning()
	slots := oneWheel(false, false)
	v, body, _ := newStubVehicle(t, slots, tu, true, restDistance(slots[0].Config))

	// 0.5 m/s at the contact point, 90% of it sideways
	lateral := 0.45
	body.state.Linear = mgl64.Vec3{lateral, 0, -math.Sqrt(0.25 - lateral*lateral)}
	r := v.Tick(1.0 / 60)

	w := v.Wheel(0)
	if !approx(w.SlipRatio, 0.9) {
		t.Errorf("slip = %v, want 0.9", w.SlipRatio)
	}
	if !w.Sliding {
		t.Fatal("wheel not sliding at slip 0.9")
	}
	if len(r.SlideStarted) != 1 {
		t.Errorf("SlideStarted = %v", r.SlideStarted)
	}
	wheelLoad := body.mass * tu.Gravity
	want := mgl64.Vec3{-lateral * tu.SlippingTraction * wheelLoad, 0, 0}
	if !vecNear(w.Forces.Lateral, want, 1e-6) {
		t.Errorf("lateral = %v, want %v", w.Forces.Lateral, want)
	}
}

func TestTickDebugLogsDriveMode(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	slots := DefaultSlots()
	v, _, _ := newStubVehicle(t, slots, DefaultTuning(), true, restDistance(slots[0].Config), WithLogger(logger))
	v.Debug = true
	v.SetInput(Input{Throttle: 1})
	v.Tick(1.0 / 60)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d debug lines, want 4", len(lines))
	}
	// Front wheels steer, rear wheels drive
	for i, want := range []string{"none", "none", "throttle", "throttle"} {
		if !strings.Contains(lines[i], `"drive":"`+want+`"`) {
			t.Errorf("wheel %d line = %s, want drive %s", i, lines[i], want)
		}
	}

	buf.Reset()
	v.SetInput(Input{Brake: 1})
	v.Tick(1.0 / 60)
	if !strings.Contains(buf.String(), `"drive":"reverse"`) {
		t.Errorf("stopped brake not logged as reverse: %s", buf.String())
	}
}
