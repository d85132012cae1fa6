package vehicle

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Errorf("DefaultTuning: %v", err)
	}
	if err := DefaultWheelConfig(true, true).Validate(); err != nil {
		t.Errorf("DefaultWheelConfig: %v", err)
	}
}

func TestWheelConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WheelConfig)
	}{
		{"zero rest length", func(c *WheelConfig) { c.RestLength = 0 }},
		{"zero radius", func(c *WheelConfig) { c.Radius = 0 }},
		{"negative stiffness", func(c *WheelConfig) { c.SpringStiffness = -1 }},
		{"negative damping", func(c *WheelConfig) { c.SpringDamping = -1 }},
		{"NaN grip", func(c *WheelConfig) { c.BaseGrip = math.NaN() }},
		{"infinite over extend", func(c *WheelConfig) { c.OverExtend = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultWheelConfig(true, false)
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidWheel) {
				t.Errorf("Validate() = %v, want ErrInvalidWheel", err)
			}
		})
	}

	var nilCfg *WheelConfig
	if err := nilCfg.Validate(); !errors.Is(err, ErrInvalidWheel) {
		t.Errorf("nil Validate() = %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero max speed", func(t *Tuning) { t.MaxSpeed = 0 }},
		{"zero slip epsilon", func(t *Tuning) { t.SlipEpsilon = 0 }},
		{"zero skid capacity", func(t *Tuning) { t.SkidmarkCapacity = 0 }},
		{"steering past 90", func(t *Tuning) { t.SteeringMaxDegrees = 90 }},
		{"negative slide threshold", func(t *Tuning) { t.SlideThreshold = -0.1 }},
		{"NaN acceleration", func(t *Tuning) { t.Acceleration = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.mutate(&tu)
			if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("Validate() = %v, want ErrInvalidTuning", err)
			}
		})
	}
}

func TestCastLength(t *testing.T) {
	c := &WheelConfig{RestLength: 0.5, Radius: 0.3, OverExtend: 0.1}
	if got := c.CastLength(); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("CastLength() = %v, want 0.9", got)
	}
}

func TestNewErrors(t *testing.T) {
	body, ground := newStubBody(), &stubCaster{}

	if _, err := New(body, ground, nil, DefaultTuning()); !errors.Is(err, ErrNoWheels) {
		t.Errorf("no wheels: %v", err)
	}
	if _, err := New(nil, ground, oneWheel(true, false), DefaultTuning()); !errors.Is(err, ErrNoBody) {
		t.Errorf("no body: %v", err)
	}

	bad := DefaultTuning()
	bad.MaxSpeed = -1
	if _, err := New(body, ground, oneWheel(true, false), bad); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("bad tuning: %v", err)
	}

	slots := oneWheel(true, false)
	slots[0].Config.Radius = 0
	if _, err := New(body, ground, slots, DefaultTuning()); !errors.Is(err, ErrInvalidWheel) {
		t.Errorf("bad wheel: %v", err)
	}
}

func TestDefaultSlotsShareConfig(t *testing.T) {
	s := DefaultSlots()
	if len(s) != 4 {
		t.Fatalf("len = %d", len(s))
	}
	if s[0].Config != s[1].Config || s[2].Config != s[3].Config {
		t.Error("axle pairs do not share a config")
	}
	if s[0].Config == s[2].Config {
		t.Error("front and rear share a config")
	}
	if !s[0].Config.Steer || s[0].Config.Drive || !s[2].Config.Drive || s[2].Config.Steer {
		t.Error("default layout is not front steer, rear drive")
	}
}

func TestInputSteer(t *testing.T) {
	var in Input
	in.SetSteer(-0.5)
	if in.SteerRight != 0.5 || in.SteerLeft != 0 || in.Steer() != -0.5 {
		t.Errorf("SetSteer(-0.5) = %+v", in)
	}
	in.SetSteer(3)
	if in.SteerLeft != 1 {
		t.Errorf("SetSteer(3) left = %v, want 1", in.SteerLeft)
	}

	c := Input{Throttle: 2, Brake: -1, SteerLeft: math.NaN()}.Clamped()
	if c.Throttle != 1 || c.Brake != 0 || c.SteerLeft != 0 {
		t.Errorf("Clamped() = %+v", c)
	}
}
