package curve

import (
	"errors"
	"math"
	"testing"
)

func TestKeyframesSample(t *testing.T) {
	c := MustKeyframes(Key{0, 1}, Key{0.5, 0.2}, Key{1, 0.6})

	tests := []struct {
		x, want float64
	}{
		{0, 1},
		{0.25, 0.6},
		{0.5, 0.2},
		{0.75, 0.4},
		{1, 0.6},
		{-3, 1},  // clamped to domain
		{7, 0.6}, // clamped to domain
	}
	for _, tt := range tests {
		if got := c.Sample(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Sample(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestKeyframesUnsortedInput(t *testing.T) {
	c := MustKeyframes(Key{1, 0}, Key{0, 1})
	if got := c.Sample(0.25); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Sample(0.25) = %v, want 0.75", got)
	}
}

func TestKeyframesHoldsEndValues(t *testing.T) {
	c := MustKeyframes(Key{0.2, 0.3}, Key{0.8, 0.9})
	if got := c.Sample(0.1); got != 0.3 {
		t.Errorf("left of first key = %v, want 0.3", got)
	}
	if got := c.Sample(0.95); got != 0.9 {
		t.Errorf("right of last key = %v, want 0.9", got)
	}
}

func TestNewKeyframesErrors(t *testing.T) {
	if _, err := NewKeyframes(); !errors.Is(err, ErrNoKeys) {
		t.Errorf("empty keys err = %v, want ErrNoKeys", err)
	}
	if _, err := NewKeyframes(Key{1.5, 0}); err == nil {
		t.Error("expected error for key outside domain")
	}
}

func TestBakeMatchesSource(t *testing.T) {
	src := MustKeyframes(Key{0, 0}, Key{0.3, 1}, Key{1, 0.5})
	lut := Bake(src, 1001)

	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		if d := math.Abs(lut.Sample(x) - src.Sample(x)); d > 1e-3 {
			t.Errorf("x=%v lut=%v src=%v", x, lut.Sample(x), src.Sample(x))
		}
	}
	if lut.Sample(2) != src.Sample(1) {
		t.Error("LUT should clamp input above 1")
	}
}

func TestBakeDefaultSize(t *testing.T) {
	if got := Bake(Constant(1), 0).Len(); got != DefaultLUTSize {
		t.Errorf("Len() = %d, want %d", got, DefaultLUTSize)
	}
}

func TestSetMissingCurveIsFlat(t *testing.T) {
	s := NewSet().With(Grip, Constant(0.4))
	if got := s.Sample(Acceleration, 0.5); got != 1 {
		t.Errorf("missing curve = %v, want 1", got)
	}
	if got := s.Sample(Grip, 0.5); got != 0.4 {
		t.Errorf("Grip = %v, want 0.4", got)
	}
	if got := s.Sample(ID(99), 0.5); got != 1 {
		t.Errorf("unknown id = %v, want 1", got)
	}
}

func TestParseID(t *testing.T) {
	for id := Acceleration; id < idCount; id++ {
		got, ok := ParseID(id.String())
		if !ok || got != id {
			t.Errorf("ParseID(%q) = %v, %v", id.String(), got, ok)
		}
	}
	if _, ok := ParseID("torque"); ok {
		t.Error("ParseID accepted unknown name")
	}
}

func TestDefaultsCoverEveryID(t *testing.T) {
	s := Defaults()
	for id := Acceleration; id < idCount; id++ {
		if s.Get(id) == nil {
			t.Errorf("Defaults() missing %s", id)
		}
	}
	if got := s.Sample(Acceleration, 0); got != 1 {
		t.Errorf("acceleration at rest = %v, want 1", got)
	}
	if got := s.Sample(Acceleration, 1); got != 0 {
		t.Errorf("acceleration at max speed = %v, want 0", got)
	}
}
