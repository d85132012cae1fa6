package curve

// ID names a vehicle-level response curve
type ID int

const (
	Acceleration  ID = iota // forward speed ratio -> drive force multiplier
	SpeedSteering           // forward speed ratio -> steering authority
	Grip                    // slip ratio -> traction multiplier (vehicle default)
	SkidOpacity             // normalized skid age -> alpha
	idCount
)

var idNames = [idCount]string{
	Acceleration:  "acceleration",
	SpeedSteering: "speed_steering",
	Grip:          "grip",
	SkidOpacity:   "skid_opacity",
}

func (id ID) String() string {
	if id < 0 || id >= idCount {
		return "unknown"
	}
	return idNames[id]
}

// ParseID maps a config key back to its ID
func ParseID(name string) (ID, bool) {
	for i, n := range idNames {
		if n == name {
			return ID(i), true
		}
	}
	return 0, false
}

// Sampler is the single capability the simulation needs from curve storage
type Sampler interface {
	Sample(id ID, x float64) float64
}

// Set is a fixed table of curves indexed by ID
// Missing entries sample as 1, a flat full-strength response
type Set struct {
	curves [idCount]Curve
}

// NewSet returns a set with every curve flat at 1
func NewSet() *Set {
	return &Set{}
}

// With assigns a curve and returns the set for chaining
func (s *Set) With(id ID, c Curve) *Set {
	if id >= 0 && id < idCount {
		s.curves[id] = c
	}
	return s
}

// Get returns the curve for id, nil if unset
func (s *Set) Get(id ID) Curve {
	if id < 0 || id >= idCount {
		return nil
	}
	return s.curves[id]
}

func (s *Set) Sample(id ID, x float64) float64 {
	c := s.Get(id)
	if c == nil {
		return 1
	}
	return c.Sample(x)
}

// Defaults returns the stock arcade response:
// drive force fades toward top speed, steering authority halves at speed,
// grip tapers with slip, skid marks fade in from transparent
func Defaults() *Set {
	return NewSet().
		With(Acceleration, MustKeyframes(Key{0, 1}, Key{0.7, 0.8}, Key{1, 0})).
		With(SpeedSteering, MustKeyframes(Key{0, 1}, Key{0.5, 0.7}, Key{1, 0.4})).
		With(Grip, MustKeyframes(Key{0, 1}, Key{0.2, 0.9}, Key{1, 0.5})).
		With(SkidOpacity, Linear(0, 1))
}
