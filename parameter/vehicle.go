package parameter

// Chassis
const (
	// VehicleMass is the default body mass in kg
	VehicleMass = 1200.0

	// VehicleWidth, VehicleHeight, VehicleLength are the inertia box extents in metres
	VehicleWidth  = 1.8
	VehicleHeight = 0.6
	VehicleLength = 4.2

	// Gravity is the magnitude used for static wheel load
	Gravity = 9.81
)

// Wheel
const (
	WheelRestLength      = 0.5
	WheelSpringStiffness = 20000.0 // N/m
	WheelSpringDamping   = 2500.0  // N·s/m
	WheelOverExtend      = 0.1
	WheelRadius          = 0.35
	WheelBaseGrip        = 1.0

	// WheelTrack and WheelBase place the four default mounts (half distances)
	WheelHalfTrack = 0.8
	WheelHalfBase  = 1.35

	// WheelVisualSpeed is how fast the cosmetic wheel offset chases the spring, m/s
	WheelVisualSpeed = 2.0
)

// Drivetrain
const (
	// Acceleration is the peak drive force per drive wheel in N
	Acceleration = 3000.0

	// MaxSpeed normalizes forward speed for curve lookups, m/s
	MaxSpeed = 40.0

	BrakingSpeedMultiplier = 1.5
	ReverseSpeedMultiplier = 0.4

	// ReverseThreshold is the forward speed at or below which braking turns into reversing, m/s
	ReverseThreshold = 0.1
)

// Steering
const (
	SteeringMaxDegrees = 30.0

	// TireTurnSpeed is the steer slew rate in rad/s
	TireTurnSpeed = 3.0
)

// Traction
const (
	// SlideThreshold is the slip ratio above which a wheel breaks loose
	SlideThreshold = 0.2

	// MinSlideSpeed optionally suppresses slide detection below this contact speed, m/s
	// Zero leaves only the slip epsilon guarding near-zero speed
	MinSlideSpeed = 0.0

	SlippingTraction = 0.3
	BrakingTraction  = 0.25

	// RollingResistance is the longitudinal damping coefficient, 1/(m/s)
	RollingResistance = 0.01

	// SlipEpsilon guards the slip ratio denominator
	SlipEpsilon = 1e-3
)

// Skidmarks
const (
	SkidmarkCapacity = 512
	SkidmarkWidth    = 0.25

	// SkidmarkLift raises trail points off the ground along the contact normal
	SkidmarkLift = 0.02
)
