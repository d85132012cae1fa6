package parameter

import "time"

// Simulation loop timing
const (
	// PhysicsTickInterval is the fixed physics step (60 Hz)
	PhysicsTickInterval = time.Second / 60

	// FrameUpdateInterval is the sandbox redraw interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxSubSteps caps catch-up steps per frame so a stall cannot spiral
	MaxSubSteps = 8

	// TelemetryEveryTicks records one telemetry sample per this many ticks
	TelemetryEveryTicks = 6
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "raycar.log"
)
