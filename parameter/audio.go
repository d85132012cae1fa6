package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration sets speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Tire squeal synthesis
const (
	// SquealToneHz is the centre pitch of the squeal tone
	SquealToneHz = 820.0

	// SquealWobbleHz modulates pitch so the tone does not sound like a test signal
	SquealWobbleHz    = 6.5
	SquealWobbleDepth = 0.04

	// SquealNoiseMix is the share of filtered noise in the output
	SquealNoiseMix = 0.35

	// SquealAttack and SquealRelease are gain slew rates in 1/s
	SquealAttack  = 12.0
	SquealRelease = 4.0

	SquealVolume = 0.6
)

// Slide-start chirp
const (
	ChirpHz       = 1400.0
	ChirpDuration = 90 * time.Millisecond
	ChirpAttack   = 4 * time.Millisecond
	ChirpRelease  = 70 * time.Millisecond
	ChirpVolume   = 0.35
)

// SquealNoiseCutoffHz is the low-pass corner applied to the noise layer
const SquealNoiseCutoffHz = 2400.0
