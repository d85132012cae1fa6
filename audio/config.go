package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/raycar/parameter"
)

// Config holds synthesis and output settings
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64

	SquealVolume  float64
	SquealAttack  float64 // gain slew toward louder, 1/s
	SquealRelease float64 // gain slew toward quieter, 1/s
	ChirpVolume   float64
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		SampleRate:    parameter.AudioSampleRate,
		MasterVolume:  1.0,
		SquealVolume:  parameter.SquealVolume,
		SquealAttack:  parameter.SquealAttack,
		SquealRelease: parameter.SquealRelease,
		ChirpVolume:   parameter.ChirpVolume,
	}
}

// LoadConfig reads audio overrides from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("RAYCAR_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 maps to 0.0-1.0
	if volume := os.Getenv("RAYCAR_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("RAYCAR_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
