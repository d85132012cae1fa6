// Package config loads a vehicle setup file with viper and assembles the
// body, ground, curves and vehicle it describes
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/parameter"
	"github.com/lixenwraith/raycar/sim"
)

var (
	ErrUnknownWheelType = errors.New("unknown wheel type")
	ErrUnknownCurve     = errors.New("unknown curve")
	ErrBadVector        = errors.New("vector needs 3 components")
)

// File mirrors the on-disk layout
type File struct {
	LogLevel string `mapstructure:"logLevel"`
	LogsDir  string `mapstructure:"logsDir"`

	// GraylogAddress enables a GELF/UDP log sink when set, host:port
	GraylogAddress string `mapstructure:"graylogAddress"`

	Sim        SimConfig                  `mapstructure:"sim"`
	Body       BodyConfig                 `mapstructure:"body"`
	Ground     GroundConfig               `mapstructure:"ground"`
	Tuning     TuningConfig               `mapstructure:"tuning"`
	WheelTypes map[string]WheelTypeConfig `mapstructure:"wheelTypes"`
	Wheels     []WheelConfig              `mapstructure:"wheels"`
	Curves     map[string][]curve.Key     `mapstructure:"curves"`
	Telemetry  TelemetryConfig            `mapstructure:"telemetry"`
	Script     []sim.Key                  `mapstructure:"script"`
}

type SimConfig struct {
	Step        time.Duration `mapstructure:"step"`
	Duration    time.Duration `mapstructure:"duration"`
	MaxSubSteps int           `mapstructure:"maxSubSteps"`
	Debug       bool          `mapstructure:"debug"`
}

type BodyConfig struct {
	Mass         float64   `mapstructure:"mass"`
	Size         []float64 `mapstructure:"size"`
	CenterOfMass []float64 `mapstructure:"centerOfMass"`
	Start        []float64 `mapstructure:"start"`

	LinearDamping  float64 `mapstructure:"linearDamping"`
	AngularDamping float64 `mapstructure:"angularDamping"`
}

// GroundConfig selects flat ground or rolling sine terrain
type GroundConfig struct {
	Type       string  `mapstructure:"type"`
	Amplitude  float64 `mapstructure:"amplitude"`
	Wavelength float64 `mapstructure:"wavelength"`
}

type TuningConfig struct {
	Gravity float64 `mapstructure:"gravity"`

	Acceleration           float64 `mapstructure:"acceleration"`
	MaxSpeed               float64 `mapstructure:"maxSpeed"`
	BrakingSpeedMultiplier float64 `mapstructure:"brakingSpeedMultiplier"`
	ReverseSpeedMultiplier float64 `mapstructure:"reverseSpeedMultiplier"`
	ReverseThreshold       float64 `mapstructure:"reverseThreshold"`

	SteeringMaxDegrees float64 `mapstructure:"steeringMaxDegrees"`
	TireTurnSpeed      float64 `mapstructure:"tireTurnSpeed"`

	SlideThreshold    float64 `mapstructure:"slideThreshold"`
	MinSlideSpeed     float64 `mapstructure:"minSlideSpeed"`
	SlippingTraction  float64 `mapstructure:"slippingTraction"`
	BrakingTraction   float64 `mapstructure:"brakingTraction"`
	RollingResistance float64 `mapstructure:"rollingResistance"`
	SlipEpsilon       float64 `mapstructure:"slipEpsilon"`

	WheelVisualSpeed float64 `mapstructure:"wheelVisualSpeed"`

	SkidmarkCapacity int     `mapstructure:"skidmarkCapacity"`
	SkidmarkWidth    float64 `mapstructure:"skidmarkWidth"`
	SkidmarkLift     float64 `mapstructure:"skidmarkLift"`
}

type WheelTypeConfig struct {
	RestLength      float64     `mapstructure:"restLength"`
	SpringStiffness float64     `mapstructure:"springStiffness"`
	SpringDamping   float64     `mapstructure:"springDamping"`
	OverExtend      float64     `mapstructure:"overExtend"`
	Radius          float64     `mapstructure:"radius"`
	Drive           bool        `mapstructure:"drive"`
	Steer           bool        `mapstructure:"steer"`
	BaseGrip        float64     `mapstructure:"baseGrip"`
	GripCurve       []curve.Key `mapstructure:"gripCurve"`
}

// WheelConfig places one wheel of a named type
type WheelConfig struct {
	Name  string    `mapstructure:"name"`
	Type  string    `mapstructure:"type"`
	Mount []float64 `mapstructure:"mount"`
}

type TelemetryConfig struct {
	// Backend is none, memory, sqlite, postgres or influx
	Backend    string `mapstructure:"backend"`
	EveryTicks int    `mapstructure:"everyTicks"`
	RunName    string `mapstructure:"runName"`

	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Influx   InfluxConfig   `mapstructure:"influx"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslMode"`
}

type InfluxConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Protocol string `mapstructure:"protocol"`
	Token    string `mapstructure:"token"`
	Org      string `mapstructure:"org"`
	Bucket   string `mapstructure:"bucket"`
}

// URL is the influx server address
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// DSN is the postgres connection string
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", parameter.LogDir)
	v.SetDefault("graylogAddress", "")

	v.SetDefault("sim.step", parameter.PhysicsTickInterval.String())
	v.SetDefault("sim.duration", "14s")
	v.SetDefault("sim.maxSubSteps", parameter.MaxSubSteps)
	v.SetDefault("sim.debug", false)

	v.SetDefault("body.mass", parameter.VehicleMass)
	v.SetDefault("body.size", []float64{parameter.VehicleWidth, parameter.VehicleHeight, parameter.VehicleLength})
	v.SetDefault("body.centerOfMass", []float64{0, 0, 0})
	v.SetDefault("body.start", []float64{0, parameter.WheelRestLength + parameter.WheelRadius, 0})
	v.SetDefault("body.linearDamping", 0.0)
	v.SetDefault("body.angularDamping", 0.0)

	v.SetDefault("ground.type", "flat")
	v.SetDefault("ground.amplitude", 0.15)
	v.SetDefault("ground.wavelength", 12.0)

	v.SetDefault("tuning.gravity", parameter.Gravity)
	v.SetDefault("tuning.acceleration", parameter.Acceleration)
	v.SetDefault("tuning.maxSpeed", parameter.MaxSpeed)
	v.SetDefault("tuning.brakingSpeedMultiplier", parameter.BrakingSpeedMultiplier)
	v.SetDefault("tuning.reverseSpeedMultiplier", parameter.ReverseSpeedMultiplier)
	v.SetDefault("tuning.reverseThreshold", parameter.ReverseThreshold)
	v.SetDefault("tuning.steeringMaxDegrees", parameter.SteeringMaxDegrees)
	v.SetDefault("tuning.tireTurnSpeed", parameter.TireTurnSpeed)
	v.SetDefault("tuning.slideThreshold", parameter.SlideThreshold)
	v.SetDefault("tuning.minSlideSpeed", parameter.MinSlideSpeed)
	v.SetDefault("tuning.slippingTraction", parameter.SlippingTraction)
	v.SetDefault("tuning.brakingTraction", parameter.BrakingTraction)
	v.SetDefault("tuning.rollingResistance", parameter.RollingResistance)
	v.SetDefault("tuning.slipEpsilon", parameter.SlipEpsilon)
	v.SetDefault("tuning.wheelVisualSpeed", parameter.WheelVisualSpeed)
	v.SetDefault("tuning.skidmarkCapacity", parameter.SkidmarkCapacity)
	v.SetDefault("tuning.skidmarkWidth", parameter.SkidmarkWidth)
	v.SetDefault("tuning.skidmarkLift", parameter.SkidmarkLift)

	for name, drive := range map[string]bool{"front": false, "rear": true} {
		prefix := "wheelTypes." + name + "."
		v.SetDefault(prefix+"restLength", parameter.WheelRestLength)
		v.SetDefault(prefix+"springStiffness", parameter.WheelSpringStiffness)
		v.SetDefault(prefix+"springDamping", parameter.WheelSpringDamping)
		v.SetDefault(prefix+"overExtend", parameter.WheelOverExtend)
		v.SetDefault(prefix+"radius", parameter.WheelRadius)
		v.SetDefault(prefix+"drive", drive)
		v.SetDefault(prefix+"steer", !drive)
		v.SetDefault(prefix+"baseGrip", parameter.WheelBaseGrip)
	}

	x, z := parameter.WheelHalfTrack, parameter.WheelHalfBase
	v.SetDefault("wheels", []map[string]any{
		{"name": "front_left", "type": "front", "mount": []float64{-x, 0, -z}},
		{"name": "front_right", "type": "front", "mount": []float64{x, 0, -z}},
		{"name": "rear_left", "type": "rear", "mount": []float64{-x, 0, z}},
		{"name": "rear_right", "type": "rear", "mount": []float64{x, 0, z}},
	})

	v.SetDefault("telemetry.backend", "memory")
	v.SetDefault("telemetry.everyTicks", parameter.TelemetryEveryTicks)
	v.SetDefault("telemetry.runName", "")
	v.SetDefault("telemetry.sqlite.path", "raycar.db")
	v.SetDefault("telemetry.postgres.host", "localhost")
	v.SetDefault("telemetry.postgres.port", "5432")
	v.SetDefault("telemetry.postgres.username", "postgres")
	v.SetDefault("telemetry.postgres.password", "postgres")
	v.SetDefault("telemetry.postgres.database", "raycar")
	v.SetDefault("telemetry.postgres.sslMode", "disable")
	v.SetDefault("telemetry.influx.host", "localhost")
	v.SetDefault("telemetry.influx.port", "8086")
	v.SetDefault("telemetry.influx.protocol", "http")
	v.SetDefault("telemetry.influx.token", "")
	v.SetDefault("telemetry.influx.org", "raycar")
	v.SetDefault("telemetry.influx.bucket", "telemetry")
}

// Load reads path (toml, json or yaml by extension) over the defaults
// An empty path loads defaults only. RAYCAR_* environment variables override both.
func Load(path string) (*File, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("raycar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if len(f.Script) == 0 {
		f.Script = sim.DemoKeys()
	}
	return &f, nil
}
