// Package telemetry records vehicle tick reports to memory, SQL or InfluxDB,
// and exports running counters through OpenTelemetry
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gorm.io/datatypes"

	"github.com/lixenwraith/raycar/vehicle"
)

// Sample is one recorded tick
type Sample struct {
	ID      uint      `json:"-" gorm:"primarykey"`
	RunID   string    `json:"runId" gorm:"index;size:64"`
	Tick    uint64    `json:"tick" gorm:"index"`
	Elapsed int64     `json:"elapsedMs"`
	Time    time.Time `json:"time"`

	Speed        float64 `json:"speed"`
	ForwardSpeed float64 `json:"forwardSpeed"`
	PosX         float64 `json:"posX"`
	PosY         float64 `json:"posY"`
	PosZ         float64 `json:"posZ"`

	Contacts     int     `json:"contacts"`
	SlidingCount int     `json:"slidingCount"`
	MaxSlip      float64 `json:"maxSlip"`

	// Per-wheel arrays, index = wheel slot
	Sliding     datatypes.JSON `json:"sliding"`
	SlipRatios  datatypes.JSON `json:"slipRatios"`
	Compression datatypes.JSON `json:"compression"`
}

func (Sample) TableName() string { return "telemetry_samples" }

// FromReport flattens a tick report
func FromReport(runID string, elapsed time.Duration, r *vehicle.Report, pos mgl64.Vec3) Sample {
	sliding := make([]bool, len(r.Wheels))
	slips := make([]float64, len(r.Wheels))
	comps := make([]float64, len(r.Wheels))
	for i, w := range r.Wheels {
		sliding[i] = w.Sliding
		slips[i] = w.SlipRatio
		comps[i] = w.Compression
	}

	return Sample{
		RunID:        runID,
		Tick:         r.Tick,
		Elapsed:      elapsed.Milliseconds(),
		Time:         time.Now().UTC(),
		Speed:        r.Speed,
		ForwardSpeed: r.ForwardSpeed,
		PosX:         pos.X(),
		PosY:         pos.Y(),
		PosZ:         pos.Z(),
		Contacts:     r.ContactCount(),
		SlidingCount: r.SlidingCount(),
		MaxSlip:      r.MaxSlip(),
		Sliding:      mustJSON(sliding),
		SlipRatios:   mustJSON(slips),
		Compression:  mustJSON(comps),
	}
}

// SlidingFlags decodes the per-wheel sliding array
func (s Sample) SlidingFlags() ([]bool, error) {
	var out []bool
	if len(s.Sliding) == 0 {
		return out, nil
	}
	err := json.Unmarshal(s.Sliding, &out)
	return out, err
}

// bool and float slices never fail to encode
func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(b)
}
