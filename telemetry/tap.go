package telemetry

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/physics"
	"github.com/lixenwraith/raycar/vehicle"
)

// Tap adapts a Recorder and Metrics to the per-step observer hook
// Metrics see every tick; the recorder sees every Nth
type Tap struct {
	ctx     context.Context
	rec     Recorder
	metrics *Metrics
	body    physics.Body
	runID   string
	every   uint64
	log     zerolog.Logger

	failures int
}

func NewTap(ctx context.Context, rec Recorder, metrics *Metrics, body physics.Body, runID string, every int, log zerolog.Logger) *Tap {
	if every < 1 {
		every = 1
	}
	if rec == nil {
		rec = Nop{}
	}
	return &Tap{
		ctx:     ctx,
		rec:     rec,
		metrics: metrics,
		body:    body,
		runID:   runID,
		every:   uint64(every),
		log:     log,
	}
}

// Observe matches sim.Observer
func (t *Tap) Observe(elapsed time.Duration, r *vehicle.Report) {
	if t.metrics != nil {
		t.metrics.Observe(t.ctx, r)
	}
	if r.Tick%t.every != 0 {
		return
	}

	var pos mgl64.Vec3
	if t.body != nil {
		pos = t.body.State().Position
	}
	if err := t.rec.Record(t.ctx, FromReport(t.runID, elapsed, r, pos)); err != nil {
		t.failures++
		// First failure is loud, the rest only at debug
		if t.failures == 1 {
			t.log.Error().Err(err).Msg("telemetry record failed")
		} else {
			t.log.Debug().Err(err).Int("failures", t.failures).Msg("telemetry record failed")
		}
	}
}

// Failures counts rejected records
func (t *Tap) Failures() int { return t.failures }
