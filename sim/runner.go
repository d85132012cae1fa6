// Package sim steps a vehicle and its body at a fixed rate
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/parameter"
	"github.com/lixenwraith/raycar/vehicle"
)

// Integrator is the part of the physics engine the runner drives
type Integrator interface {
	Integrate(dt float64)
}

// Observer receives every step's report; r is reused by the next step
type Observer func(elapsed time.Duration, r *vehicle.Report)

// Runner owns the fixed-step loop: vehicle forces first, then integration
type Runner struct {
	vehicle *vehicle.Vehicle
	body    Integrator
	log     zerolog.Logger

	step        time.Duration
	maxSubSteps int

	accumulator time.Duration
	elapsed     time.Duration
	ticks       uint64
	dropped     uint64

	observers []Observer
}

type RunnerOption func(*Runner)

// WithStep sets the fixed step, default parameter.PhysicsTickInterval
func WithStep(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.step = d
		}
	}
}

// WithMaxSubSteps caps catch-up steps per Advance
func WithMaxSubSteps(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.maxSubSteps = n
		}
	}
}

func WithRunnerLogger(l zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

func NewRunner(v *vehicle.Vehicle, body Integrator, opts ...RunnerOption) *Runner {
	r := &Runner{
		vehicle:     v,
		body:        body,
		log:         zerolog.Nop(),
		step:        parameter.PhysicsTickInterval,
		maxSubSteps: parameter.MaxSubSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnStep registers an observer, must be called before stepping
func (r *Runner) OnStep(o Observer) {
	r.observers = append(r.observers, o)
}

func (r *Runner) Vehicle() *vehicle.Vehicle { return r.vehicle }

func (r *Runner) StepSize() time.Duration { return r.step }

func (r *Runner) Elapsed() time.Duration { return r.elapsed }

func (r *Runner) Ticks() uint64 { return r.ticks }

// Dropped counts steps discarded because a frame fell too far behind
func (r *Runner) Dropped() uint64 { return r.dropped }

// Step runs exactly one fixed step
func (r *Runner) Step() *vehicle.Report {
	dt := r.step.Seconds()
	report := r.vehicle.Tick(dt)
	r.body.Integrate(dt)

	r.ticks++
	r.elapsed += r.step
	for _, o := range r.observers {
		o(r.elapsed, report)
	}
	return report
}

// Advance feeds wall time into the accumulator and runs the steps it covers
// Backlog beyond maxSubSteps is dropped
func (r *Runner) Advance(frame time.Duration) int {
	if frame < 0 {
		frame = 0
	}
	r.accumulator += frame

	n := 0
	for r.accumulator >= r.step {
		if n == r.maxSubSteps {
			skipped := uint64(r.accumulator / r.step)
			r.dropped += skipped
			r.accumulator -= time.Duration(skipped) * r.step
			r.log.Debug().Uint64("dropped", skipped).Msg("frame behind, dropping steps")
			break
		}
		r.Step()
		r.accumulator -= r.step
		n++
	}
	return n
}

// Alpha is the leftover fraction of a step, for render interpolation
func (r *Runner) Alpha() float64 {
	return float64(r.accumulator) / float64(r.step)
}

// Run plays script for duration as fast as possible
// Cancellation is checked between steps
func (r *Runner) Run(ctx context.Context, script *Script, duration time.Duration) error {
	if script == nil {
		return ErrEmptyScript
	}
	end := r.elapsed + duration
	for r.elapsed < end {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run stopped at %v: %w", r.elapsed, err)
		}
		r.vehicle.SetInput(script.At(r.elapsed))
		r.Step()
	}
	r.log.Info().
		Uint64("ticks", r.ticks).
		Dur("elapsed", r.elapsed).
		Msg("run complete")
	return nil
}
