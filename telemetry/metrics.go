package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/raycar/vehicle"
)

const instrumentationName = "github.com/lixenwraith/raycar/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metrics are the OpenTelemetry instruments fed once per tick
type Metrics struct {
	ticks       metric.Int64Counter
	slideStarts metric.Int64Counter
	slip        metric.Float64Histogram
	speed       metric.Float64Gauge
}

// NewMetrics registers instruments on the global meter provider
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithMeter(meter())
}

func NewMetricsWithMeter(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)

	mt.ticks, err = m.Int64Counter(
		"raycar.ticks",
		metric.WithDescription("Vehicle ticks simulated"),
	)
	if err != nil {
		return nil, err
	}

	mt.slideStarts, err = m.Int64Counter(
		"raycar.slide.starts",
		metric.WithDescription("Wheels entering the sliding regime"),
	)
	if err != nil {
		return nil, err
	}

	mt.slip, err = m.Float64Histogram(
		"raycar.slip.ratio",
		metric.WithDescription("Per-wheel slip ratio of contacting wheels"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9),
	)
	if err != nil {
		return nil, err
	}

	mt.speed, err = m.Float64Gauge(
		"raycar.speed",
		metric.WithDescription("Body speed"),
		metric.WithUnit("m/s"),
	)
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

// Observe records one tick report
func (m *Metrics) Observe(ctx context.Context, r *vehicle.Report) {
	m.ticks.Add(ctx, 1)
	m.speed.Record(ctx, r.Speed)

	for _, i := range r.SlideStarted {
		m.slideStarts.Add(ctx, 1, metric.WithAttributes(attribute.Int("wheel", i)))
	}
	for i := range r.Wheels {
		if r.Wheels[i].InContact {
			m.slip.Record(ctx, r.Wheels[i].SlipRatio)
		}
	}
}
