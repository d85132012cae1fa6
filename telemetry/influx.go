package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
)

const measurement = "vehicle"

// InfluxOptions locates the bucket samples are written to
type InfluxOptions struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// InfluxRecorder writes samples through the non-blocking write API
type InfluxRecorder struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	done   chan struct{}
}

// NewInfluxRecorder pings the server and opens a writer
func NewInfluxRecorder(ctx context.Context, opts InfluxOptions, log zerolog.Logger) (*InfluxRecorder, error) {
	client := influxdb2.NewClientWithOptions(opts.URL, opts.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		if err == nil {
			err = fmt.Errorf("server not ready")
		}
		return nil, fmt.Errorf("influx %s: %w", opts.URL, err)
	}

	r := &InfluxRecorder{
		client: client,
		writer: client.WriteAPI(opts.Org, opts.Bucket),
		done:   make(chan struct{}),
	}

	errorsCh := r.writer.Errors()
	go func() {
		defer close(r.done)
		for writeErr := range errorsCh {
			log.Error().Err(writeErr).Str("bucket", opts.Bucket).
				Msg("Error sending telemetry to InfluxDB")
		}
	}()

	log.Info().Str("url", opts.URL).Str("bucket", opts.Bucket).Msg("InfluxDB telemetry writer initialized")
	return r, nil
}

// SamplePoint converts a sample to a line-protocol point
// Per-wheel values become fields suffixed with the wheel index
func SamplePoint(s Sample) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(measurement).
		AddTag("run", s.RunID).
		AddField("tick", s.Tick).
		AddField("speed", s.Speed).
		AddField("forward_speed", s.ForwardSpeed).
		AddField("pos_x", s.PosX).
		AddField("pos_y", s.PosY).
		AddField("pos_z", s.PosZ).
		AddField("contacts", s.Contacts).
		AddField("sliding", s.SlidingCount).
		AddField("max_slip", s.MaxSlip).
		SetTime(s.Time)

	if flags, err := s.SlidingFlags(); err == nil {
		for i, f := range flags {
			p.AddField("sliding_"+strconv.Itoa(i), f)
		}
	}
	return p
}

func (r *InfluxRecorder) Record(_ context.Context, s Sample) error {
	r.writer.WritePoint(SamplePoint(s))
	return nil
}

// Close flushes pending points and waits for the error drain
func (r *InfluxRecorder) Close() error {
	r.writer.Flush()
	r.client.Close()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
	}
	return nil
}
