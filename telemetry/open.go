package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lixenwraith/raycar/config"
)

// Open builds the configured backend
func Open(ctx context.Context, cfg config.TelemetryConfig, log zerolog.Logger) (Recorder, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return Nop{}, nil
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		db, err := OpenSQLite(cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		return gormRecorder(db)
	case "postgres":
		db, err := OpenPostgres(cfg.Postgres.DSN(), log)
		if err != nil {
			return nil, err
		}
		return gormRecorder(db)
	case "influx":
		r, err := NewInfluxRecorder(ctx, InfluxOptions{
			URL:    cfg.Influx.URL(),
			Token:  cfg.Influx.Token,
			Org:    cfg.Influx.Org,
			Bucket: cfg.Influx.Bucket,
		}, log)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown telemetry backend %q", cfg.Backend)
	}
}

func gormRecorder(db *gorm.DB) (Recorder, error) {
	r, err := NewGormRecorder(db, 0)
	if err != nil {
		return nil, err
	}
	return r, nil
}
