package telemetry

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultBatchSize = 500

// OpenSQLite opens a pure-Go sqlite database; empty path is in-memory
func OpenSQLite(path string, log zerolog.Logger) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        defaultBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	log.Info().Str("path", path).Msg("Using SQLite telemetry store")
	return db, nil
}

// OpenPostgres connects with a key=value DSN
func OpenPostgres(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        defaultBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(4)

	log.Info().Msg("Connected to Postgres telemetry store")
	return db, nil
}

// GormRecorder buffers samples and writes them in batches
// A batch that fails to write is discarded, never retried
type GormRecorder struct {
	db        *gorm.DB
	batch     []Sample
	batchSize int
	dropped   int
}

// NewGormRecorder migrates the sample table
func NewGormRecorder(db *gorm.DB, batchSize int) (*GormRecorder, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if err := db.AutoMigrate(&Sample{}); err != nil {
		return nil, fmt.Errorf("migrate telemetry: %w", err)
	}
	return &GormRecorder{
		db:        db,
		batch:     make([]Sample, 0, batchSize),
		batchSize: batchSize,
	}, nil
}

func (g *GormRecorder) Record(ctx context.Context, s Sample) error {
	g.batch = append(g.batch, s)
	if len(g.batch) >= g.batchSize {
		return g.Flush(ctx)
	}
	return nil
}

// Flush writes any buffered samples
func (g *GormRecorder) Flush(ctx context.Context) error {
	if len(g.batch) == 0 {
		return nil
	}
	n := len(g.batch)
	err := g.db.WithContext(ctx).CreateInBatches(g.batch, g.batchSize).Error
	g.batch = g.batch[:0]
	if err != nil {
		g.dropped += n
		return fmt.Errorf("write %d samples: %w", n, err)
	}
	return nil
}

// Dropped counts samples discarded by failed writes
func (g *GormRecorder) Dropped() int { return g.dropped }

// Run loads one run's samples in tick order
func (g *GormRecorder) Run(ctx context.Context, runID string) ([]Sample, error) {
	var out []Sample
	err := g.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("tick").
		Find(&out).Error
	return out, err
}

func (g *GormRecorder) Close() error {
	flushErr := g.Flush(context.Background())
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return flushErr
}
