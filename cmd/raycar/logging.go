package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/parameter"
)

// maxLogSize triggers rotation of the previous run's log on startup
const maxLogSize = 10 * 1024 * 1024

func parseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// setupLogging writes console format to console and plain text to dir/raycar.log,
// plus JSON to graylog when an address is given. Caller closes the returned file
func setupLogging(level, dir, graylog string, console io.Writer) (zerolog.Logger, *os.File, error) {
	if dir == "" {
		dir = parameter.LogDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(dir, parameter.LogFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("raycar_%s.log", time.Now().UTC().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		},
		zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		},
	}
	if graylog != "" {
		gw, err := gelf.NewWriter(graylog)
		if err != nil {
			file.Close()
			return zerolog.Nop(), nil, fmt.Errorf("connect graylog: %w", err)
		}
		writers = append(writers, gw)
	}
	mlw := zerolog.MultiLevelWriter(writers...)

	log := zerolog.New(mlw).Level(parseLevel(level)).With().Timestamp().Logger()
	return log, file, nil
}
