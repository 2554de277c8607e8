// Package logging builds the eedis structured logger. It is configured
// from the environment:
//
//	EEDIS_LOG_LEVEL    debug, info, warn, error (default: info)
//	EEDIS_LOG_PREFIX   message prefix (default: "eedis ")
//	EEDIS_LOG_TO_FILE  "1" logs to a timestamped file instead of stderr
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LoggerCloser wraps a logger and closes its output when that is a file.
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
}

// Close closes the underlying writer if it's closeable.
func (lc *LoggerCloser) Close() error {
	if lc.closer != nil {
		return lc.closer.Close()
	}
	return nil
}

// ParseLevel maps an EEDIS_LOG_LEVEL value to a level. Unknown values
// mean info.
func ParseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(w io.Writer) *LoggerCloser {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	lg.SetLevel(ParseLevel(os.Getenv("EEDIS_LOG_LEVEL")))

	prefix := os.Getenv("EEDIS_LOG_PREFIX")
	if prefix == "" {
		prefix = "eedis "
	}

	var closer io.Closer
	if c, ok := w.(io.Closer); ok && w != os.Stderr && w != os.Stdout {
		closer = c
	}

	return &LoggerCloser{
		Logger: lg.WithPrefix(prefix),
		closer: closer,
	}
}

// NewLogger creates a logger from the environment.
func NewLogger() *LoggerCloser {
	output := io.Writer(os.Stderr)

	if os.Getenv("EEDIS_LOG_TO_FILE") == "1" {
		timestamp := time.Now().Format("20060102-150405")
		logFile := fmt.Sprintf("eedis-%s.log", timestamp)

		// Falls back to stderr when the file cannot be created.
		if f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644); err == nil {
			output = f
		}
	}

	return NewLoggerWithWriter(output)
}

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool {
	return os.Getenv("EEDIS_LOG_LEVEL") == "debug"
}
