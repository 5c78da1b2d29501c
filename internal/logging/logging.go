// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix tags every line written by the game.
const Prefix = "aliens"

// New returns a timestamped logger writing to w at the named level
// ("debug", "info", "warn", "error", "fatal").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}
