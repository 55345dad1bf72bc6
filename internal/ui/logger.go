package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the logger used for step output. Debug messages are only
// shown when verbose is set.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}
