// Package logging configures the charmbracelet/log default logger for the CLI.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Setup installs a logger writing to w as the package default, so library
// code logging through log.Warn and friends reaches the same sink.
// verbose enables debug output and timestamps; quiet raises the level to warn.
func Setup(w io.Writer, verbose, quiet, noColor bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.WarnLevel
	}

	styles := log.DefaultStyles()
	if !noColor {
		styles.Levels[log.DebugLevel] = levelStyle("DEBUG", "242")
		styles.Levels[log.InfoLevel] = levelStyle("INFO", "39")
		styles.Levels[log.WarnLevel] = levelStyle("WARN", "214")
		styles.Levels[log.ErrorLevel] = levelStyle("ERROR", "196")
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Prefix:          "tally",
	})
	logger.SetStyles(styles)
	log.SetDefault(logger)
	return logger
}

func levelStyle(label, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Foreground(lipgloss.Color(color)).
		Bold(true)
}
