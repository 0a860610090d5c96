// Package logging centralizes zerolog setup so every package in the
// engine logs through the same configured logger instead of each
// reaching for its own. Level is controlled by the SPATIOX_LOG
// environment variable: "off" disables logging, "debug" enables verbose
// lifecycle tracing, anything else (including unset) defaults to info.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	configure()
}

func configure() {
	level := zerolog.InfoLevel
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SPATIOX_LOG"))) {
	case "off":
		level = zerolog.Disabled
	case "debug":
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// L returns the shared engine logger.
func L() *zerolog.Logger {
	return &logger
}
