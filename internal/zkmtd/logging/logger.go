// Package logging provides a configurable logger shared across
// ZKMTD components: a package-level github.com/rs/zerolog.Logger,
// overridable by embedders, silenced automatically under `go test`.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// Set installs l as the package-wide logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences all ZKMTD logging.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the shared logger. Components never log secret
// material (seeds, witnesses, salts) through it, only epoch numbers,
// cache sizes, and coarse error categories.
func Logger() zerolog.Logger {
	return logger
}
