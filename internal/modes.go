package internal

import (
	"log/slog"
	"strconv"
	"sync/atomic"
)

// Process-wide output switches. Seeded from linker flags, then overridden by
// the CLI once flags are parsed.
var (
	quietMode   atomic.Bool
	debugMode   atomic.Bool
	verboseMode atomic.Bool
)

func init() {
	seed(&quietMode, rawQuiet)
	seed(&debugMode, rawDebug)
	seed(&verboseMode, rawVerbose)
}

// Stores the parsed value of raw into flag, leaving it false when raw is not
// a valid boolean.
func seed(flag *atomic.Bool, raw string) {
	if v, err := strconv.ParseBool(raw); err == nil {
		flag.Store(v)
	}
}

// Enables or disables quiet mode.
func SetQuiet(enabled bool) { quietMode.Store(enabled) }

// Returns true if quiet mode is enabled.
func IsQuiet() bool { return quietMode.Load() }

// Enables or disables debug logging.
func SetDebug(enabled bool) { debugMode.Store(enabled) }

// Returns true if debug logging is enabled.
func IsDebug() bool { return debugMode.Load() }

// Enables or disables echoing of external commands.
func SetVerbose(enabled bool) { verboseMode.Store(enabled) }

// Returns true if external commands are echoed before they run.
func IsVerbose() bool { return verboseMode.Load() }

// Level of the process logger, adjusted after flag parsing.
var logLevel slog.LevelVar

// Returns the shared level variable of the process logger.
func LogLevel() *slog.LevelVar { return &logLevel }
