package logger

import (
	"errors"
	"sort"
	"sync"

	"github.com/decred/slog"
)

type logger struct {
	subsystemLoggers map[string]slog.Logger
}

var instance *logger
var initCtx sync.Once

// New registers the subsystem loggers. Only the first call has effect.
func New(loggers map[string]slog.Logger) *logger {
	initCtx.Do(func() {
		instance = &logger{
			subsystemLoggers: loggers,
		}
	})

	return instance
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) error {
	if instance == nil {
		return errors.New("cannot set log level on nil logger")
	}
	if _, ok := slog.LevelFromString(logLevel); !ok {
		return errors.New("invalid log level " + logLevel)
	}
	for subsystemID := range instance.subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
	return nil
}

// SetLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func SetLogLevel(subsystemID string, logLevel string) {
	if instance == nil {
		return
	}
	if subsystem, ok := instance.subsystemLoggers[subsystemID]; ok {
		// Defaults to info if the log level is invalid.
		level, _ := slog.LevelFromString(logLevel)
		subsystem.SetLevel(level)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	if instance == nil {
		return nil
	}
	subsystems := make([]string, 0, len(instance.subsystemLoggers))
	for subsysID := range instance.subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}
