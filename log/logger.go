// Package log provides module-named, leveled loggers backed by
// go-logging. All loggers share one sink and one level.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts the names printed by Level.String, in any case.
func ParseLevel(name string) (Level, error) {
	for l, n := range levelNames {
		if strings.EqualFold(n, name) {
			return l, nil
		}
	}
	return Notice, fmt.Errorf("unknown log level %q", name)
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var (
	leveled logging.LeveledBackend
	level   = Notice
)

// Logger is satisfied by *logging.Logger.
type Logger interface {
	Debug(v ...any)
	Debugf(format string, v ...any)

	Info(v ...any)
	Infof(format string, v ...any)

	Notice(v ...any)
	Noticef(format string, v ...any)

	Warning(v ...any)
	Warningf(format string, v ...any)

	Error(v ...any)
	Errorf(format string, v ...any)
}

func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects every logger to sink without changing the level.
func SetSink(sink io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveled = logging.AddModuleLevel(formatted)
	logging.SetBackend(leveled)
	SetLevel(level)
}

// SetLevel sets the verbosity of every module. Unknown levels act as Error.
func SetLevel(l Level) {
	bl, ok := backendLevels[l]
	if !ok {
		bl = logging.ERROR
	}
	level = l
	leveled.SetLevel(bl, "")
}

// CurrentLevel returns the level last passed to SetLevel.
func CurrentLevel() Level {
	return level
}

func init() {
	SetSink(os.Stdout)
}
