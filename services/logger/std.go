package logsvc

import (
	"log"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
)

// StdLogger only writes to a std logger. Used in DEV and TEST.
type StdLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger, debug bool) *StdLogger {
	return &StdLogger{std: std, debug: debug}
}

// New picks the rollbar logger when a token is configured.
func New(std *log.Logger, conf *core.Config) core.Logger {
	if conf.RollbarToken != "" {
		return NewRollbarLogger(std, conf)
	}
	return NewStdLogger(std, conf.Debug)
}

func printTo(std *log.Logger, level, msg string, args []interface{}) {
	std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			std.Printf("  user: %s", usr.RegNo)
			continue
		}
		std.Printf("  %+v", arg)
	}
}

func (l StdLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		printTo(l.std, "DEBUG", msg, args)
	}
}

func (l StdLogger) Info(msg string, args ...interface{}) { printTo(l.std, "INFO", msg, args) }
func (l StdLogger) Warn(msg string, args ...interface{}) { printTo(l.std, "WARN", msg, args) }

func (l StdLogger) Error(msg string, args ...interface{}) { printTo(l.std, "ERROR", msg, args) }

func (l StdLogger) Fatal(msg string, args ...interface{}) {
	printTo(l.std, "FATAL", msg, args)
	l.std.Fatal(msg)
}
