package scan

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface the scanner needs. The default is a logrus
// text logger on stderr; callers with their own logging plug in here.
type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Warn(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})

	ChildLogger(tags map[string]interface{}) Logger
}

type defaultLogger struct {
	*logrus.Entry
}

// NewLogger builds the default logrus-backed logger.
func NewLogger(debug bool) Logger {
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}

	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     level,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}

	return &defaultLogger{Entry: l.WithFields(map[string]interface{}{})}
}

func (d *defaultLogger) ChildLogger(ff map[string]interface{}) Logger {
	return &defaultLogger{d.Entry.WithFields(ff)}
}
