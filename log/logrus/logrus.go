// Package logrus adapts a *logrus.Entry to baum.Logger.
package logrus

import (
	"io"

	"github.com/fkohlgrueber/baum"
	"github.com/sirupsen/logrus"
)

var _ baum.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f baum.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f baum.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f baum.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f baum.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f baum.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}

// New builds a text logger writing to w at the given level name.
func New(w io.Writer, level string) (LogrusLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return LogrusLogger{}, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return LogrusLogger{E: logrus.NewEntry(l)}, nil
}
