// Package zap adapts a *zap.Logger to baum.Logger.
package zap

import (
	"io"
	"sort"

	"github.com/fkohlgrueber/baum"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ baum.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f baum.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f baum.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f baum.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f baum.Fields) { z.L.Error(msg, zf(f)...) }

// New builds a console logger writing to w at the given level name
// (debug, info, warn, error).
func New(w io.Writer, level string) (ZapLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return ZapLogger{}, err
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return ZapLogger{L: zap.New(core)}, nil
}

// fields are emitted in key order
func zf(f baum.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
