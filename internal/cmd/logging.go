package cmd

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

type fder interface {
	Fd() uintptr
}

// newLogger returns a logger writing to w at info level, lowered by one level
// for every -v. Terminals get console output, everything else gets JSON.
func newLogger(v int, w io.Writer) *zap.Logger {
	atom := zap.NewAtomicLevelAt(zapcore.Level(-v))

	var encoder zapcore.Encoder

	if isTerminal(w) {
		encoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalColorLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			EncodeDuration: zapcore.StringDurationEncoder,
		})
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), atom)

	return zap.New(core)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}
