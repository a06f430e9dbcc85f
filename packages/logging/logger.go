// Package logging configures the process-wide zap logger for the CLI.
// Verbosity comes from the KUIPER_LOG environment variable (debug, info,
// warn, error); the default only surfaces warnings and errors.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelVar is the environment variable controlling log verbosity.
const LevelVar = "KUIPER_LOG"

// S is the package-level logger, usable across packages after Init.
var S = zap.NewNop().Sugar()

// Init builds the logger from KUIPER_LOG and installs it as S.
func Init() *zap.SugaredLogger {
	level := zapcore.WarnLevel
	switch os.Getenv(LevelVar) {
	case "debug", "trace":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		level,
	)

	S = zap.New(core).Sugar()
	return S
}

// Close flushes any buffered log entries.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}
