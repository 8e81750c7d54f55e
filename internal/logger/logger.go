package logger

import (
	"os"
	"strings"

	"github.com/safar/partsbot/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// New builds a zap logger from the log section of the config.
// Output is a comma-separated list of stdout, stderr or file paths;
// file outputs are rotated. The console format is colored only when every
// output is a terminal stream.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	writer, streamsOnly := newWriter(cfg.Output)
	core := zapcore.NewCore(newEncoder(cfg.Format, streamsOnly), writer, parseLevel(cfg.Level))

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string, color bool) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeFormat),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if strings.ToLower(format) == "json" {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// newWriter also reports whether all outputs are stdout or stderr.
func newWriter(output string) (zapcore.WriteSyncer, bool) {
	var syncers []zapcore.WriteSyncer
	streamsOnly := true
	for _, target := range strings.Split(output, ",") {
		target = strings.TrimSpace(target)
		switch strings.ToLower(target) {
		case "":
			continue
		case "stdout":
			syncers = append(syncers, zapcore.AddSync(os.Stdout))
		case "stderr":
			syncers = append(syncers, zapcore.AddSync(os.Stderr))
		default:
			streamsOnly = false
			syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
				Filename:   target,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}))
		}
	}

	if len(syncers) == 0 {
		return zapcore.AddSync(os.Stdout), true
	}
	return zapcore.NewMultiWriteSyncer(syncers...), streamsOnly
}
