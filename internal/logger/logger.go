// Package logger builds the process zap logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a production JSON logger on stdout. When logFile is set the
// same entries are also written to a size-rotated file.
func New(service, logFile string) (*zap.Logger, error) {
	if logFile == "" {
		logger, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return logger.With(zap.String("service", service)), nil
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(rotating), zap.InfoLevel),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", service)), nil
}
