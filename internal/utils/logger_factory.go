package utils

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	defaultLogFileMaxSizeMegabytes       = 25
	defaultLogFileMaxBackups             = 3
	defaultLogFileMaxAgeDays             = 30
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerSettings configures logger construction.
type LoggerSettings struct {
	Level    LogLevel
	Format   LogFormat
	FilePath string
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct{}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger produces a zap.Logger honoring the requested level, format, and optional rotating file output.
func (factory *LoggerFactory) CreateLogger(settings LoggerSettings) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[settings.Level]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, settings.Level)
	}

	var consoleEncoder zapcore.Encoder
	switch settings.Format {
	case LogFormatStructured:
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case LogFormatConsole:
		consoleEncoderConfiguration := zap.NewDevelopmentEncoderConfig()
		consoleEncoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, settings.Format)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zapLogLevel),
	}

	if len(settings.FilePath) > 0 {
		fileWriter := &lumberjack.Logger{
			Filename:   settings.FilePath,
			MaxSize:    defaultLogFileMaxSizeMegabytes,
			MaxBackups: defaultLogFileMaxBackups,
			MaxAge:     defaultLogFileMaxAgeDays,
			Compress:   true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), zapLogLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	return logger, nil
}
