package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pagemove/internal/utils"
)

func TestCreateLoggerSupportsConfiguredLevelsAndFormats(testInstance *testing.T) {
	testInstance.Parallel()

	factory := utils.NewLoggerFactory()

	testCases := []struct {
		name     string
		settings utils.LoggerSettings
	}{
		{name: "debug console", settings: utils.LoggerSettings{Level: utils.LogLevelDebug, Format: utils.LogFormatConsole}},
		{name: "info structured", settings: utils.LoggerSettings{Level: utils.LogLevelInfo, Format: utils.LogFormatStructured}},
		{name: "warn console", settings: utils.LoggerSettings{Level: utils.LogLevelWarn, Format: utils.LogFormatConsole}},
		{name: "error structured", settings: utils.LoggerSettings{Level: utils.LogLevelError, Format: utils.LogFormatStructured}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			logger, creationError := factory.CreateLogger(testCase.settings)
			require.NoError(subTest, creationError)
			require.NotNil(subTest, logger)
		})
	}
}

func TestCreateLoggerRejectsUnsupportedSettings(testInstance *testing.T) {
	testInstance.Parallel()

	factory := utils.NewLoggerFactory()

	_, levelError := factory.CreateLogger(utils.LoggerSettings{Level: "verbose", Format: utils.LogFormatConsole})
	require.Error(testInstance, levelError)
	require.Contains(testInstance, levelError.Error(), "unsupported log level")

	_, formatError := factory.CreateLogger(utils.LoggerSettings{Level: utils.LogLevelInfo, Format: "xml"})
	require.Error(testInstance, formatError)
	require.Contains(testInstance, formatError.Error(), "unsupported log format")
}

func TestCreateLoggerWritesRotatingFileOutput(testInstance *testing.T) {
	testInstance.Parallel()

	logFilePath := filepath.Join(testInstance.TempDir(), "pagemove.log")
	factory := utils.NewLoggerFactory()

	logger, creationError := factory.CreateLogger(utils.LoggerSettings{
		Level:    utils.LogLevelInfo,
		Format:   utils.LogFormatStructured,
		FilePath: logFilePath,
	})
	require.NoError(testInstance, creationError)

	logger.Info("migration started")
	_ = logger.Sync()

	require.FileExists(testInstance, logFilePath)
}
