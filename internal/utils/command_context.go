package utils

import "context"

type executionContextKey string

const resolvedConfigurationPathKeyConstant = executionContextKey("resolvedConfigurationPath")

// CommandContextAccessor reads and writes run-scoped values carried on command execution
// contexts, so subcommands can see what the application shell resolved without a direct
// dependency on it.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file the run was resolved from.
// An empty path is stored as-is and reported as present; callers decide whether an
// empty path is meaningful.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, resolvedConfigurationPathKeyConstant, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path recorded on the context, if any.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, pathRecorded := executionContext.Value(resolvedConfigurationPathKeyConstant).(string)
	return configurationFilePath, pathRecorded
}
