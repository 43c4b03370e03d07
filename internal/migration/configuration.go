package migration

import "strings"

// CommandConfiguration captures persisted configuration for the migrate command.
type CommandConfiguration struct {
	SourceToken          string `mapstructure:"source_token"`
	DestinationToken     string `mapstructure:"dest_token"`
	DestinationAccountID string `mapstructure:"dest_account_id"`
	ProjectID            string `mapstructure:"project_id"`
	SkipExisting         bool   `mapstructure:"skip_existing"`
	FrameworksFile       string `mapstructure:"frameworks_file"`
	SourceBaseURL        string `mapstructure:"source_base_url"`
	DestinationBaseURL   string `mapstructure:"dest_base_url"`
}

// DefaultCommandConfiguration returns baseline configuration values for the migrate command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SkipExisting: false,
	}
}

// Sanitize trims configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SourceToken = strings.TrimSpace(configuration.SourceToken)
	sanitized.DestinationToken = strings.TrimSpace(configuration.DestinationToken)
	sanitized.DestinationAccountID = strings.TrimSpace(configuration.DestinationAccountID)
	sanitized.ProjectID = strings.TrimSpace(configuration.ProjectID)
	sanitized.FrameworksFile = strings.TrimSpace(configuration.FrameworksFile)
	sanitized.SourceBaseURL = strings.TrimSpace(configuration.SourceBaseURL)
	sanitized.DestinationBaseURL = strings.TrimSpace(configuration.DestinationBaseURL)
	return sanitized
}
