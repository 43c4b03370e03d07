package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pagemove/internal/cloudflare"
	"github.com/temirov/pagemove/internal/utils"
	"github.com/temirov/pagemove/internal/vercel"
)

const (
	commandUseConstant                        = "migrate"
	commandShortDescriptionConstant           = "Migrate project configurations from Vercel to Cloudflare Pages"
	commandLongDescriptionConstant            = "migrate reads project settings, build configuration, and environment variables from Vercel and re-creates equivalent Cloudflare Pages projects, reporting one outcome per project."
	sourceTokenFlagNameConstant               = "source-token"
	sourceTokenFlagUsageConstant              = "Vercel API token (literal value, env:NAME, or file:PATH)"
	destinationTokenFlagNameConstant          = "dest-token"
	destinationTokenFlagUsageConstant         = "Cloudflare API token (literal value, env:NAME, or file:PATH)"
	destinationAccountFlagNameConstant        = "dest-account-id"
	destinationAccountFlagUsageConstant       = "Cloudflare account identifier owning the created Pages projects"
	projectIDFlagNameConstant                 = "project-id"
	projectIDFlagUsageConstant                = "Restrict migration to one Vercel project identifier"
	skipExistingFlagNameConstant              = "skip-existing"
	skipExistingFlagUsageConstant             = "Skip projects whose name already exists at the destination"
	frameworksFileFlagNameConstant            = "frameworks-file"
	frameworksFileFlagUsageConstant           = "Optional YAML file overriding the framework identifier vocabulary"
	sourceTokenMissingErrorMessageConstant    = "source token must be provided"
	destinationTokenMissingMessageConstant    = "destination token must be provided"
	destinationAccountMissingMessageConstant  = "destination account identifier must be provided"
	sourceTokenResolutionErrorTemplate        = "unable to resolve source token: %w"
	destinationTokenResolutionErrorTemplate   = "unable to resolve destination token: %w"
	sourceClientCreationErrorTemplateConstant = "unable to construct source client: %w"
	destinationClientCreationErrorTemplate    = "unable to construct destination client: %w"
	vocabularyLoadErrorTemplateConstant       = "unable to load framework vocabulary: %w"
	migrationRunErrorTemplateConstant         = "migration run failed: %w"
	logMessageConfigurationSourceConstant     = "Using resolved configuration"
	logFieldConfigurationFileConstant         = "config_file"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// SourceProvider constructs the source operations surface.
type SourceProvider func(logger *zap.Logger, configuration vercel.ClientConfiguration) (SourceOperations, error)

// DestinationProvider constructs the destination operations surface.
type DestinationProvider func(logger *zap.Logger, configuration cloudflare.ClientConfiguration) (DestinationOperations, error)

// ServiceProvider constructs a migration executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (MigrationExecutor, error)

// MigrationExecutor runs a migration and produces the final report.
type MigrationExecutor interface {
	Execute(executionContext context.Context, options MigrationOptions) (Report, error)
}

// CommandBuilder assembles the migrate Cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	TokenResolver         TokenResolver
	SourceProvider        SourceProvider
	DestinationProvider   DestinationProvider
	ServiceProvider       ServiceProvider
	Reporter              Reporter
}

type commandOptions struct {
	sourceToken          string
	destinationToken     string
	destinationAccountID string
	projectID            string
	skipExisting         bool
	frameworksFile       string
	sourceBaseURL        string
	destinationBaseURL   string
}

// Build constructs the migrate command.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          builder.runMigrate,
	}

	command.Flags().String(sourceTokenFlagNameConstant, "", sourceTokenFlagUsageConstant)
	command.Flags().String(destinationTokenFlagNameConstant, "", destinationTokenFlagUsageConstant)
	command.Flags().String(destinationAccountFlagNameConstant, "", destinationAccountFlagUsageConstant)
	command.Flags().String(projectIDFlagNameConstant, "", projectIDFlagUsageConstant)
	command.Flags().Bool(skipExistingFlagNameConstant, false, skipExistingFlagUsageConstant)
	command.Flags().String(frameworksFileFlagNameConstant, "", frameworksFileFlagUsageConstant)

	return command
}

func (builder *CommandBuilder) runMigrate(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	if configurationFilePath, pathRecorded := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); pathRecorded && len(configurationFilePath) > 0 {
		logger.Debug(logMessageConfigurationSourceConstant, zap.String(logFieldConfigurationFileConstant, configurationFilePath))
	}

	tokenResolver := builder.TokenResolver
	if tokenResolver == nil {
		tokenResolver = NewTokenResolver(nil, nil)
	}

	sourceToken, sourceTokenError := resolveToken(command, tokenResolver, options.sourceToken, sourceTokenResolutionErrorTemplate)
	if sourceTokenError != nil {
		return sourceTokenError
	}

	destinationToken, destinationTokenError := resolveToken(command, tokenResolver, options.destinationToken, destinationTokenResolutionErrorTemplate)
	if destinationTokenError != nil {
		return destinationTokenError
	}

	vocabulary, vocabularyError := builder.resolveVocabulary(options.frameworksFile)
	if vocabularyError != nil {
		return vocabularyError
	}

	sourceOperations, sourceCreationError := builder.resolveSource(logger, vercel.ClientConfiguration{
		APIToken: sourceToken,
		BaseURL:  options.sourceBaseURL,
	})
	if sourceCreationError != nil {
		return fmt.Errorf(sourceClientCreationErrorTemplateConstant, sourceCreationError)
	}

	destinationOperations, destinationCreationError := builder.resolveDestination(logger, cloudflare.ClientConfiguration{
		APIToken:  destinationToken,
		AccountID: options.destinationAccountID,
		BaseURL:   options.destinationBaseURL,
	})
	if destinationCreationError != nil {
		return fmt.Errorf(destinationClientCreationErrorTemplate, destinationCreationError)
	}

	reporter := builder.Reporter
	if reporter == nil {
		reporter = NewWriterReporter(command.OutOrStdout())
	}

	executor, serviceError := builder.resolveService(ServiceDependencies{
		Logger:      logger,
		Source:      sourceOperations,
		Destination: destinationOperations,
		Mapper:      NewMapper(vocabulary, nil),
		Reporter:    reporter,
	})
	if serviceError != nil {
		return serviceError
	}

	if _, executionError := executor.Execute(command.Context(), MigrationOptions{
		ProjectID:    options.projectID,
		SkipExisting: options.skipExisting,
	}); executionError != nil {
		return fmt.Errorf(migrationRunErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (commandOptions, error) {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider().Sanitize()
	}

	options := commandOptions{
		sourceToken:          configuration.SourceToken,
		destinationToken:     configuration.DestinationToken,
		destinationAccountID: configuration.DestinationAccountID,
		projectID:            configuration.ProjectID,
		skipExisting:         configuration.SkipExisting,
		frameworksFile:       configuration.FrameworksFile,
		sourceBaseURL:        configuration.SourceBaseURL,
		destinationBaseURL:   configuration.DestinationBaseURL,
	}

	if command.Flags().Changed(sourceTokenFlagNameConstant) {
		options.sourceToken, _ = command.Flags().GetString(sourceTokenFlagNameConstant)
	}
	if command.Flags().Changed(destinationTokenFlagNameConstant) {
		options.destinationToken, _ = command.Flags().GetString(destinationTokenFlagNameConstant)
	}
	if command.Flags().Changed(destinationAccountFlagNameConstant) {
		options.destinationAccountID, _ = command.Flags().GetString(destinationAccountFlagNameConstant)
	}
	if command.Flags().Changed(projectIDFlagNameConstant) {
		options.projectID, _ = command.Flags().GetString(projectIDFlagNameConstant)
	}
	if command.Flags().Changed(skipExistingFlagNameConstant) {
		options.skipExisting, _ = command.Flags().GetBool(skipExistingFlagNameConstant)
	}
	if command.Flags().Changed(frameworksFileFlagNameConstant) {
		options.frameworksFile, _ = command.Flags().GetString(frameworksFileFlagNameConstant)
	}

	if len(strings.TrimSpace(options.sourceToken)) == 0 {
		return commandOptions{}, errors.New(sourceTokenMissingErrorMessageConstant)
	}
	if len(strings.TrimSpace(options.destinationToken)) == 0 {
		return commandOptions{}, errors.New(destinationTokenMissingMessageConstant)
	}
	if len(strings.TrimSpace(options.destinationAccountID)) == 0 {
		return commandOptions{}, errors.New(destinationAccountMissingMessageConstant)
	}

	return options, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider != nil {
		if logger := builder.LoggerProvider(); logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func (builder *CommandBuilder) resolveVocabulary(frameworksFile string) (FrameworkVocabulary, error) {
	if len(frameworksFile) == 0 {
		return DefaultFrameworkVocabulary(), nil
	}
	vocabulary, loadError := LoadFrameworkVocabulary(frameworksFile)
	if loadError != nil {
		return nil, fmt.Errorf(vocabularyLoadErrorTemplateConstant, loadError)
	}
	return vocabulary, nil
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (MigrationExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveSource(logger *zap.Logger, configuration vercel.ClientConfiguration) (SourceOperations, error) {
	if builder.SourceProvider != nil {
		return builder.SourceProvider(logger, configuration)
	}
	return vercel.NewClient(logger, nil, configuration)
}

func (builder *CommandBuilder) resolveDestination(logger *zap.Logger, configuration cloudflare.ClientConfiguration) (DestinationOperations, error) {
	if builder.DestinationProvider != nil {
		return builder.DestinationProvider(logger, configuration)
	}
	return cloudflare.NewClient(logger, nil, configuration)
}

func resolveToken(command *cobra.Command, tokenResolver TokenResolver, tokenValue string, errorTemplate string) (string, error) {
	tokenSource, parseError := ParseTokenSource(tokenValue)
	if parseError != nil {
		return "", fmt.Errorf(errorTemplate, parseError)
	}
	resolvedToken, resolutionError := tokenResolver.ResolveToken(command.Context(), tokenSource)
	if resolutionError != nil {
		return "", fmt.Errorf(errorTemplate, resolutionError)
	}
	return resolvedToken, nil
}
