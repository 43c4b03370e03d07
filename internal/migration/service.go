package migration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pagemove/internal/cloudflare"
	"github.com/temirov/pagemove/internal/restapi"
	"github.com/temirov/pagemove/internal/vercel"
)

const (
	sourceClientMissingMessageConstant           = "source client not configured"
	destinationClientMissingMessageConstant      = "destination client not configured"
	credentialVerificationErrorTemplateConstant  = "destination credential verification failed: %w"
	projectEnumerationErrorTemplateConstant      = "source project enumeration failed: %w"
	singleProjectResolutionErrorTemplateConstant = "unable to resolve requested project %s: %w"
	detailFetchErrorTemplateConstant             = "detail fetch failed: %w"
	buildSettingsFetchErrorTemplateConstant      = "build settings fetch failed: %w"
	variablesFetchErrorTemplateConstant          = "environment variable fetch failed: %w"
	existenceCheckErrorTemplateConstant          = "destination existence check failed: %w"
	createFailureDetailTemplateConstant          = "create failed: %s"
	logMessageMigrationStartedConstant           = "Migration run started"
	logMessageProjectOutcomeConstant             = "Project migration finished"
	logMessageRunCancelledConstant               = "Migration run cancelled"
	logFieldProjectIDConstant                    = "project_id"
	logFieldProjectNameConstant                  = "project_name"
	logFieldOutcomeConstant                      = "outcome"
	logFieldTargetCountConstant                  = "target_count"
	logFieldSkipExistingConstant                 = "skip_existing"
)

var errSourceClientMissing = errors.New(sourceClientMissingMessageConstant)
var errDestinationClientMissing = errors.New(destinationClientMissingMessageConstant)

// SourceOperations is the read surface the orchestrator requires from the source platform.
type SourceOperations interface {
	ListProjects(executionContext context.Context) ([]vercel.ProjectSummary, error)
	GetProject(executionContext context.Context, projectID string) (vercel.ProjectDetail, error)
	GetBuildSettings(executionContext context.Context, projectID string) (vercel.BuildSettings, error)
	ListEnvironmentVariables(executionContext context.Context, projectID string) ([]vercel.EnvironmentVariable, error)
}

// DestinationOperations is the write surface the orchestrator requires from the destination platform.
type DestinationOperations interface {
	VerifyCredentials(executionContext context.Context) error
	FindPagesProject(executionContext context.Context, projectName string) (bool, error)
	CreatePagesProject(executionContext context.Context, payload cloudflare.CreatePayload) cloudflare.CreateResult
}

// ServiceDependencies describes required collaborators for the migration orchestrator.
type ServiceDependencies struct {
	Logger      *zap.Logger
	Source      SourceOperations
	Destination DestinationOperations
	Mapper      *Mapper
	Reporter    Reporter
}

// MigrationOptions configures one migration run.
type MigrationOptions struct {
	ProjectID    string
	SkipExisting bool
}

// Service orchestrates the migration pipeline sequentially with per-project failure isolation.
type Service struct {
	logger      *zap.Logger
	source      SourceOperations
	destination DestinationOperations
	mapper      *Mapper
	reporter    Reporter
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Source == nil {
		return nil, errSourceClientMissing
	}
	if dependencies.Destination == nil {
		return nil, errDestinationClientMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mapper := dependencies.Mapper
	if mapper == nil {
		mapper = NewMapper(nil, nil)
	}

	reporter := dependencies.Reporter
	if reporter == nil {
		reporter = NewDiscardReporter()
	}

	service := &Service{
		logger:      logger,
		source:      dependencies.Source,
		destination: dependencies.Destination,
		mapper:      mapper,
		reporter:    reporter,
	}

	return service, nil
}

// Execute runs the migration pipeline. The only run-fatal conditions are destination credential
// verification failure and a source enumeration that yields no target set; every per-project
// error is converted into a ProjectResult and the batch continues. Cancelling the context ends
// the run between projects and returns the partial report alongside the context error.
func (service *Service) Execute(executionContext context.Context, options MigrationOptions) (Report, error) {
	if verificationError := service.destination.VerifyCredentials(executionContext); verificationError != nil {
		return Report{}, fmt.Errorf(credentialVerificationErrorTemplateConstant, verificationError)
	}

	targetProjects, resolutionError := service.resolveTargets(executionContext, options)
	if resolutionError != nil {
		return Report{}, resolutionError
	}

	service.logger.Info(
		logMessageMigrationStartedConstant,
		zap.Int(logFieldTargetCountConstant, len(targetProjects)),
		zap.Bool(logFieldSkipExistingConstant, options.SkipExisting),
	)

	var report Report
	for _, targetProject := range targetProjects {
		if contextError := executionContext.Err(); contextError != nil {
			service.logger.Warn(logMessageRunCancelledConstant, zap.Int(logFieldTargetCountConstant, len(report.Results)))
			service.reportSummary(report)
			return report, contextError
		}

		projectResult := service.migrateProject(executionContext, targetProject, options)
		report.record(projectResult)
		service.reportOutcome(projectResult)

		service.logger.Info(
			logMessageProjectOutcomeConstant,
			zap.String(logFieldProjectIDConstant, projectResult.ProjectID),
			zap.String(logFieldProjectNameConstant, projectResult.ProjectName),
			zap.String(logFieldOutcomeConstant, string(projectResult.Outcome)),
		)
	}

	service.reportSummary(report)
	return report, nil
}

func (service *Service) resolveTargets(executionContext context.Context, options MigrationOptions) ([]vercel.ProjectSummary, error) {
	if len(options.ProjectID) > 0 {
		projectDetail, detailError := service.source.GetProject(executionContext, options.ProjectID)
		if detailError != nil {
			return nil, fmt.Errorf(singleProjectResolutionErrorTemplateConstant, options.ProjectID, detailError)
		}
		singleTarget := vercel.ProjectSummary{
			ID:        projectDetail.ID,
			Name:      projectDetail.Name,
			Framework: projectDetail.Framework,
			Link:      projectDetail.Link,
		}
		return []vercel.ProjectSummary{singleTarget}, nil
	}

	listedProjects, listError := service.source.ListProjects(executionContext)
	if listError != nil {
		return nil, fmt.Errorf(projectEnumerationErrorTemplateConstant, listError)
	}
	return listedProjects, nil
}

// migrateProject walks one project through Fetching, Mapping, and Creating; every return value is
// a terminal state and nothing escapes to abort the batch.
func (service *Service) migrateProject(executionContext context.Context, targetProject vercel.ProjectSummary, options MigrationOptions) ProjectResult {
	projectResult := ProjectResult{
		ProjectID:   targetProject.ID,
		ProjectName: targetProject.Name,
	}

	if options.SkipExisting {
		projectExists, existenceError := service.destination.FindPagesProject(executionContext, targetProject.Name)
		if existenceError != nil {
			projectResult.Outcome = OutcomeFailed
			projectResult.Err = fmt.Errorf(existenceCheckErrorTemplateConstant, existenceError)
			return projectResult
		}
		if projectExists {
			projectResult.Outcome = OutcomeSkipped
			projectResult.Reason = string(SkipReasonAlreadyExists)
			return projectResult
		}
	}

	projectDetail, detailError := service.source.GetProject(executionContext, targetProject.ID)
	if detailError != nil {
		var notFoundError restapi.NotFoundError
		if errors.As(detailError, &notFoundError) {
			projectResult.Outcome = OutcomeSkipped
			projectResult.Reason = string(SkipReasonSourceProjectVanished)
			return projectResult
		}
		projectResult.Outcome = OutcomeFailed
		projectResult.Err = fmt.Errorf(detailFetchErrorTemplateConstant, detailError)
		return projectResult
	}

	buildSettings, buildSettingsError := service.source.GetBuildSettings(executionContext, targetProject.ID)
	if buildSettingsError != nil {
		projectResult.Outcome = OutcomeFailed
		projectResult.Err = fmt.Errorf(buildSettingsFetchErrorTemplateConstant, buildSettingsError)
		return projectResult
	}

	environmentVariables, variablesError := service.source.ListEnvironmentVariables(executionContext, targetProject.ID)
	if variablesError != nil {
		projectResult.Outcome = OutcomeFailed
		projectResult.Err = fmt.Errorf(variablesFetchErrorTemplateConstant, variablesError)
		return projectResult
	}

	payload, skipReason := service.mapper.Map(projectDetail, buildSettings, environmentVariables)
	if skipReason != nil {
		projectResult.Outcome = OutcomeSkipped
		projectResult.Reason = string(*skipReason)
		return projectResult
	}

	createResult := service.destination.CreatePagesProject(executionContext, payload)
	if !createResult.Success {
		projectResult.Outcome = OutcomeFailed
		projectResult.Err = fmt.Errorf(createFailureDetailTemplateConstant, createResult.ErrorDetail)
		return projectResult
	}

	projectResult.Outcome = OutcomeCreated
	projectResult.CreatedID = createResult.CreatedID
	return projectResult
}
