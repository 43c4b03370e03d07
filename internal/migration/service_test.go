package migration_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pagemove/internal/cloudflare"
	"github.com/temirov/pagemove/internal/migration"
	"github.com/temirov/pagemove/internal/restapi"
	"github.com/temirov/pagemove/internal/vercel"
)

type stubSourceOperations struct {
	summaries      []vercel.ProjectSummary
	details        map[string]vercel.ProjectDetail
	buildSettings  map[string]vercel.BuildSettings
	variables      map[string][]vercel.EnvironmentVariable
	listError      error
	detailErrors   map[string]error
	variableErrors map[string]error
}

func (source *stubSourceOperations) ListProjects(context.Context) ([]vercel.ProjectSummary, error) {
	if source.listError != nil {
		return nil, source.listError
	}
	return append([]vercel.ProjectSummary(nil), source.summaries...), nil
}

func (source *stubSourceOperations) GetProject(_ context.Context, projectID string) (vercel.ProjectDetail, error) {
	if source.detailErrors != nil {
		if detailError, exists := source.detailErrors[projectID]; exists {
			return vercel.ProjectDetail{}, detailError
		}
	}
	detail, exists := source.details[projectID]
	if !exists {
		return vercel.ProjectDetail{}, restapi.NotFoundError{Platform: "vercel", Resource: projectID}
	}
	return detail, nil
}

func (source *stubSourceOperations) GetBuildSettings(_ context.Context, projectID string) (vercel.BuildSettings, error) {
	return source.buildSettings[projectID], nil
}

func (source *stubSourceOperations) ListEnvironmentVariables(_ context.Context, projectID string) ([]vercel.EnvironmentVariable, error) {
	if source.variableErrors != nil {
		if variableError, exists := source.variableErrors[projectID]; exists {
			return nil, variableError
		}
	}
	return source.variables[projectID], nil
}

type recordingDestinationOperations struct {
	verificationError error
	existingProjects  map[string]bool
	existenceError    error
	createFailures    map[string]string
	createdPayloads   []cloudflare.CreatePayload
	nextCreatedID     int
}

func (destination *recordingDestinationOperations) VerifyCredentials(context.Context) error {
	return destination.verificationError
}

func (destination *recordingDestinationOperations) FindPagesProject(_ context.Context, projectName string) (bool, error) {
	if destination.existenceError != nil {
		return false, destination.existenceError
	}
	return destination.existingProjects[projectName], nil
}

func (destination *recordingDestinationOperations) CreatePagesProject(_ context.Context, payload cloudflare.CreatePayload) cloudflare.CreateResult {
	destination.createdPayloads = append(destination.createdPayloads, payload)
	if failureDetail, exists := destination.createFailures[payload.Name]; exists {
		return cloudflare.CreateResult{ErrorDetail: failureDetail}
	}
	destination.nextCreatedID++
	return cloudflare.CreateResult{Success: true, CreatedID: fmt.Sprintf("cf-%d", destination.nextCreatedID)}
}

func gitLinkedSummary(projectID string, projectName string) vercel.ProjectSummary {
	return vercel.ProjectSummary{
		ID:   projectID,
		Name: projectName,
		Link: &vercel.RepositoryLink{Type: "github", Organization: "acme", Repository: projectName},
	}
}

func detailFromSummary(summary vercel.ProjectSummary) vercel.ProjectDetail {
	return vercel.ProjectDetail{
		ID:        summary.ID,
		Name:      summary.Name,
		Framework: summary.Framework,
		Link:      summary.Link,
	}
}

func newServiceForTest(testInstance *testing.T, source migration.SourceOperations, destination migration.DestinationOperations) *migration.Service {
	service, serviceError := migration.NewService(migration.ServiceDependencies{
		Logger:      zap.NewNop(),
		Source:      source,
		Destination: destination,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func TestServiceReportsMixedOutcomesWithCountsSummingToTotal(testInstance *testing.T) {
	testInstance.Parallel()

	summaryA := gitLinkedSummary("prj_a", "alpha")
	summaryB := vercel.ProjectSummary{ID: "prj_b", Name: "beta"}
	summaryC := gitLinkedSummary("prj_c", "gamma")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{summaryA, summaryB, summaryC},
		details: map[string]vercel.ProjectDetail{
			"prj_a": detailFromSummary(summaryA),
			"prj_b": {ID: "prj_b", Name: "beta"},
			"prj_c": detailFromSummary(summaryC),
		},
		variables: map[string][]vercel.EnvironmentVariable{
			"prj_a": {{Key: "KEY1", Value: "val1", Targets: []vercel.EnvironmentTarget{vercel.EnvironmentTargetProduction}}},
		},
	}
	destination := &recordingDestinationOperations{
		createFailures: map[string]string{"gamma": "CreatePagesProject returned status 500: internal error"},
	}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{})
	require.NoError(testInstance, executionError)

	require.Len(testInstance, report.Results, 3)
	require.Equal(testInstance, 1, report.Created)
	require.Equal(testInstance, 1, report.Skipped)
	require.Equal(testInstance, 1, report.Failed)
	require.Equal(testInstance, len(report.Results), report.Created+report.Skipped+report.Failed)

	require.Equal(testInstance, migration.OutcomeCreated, report.Results[0].Outcome)
	require.NotEmpty(testInstance, report.Results[0].CreatedID)

	require.Equal(testInstance, migration.OutcomeSkipped, report.Results[1].Outcome)
	require.Equal(testInstance, string(migration.SkipReasonNoGitIntegration), report.Results[1].Reason)

	require.Equal(testInstance, migration.OutcomeFailed, report.Results[2].Outcome)
	require.ErrorContains(testInstance, report.Results[2].Err, "status 500")

	require.Len(testInstance, destination.createdPayloads, 2)
	expectedVariables := cloudflare.OrderedVariables{{Key: "KEY1", Value: "val1"}}
	require.Equal(testInstance, expectedVariables, destination.createdPayloads[0].DeploymentConfigurations.Production.EnvironmentVariables)
	require.Empty(testInstance, destination.createdPayloads[0].DeploymentConfigurations.Preview.EnvironmentVariables)
}

func TestServiceContinuesPastSingleProjectFetchFailure(testInstance *testing.T) {
	testInstance.Parallel()

	summaryOne := gitLinkedSummary("prj_1", "first")
	summaryTwo := gitLinkedSummary("prj_2", "second")
	summaryThree := gitLinkedSummary("prj_3", "third")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{summaryOne, summaryTwo, summaryThree},
		details: map[string]vercel.ProjectDetail{
			"prj_1": detailFromSummary(summaryOne),
			"prj_3": detailFromSummary(summaryThree),
		},
		detailErrors: map[string]error{
			"prj_2": restapi.TransientAPIError{Platform: "vercel", StatusCode: 502},
		},
	}
	destination := &recordingDestinationOperations{}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{})
	require.NoError(testInstance, executionError)

	require.Len(testInstance, report.Results, 3)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[0].Outcome)
	require.Equal(testInstance, migration.OutcomeFailed, report.Results[1].Outcome)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[2].Outcome)
}

func TestServicePermissionDeniedOnVariablesFailsOnlyThatProject(testInstance *testing.T) {
	testInstance.Parallel()

	summaryOne := gitLinkedSummary("prj_1", "first")
	summaryTwo := gitLinkedSummary("prj_2", "second")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{summaryOne, summaryTwo},
		details: map[string]vercel.ProjectDetail{
			"prj_1": detailFromSummary(summaryOne),
			"prj_2": detailFromSummary(summaryTwo),
		},
		variableErrors: map[string]error{
			"prj_1": restapi.PermissionDeniedError{Platform: "vercel", Resource: "environment variables for project prj_1", StatusCode: 403},
		},
	}
	destination := &recordingDestinationOperations{}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{})
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, migration.OutcomeFailed, report.Results[0].Outcome)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[1].Outcome)
}

func TestServiceSkipsProjectThatVanishedBetweenListingAndDetailFetch(testInstance *testing.T) {
	testInstance.Parallel()

	vanishedSummary := gitLinkedSummary("prj_gone", "vanished")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{vanishedSummary},
		details:   map[string]vercel.ProjectDetail{},
	}
	destination := &recordingDestinationOperations{}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{})
	require.NoError(testInstance, executionError)

	require.Len(testInstance, report.Results, 1)
	require.Equal(testInstance, migration.OutcomeSkipped, report.Results[0].Outcome)
	require.Equal(testInstance, string(migration.SkipReasonSourceProjectVanished), report.Results[0].Reason)
	require.Empty(testInstance, destination.createdPayloads)
}

func TestServiceCredentialVerificationFailureAbortsBeforeAnyProject(testInstance *testing.T) {
	testInstance.Parallel()

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{gitLinkedSummary("prj_1", "first")},
	}
	destination := &recordingDestinationOperations{
		verificationError: restapi.AuthenticationError{Platform: "cloudflare", StatusCode: 401},
	}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{})

	require.Error(testInstance, executionError)
	require.ErrorContains(testInstance, executionError, "credential verification failed")
	require.Empty(testInstance, report.Results)
	require.Empty(testInstance, destination.createdPayloads)
}

func TestServiceEnumerationFailureIsRunFatal(testInstance *testing.T) {
	testInstance.Parallel()

	source := &stubSourceOperations{
		listError: restapi.AuthenticationError{Platform: "vercel", StatusCode: 401},
	}
	destination := &recordingDestinationOperations{}

	service := newServiceForTest(testInstance, source, destination)
	_, executionError := service.Execute(context.Background(), migration.MigrationOptions{})

	require.Error(testInstance, executionError)
	require.ErrorContains(testInstance, executionError, "enumeration failed")

	var authenticationError restapi.AuthenticationError
	require.True(testInstance, errors.As(executionError, &authenticationError))
}

func TestServiceMigratesSingleRequestedProject(testInstance *testing.T) {
	testInstance.Parallel()

	requestedSummary := gitLinkedSummary("prj_only", "solo")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{gitLinkedSummary("prj_other", "other"), requestedSummary},
		details: map[string]vercel.ProjectDetail{
			"prj_only": detailFromSummary(requestedSummary),
		},
	}
	destination := &recordingDestinationOperations{}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{ProjectID: "prj_only"})
	require.NoError(testInstance, executionError)

	require.Len(testInstance, report.Results, 1)
	require.Equal(testInstance, "prj_only", report.Results[0].ProjectID)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[0].Outcome)
	require.Len(testInstance, destination.createdPayloads, 1)
}

func TestServiceSkipExistingChecksDestinationBeforeCreating(testInstance *testing.T) {
	testInstance.Parallel()

	existingSummary := gitLinkedSummary("prj_1", "already-there")
	freshSummary := gitLinkedSummary("prj_2", "fresh")

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{existingSummary, freshSummary},
		details: map[string]vercel.ProjectDetail{
			"prj_1": detailFromSummary(existingSummary),
			"prj_2": detailFromSummary(freshSummary),
		},
	}
	destination := &recordingDestinationOperations{
		existingProjects: map[string]bool{"already-there": true},
	}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(context.Background(), migration.MigrationOptions{SkipExisting: true})
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, migration.OutcomeSkipped, report.Results[0].Outcome)
	require.Equal(testInstance, string(migration.SkipReasonAlreadyExists), report.Results[0].Reason)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[1].Outcome)
	require.Len(testInstance, destination.createdPayloads, 1)
	require.Equal(testInstance, "fresh", destination.createdPayloads[0].Name)
}

func TestServiceCancellationReturnsPartialReport(testInstance *testing.T) {
	testInstance.Parallel()

	summaryOne := gitLinkedSummary("prj_1", "first")
	summaryTwo := gitLinkedSummary("prj_2", "second")

	executionContext, cancelExecution := context.WithCancel(context.Background())

	source := &stubSourceOperations{
		summaries: []vercel.ProjectSummary{summaryOne, summaryTwo},
		details: map[string]vercel.ProjectDetail{
			"prj_1": detailFromSummary(summaryOne),
			"prj_2": detailFromSummary(summaryTwo),
		},
	}
	destination := &cancellingDestination{cancel: cancelExecution}

	service := newServiceForTest(testInstance, source, destination)
	report, executionError := service.Execute(executionContext, migration.MigrationOptions{})

	require.ErrorIs(testInstance, executionError, context.Canceled)
	require.Len(testInstance, report.Results, 1)
	require.Equal(testInstance, migration.OutcomeCreated, report.Results[0].Outcome)
}

type cancellingDestination struct {
	cancel context.CancelFunc
}

func (destination *cancellingDestination) VerifyCredentials(context.Context) error {
	return nil
}

func (destination *cancellingDestination) FindPagesProject(context.Context, string) (bool, error) {
	return false, nil
}

func (destination *cancellingDestination) CreatePagesProject(context.Context, cloudflare.CreatePayload) cloudflare.CreateResult {
	destination.cancel()
	return cloudflare.CreateResult{Success: true, CreatedID: "cf-1"}
}
