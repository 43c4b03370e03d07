package vercel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/temirov/pagemove/internal/restapi"
)

const (
	platformNameConstant                   = "vercel"
	defaultBaseURLConstant                 = "https://api.vercel.com"
	projectsPathConstant                   = "/v9/projects"
	projectPathTemplateConstant            = "/v9/projects/%s"
	environmentVariablesPathTemplate       = "/v9/projects/%s/env"
	domainsPathTemplateConstant            = "/v9/projects/%s/domains"
	untilQueryParameterNameConstant        = "until"
	limitQueryParameterNameConstant        = "limit"
	retryAfterHeaderNameConstant           = "Retry-After"
	apiTokenMissingErrorMessageConstant    = "vercel API token must be provided"
	projectIDMissingErrorMessageConstant   = "project identifier must be provided"
	requestCreationErrorTemplateConstant   = "unable to build %s request: %w"
	requestExecutionErrorTemplateConstant  = "%s request failed: %w"
	listProjectsOperationNameConstant      = "ListProjects"
	getProjectOperationNameConstant        = "GetProject"
	getBuildSettingsOperationNameConstant  = "GetBuildSettings"
	listVariablesOperationNameConstant     = "ListEnvironmentVariables"
	listDomainsOperationNameConstant       = "ListDomains"
	projectsResourceNameConstant           = "projects"
	projectResourceTemplateConstant        = "project %s"
	variablesResourceTemplateConstant      = "environment variables for project %s"
	domainsResourceTemplateConstant        = "domains for project %s"
	logMessagePageFetchedConstant          = "Fetched project listing page"
	logMessageDomainsFetchedConstant       = "Fetched project domains"
	logFieldProjectCountConstant           = "project_count"
	logFieldProjectIDConstant              = "project_id"
	logFieldDomainCountConstant            = "domain_count"
)

var errAPITokenMissing = errors.New(apiTokenMissingErrorMessageConstant)
var errProjectIDMissing = errors.New(projectIDMissingErrorMessageConstant)

// ClientConfiguration carries explicit credentials and endpoint settings for the source client.
type ClientConfiguration struct {
	APIToken string
	BaseURL  string
	PageSize int
}

// Client reads project configuration from the Vercel API. Every call hits the network; no responses are cached.
type Client struct {
	logger        *zap.Logger
	httpClient    restapi.HTTPClient
	configuration ClientConfiguration
}

// NewClient constructs a source client from explicit configuration.
func NewClient(logger *zap.Logger, httpClient restapi.HTTPClient, configuration ClientConfiguration) (*Client, error) {
	if len(configuration.APIToken) == 0 {
		return nil, errAPITokenMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = restapi.NewBearerTokenHTTPClient(configuration.APIToken)
	}
	if len(configuration.BaseURL) == 0 {
		configuration.BaseURL = defaultBaseURLConstant
	}

	client := &Client{
		logger:        logger,
		httpClient:    httpClient,
		configuration: configuration,
	}

	return client, nil
}

// ListProjects enumerates all accessible projects, following pagination markers until exhausted.
func (client *Client) ListProjects(executionContext context.Context) ([]ProjectSummary, error) {
	var collectedProjects []ProjectSummary
	var paginationCursor *int64

	for {
		requestURL := client.configuration.BaseURL + projectsPathConstant
		querySeparator := "?"
		if client.configuration.PageSize > 0 {
			requestURL += querySeparator + limitQueryParameterNameConstant + "=" + strconv.Itoa(client.configuration.PageSize)
			querySeparator = "&"
		}
		if paginationCursor != nil {
			requestURL += querySeparator + untilQueryParameterNameConstant + "=" + strconv.FormatInt(*paginationCursor, 10)
		}

		var pageResponse projectListResponse
		if requestError := client.executeGet(executionContext, listProjectsOperationNameConstant, requestURL, projectsResourceNameConstant, &pageResponse); requestError != nil {
			return nil, requestError
		}

		collectedProjects = append(collectedProjects, pageResponse.Projects...)
		client.logger.Debug(logMessagePageFetchedConstant, zap.Int(logFieldProjectCountConstant, len(pageResponse.Projects)))

		if pageResponse.Pagination.Next == nil {
			break
		}
		paginationCursor = pageResponse.Pagination.Next
	}

	return collectedProjects, nil
}

// GetProject fetches the detailed representation of one project.
func (client *Client) GetProject(executionContext context.Context, projectID string) (ProjectDetail, error) {
	if len(projectID) == 0 {
		return ProjectDetail{}, errProjectIDMissing
	}

	requestURL := client.configuration.BaseURL + fmt.Sprintf(projectPathTemplateConstant, projectID)
	resourceName := fmt.Sprintf(projectResourceTemplateConstant, projectID)

	var projectDetail ProjectDetail
	if requestError := client.executeGet(executionContext, getProjectOperationNameConstant, requestURL, resourceName, &projectDetail); requestError != nil {
		return ProjectDetail{}, requestError
	}

	return projectDetail, nil
}

// GetBuildSettings fetches build configuration; absent fields stay nil so provider defaults apply downstream.
func (client *Client) GetBuildSettings(executionContext context.Context, projectID string) (BuildSettings, error) {
	if len(projectID) == 0 {
		return BuildSettings{}, errProjectIDMissing
	}

	requestURL := client.configuration.BaseURL + fmt.Sprintf(projectPathTemplateConstant, projectID)
	resourceName := fmt.Sprintf(projectResourceTemplateConstant, projectID)

	var projectDetail ProjectDetail
	if requestError := client.executeGet(executionContext, getBuildSettingsOperationNameConstant, requestURL, resourceName, &projectDetail); requestError != nil {
		return BuildSettings{}, requestError
	}

	buildSettings := BuildSettings{
		BuildCommand:    projectDetail.BuildCommand,
		OutputDirectory: projectDetail.OutputDirectory,
		RootDirectory:   projectDetail.RootDirectory,
	}

	return buildSettings, nil
}

// ListEnvironmentVariables fetches decrypted variables in provider order. A token lacking
// variable-read scope yields a PermissionDeniedError scoped to this project only.
func (client *Client) ListEnvironmentVariables(executionContext context.Context, projectID string) ([]EnvironmentVariable, error) {
	if len(projectID) == 0 {
		return nil, errProjectIDMissing
	}

	requestURL := client.configuration.BaseURL + fmt.Sprintf(environmentVariablesPathTemplate, projectID)
	resourceName := fmt.Sprintf(variablesResourceTemplateConstant, projectID)

	response, requestError := client.executeRequest(executionContext, listVariablesOperationNameConstant, requestURL)
	if requestError != nil {
		return nil, requestError
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusForbidden {
		return nil, restapi.PermissionDeniedError{
			Platform:   platformNameConstant,
			Resource:   resourceName,
			StatusCode: response.StatusCode,
		}
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, restapi.ClassifyResponseStatus(platformNameConstant, resourceName, response.StatusCode, response.Header.Get(retryAfterHeaderNameConstant))
	}

	var variableList environmentVariableListResponse
	if decodeError := json.NewDecoder(response.Body).Decode(&variableList); decodeError != nil {
		return nil, restapi.ResponseDecodingError{Operation: listVariablesOperationNameConstant, Cause: decodeError}
	}

	return variableList.Variables, nil
}

// ListDomains fetches project domain names. The result is informational only and never feeds a migration payload.
func (client *Client) ListDomains(executionContext context.Context, projectID string) ([]string, error) {
	if len(projectID) == 0 {
		return nil, errProjectIDMissing
	}

	requestURL := client.configuration.BaseURL + fmt.Sprintf(domainsPathTemplateConstant, projectID)
	resourceName := fmt.Sprintf(domainsResourceTemplateConstant, projectID)

	var domainList domainListResponse
	if requestError := client.executeGet(executionContext, listDomainsOperationNameConstant, requestURL, resourceName, &domainList); requestError != nil {
		return nil, requestError
	}

	domainNames := make([]string, 0, len(domainList.Domains))
	for _, domain := range domainList.Domains {
		domainNames = append(domainNames, domain.Name)
	}

	client.logger.Debug(
		logMessageDomainsFetchedConstant,
		zap.String(logFieldProjectIDConstant, projectID),
		zap.Int(logFieldDomainCountConstant, len(domainNames)),
	)

	return domainNames, nil
}

func (client *Client) executeGet(executionContext context.Context, operationName string, requestURL string, resourceName string, target any) error {
	response, requestError := client.executeRequest(executionContext, operationName, requestURL)
	if requestError != nil {
		return requestError
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return restapi.ClassifyResponseStatus(platformNameConstant, resourceName, response.StatusCode, response.Header.Get(retryAfterHeaderNameConstant))
	}

	if decodeError := json.NewDecoder(response.Body).Decode(target); decodeError != nil {
		return restapi.ResponseDecodingError{Operation: operationName, Cause: decodeError}
	}

	return nil
}

func (client *Client) executeRequest(executionContext context.Context, operationName string, requestURL string) (*http.Response, error) {
	request, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodGet, requestURL, nil)
	if requestCreationError != nil {
		return nil, fmt.Errorf(requestCreationErrorTemplateConstant, operationName, requestCreationError)
	}

	response, executionError := client.httpClient.Do(request)
	if executionError != nil {
		return nil, restapi.TransientAPIError{Platform: platformNameConstant, Cause: fmt.Errorf(requestExecutionErrorTemplateConstant, operationName, executionError)}
	}

	return response, nil
}
