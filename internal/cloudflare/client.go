package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pagemove/internal/restapi"
)

const (
	platformNameConstant                  = "cloudflare"
	defaultBaseURLConstant                = "https://api.cloudflare.com/client/v4"
	verifyTokenPathConstant               = "/user/tokens/verify"
	pagesProjectsPathTemplateConstant     = "/accounts/%s/pages/projects"
	pagesProjectPathTemplateConstant      = "/accounts/%s/pages/projects/%s"
	retryAfterHeaderNameConstant          = "Retry-After"
	apiTokenMissingErrorMessageConstant   = "cloudflare API token must be provided"
	accountIDMissingErrorMessageConstant  = "cloudflare account identifier must be provided"
	verifyCredentialsOperationConstant    = "VerifyCredentials"
	findPagesProjectOperationConstant     = "FindPagesProject"
	createPagesProjectOperationConstant   = "CreatePagesProject"
	tokenVerificationResourceConstant     = "token verification"
	pagesProjectResourceTemplateConstant  = "pages project %s"
	requestCreationErrorTemplateConstant  = "unable to build %s request: %w"
	requestExecutionErrorTemplateConstant = "%s request failed: %s"
	payloadEncodingErrorTemplateConstant  = "%s payload encoding failed: %s"
	unexpectedStatusDetailTemplate        = "%s returned status %d: %s"
	apiErrorDetailSeparatorConstant       = "; "
	logMessageProjectCreatedConstant      = "Created Pages project"
	logMessageCreateFailedConstant        = "Pages project creation failed"
	logFieldProjectNameConstant           = "project_name"
	logFieldSubdomainConstant             = "subdomain"
	logFieldErrorDetailConstant           = "error_detail"
)

var errAPITokenMissing = errors.New(apiTokenMissingErrorMessageConstant)
var errAccountIDMissing = errors.New(accountIDMissingErrorMessageConstant)

// ClientConfiguration carries explicit credentials and endpoint settings for the destination client.
type ClientConfiguration struct {
	APIToken  string
	AccountID string
	BaseURL   string
}

// Client creates Pages projects through the Cloudflare API.
type Client struct {
	logger        *zap.Logger
	httpClient    restapi.HTTPClient
	configuration ClientConfiguration
}

// NewClient constructs a destination client from explicit configuration.
func NewClient(logger *zap.Logger, httpClient restapi.HTTPClient, configuration ClientConfiguration) (*Client, error) {
	if len(configuration.APIToken) == 0 {
		return nil, errAPITokenMissing
	}
	if len(configuration.AccountID) == 0 {
		return nil, errAccountIDMissing
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

// VerifyCredentials performs a cheap pre-flight token check. Callers treat a failure here as
// fatal for the whole batch because no create call could succeed.
func (client *Client) VerifyCredentials(executionContext context.Context) error {
	requestURL := client.configuration.BaseURL + verifyTokenPathConstant

	request, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodGet, requestURL, nil)
	if requestCreationError != nil {
		return fmt.Errorf(requestCreationErrorTemplateConstant, verifyCredentialsOperationConstant, requestCreationError)
	}

	response, executionError := client.httpClient.Do(request)
	if executionError != nil {
		return restapi.TransientAPIError{Platform: platformNameConstant, Cause: executionError}
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return restapi.ClassifyResponseStatus(platformNameConstant, tokenVerificationResourceConstant, response.StatusCode, response.Header.Get(retryAfterHeaderNameConstant))
	}

	return nil
}

// FindPagesProject reports whether a Pages project with the given name already exists.
func (client *Client) FindPagesProject(executionContext context.Context, projectName string) (bool, error) {
	requestURL := client.configuration.BaseURL + fmt.Sprintf(pagesProjectPathTemplateConstant, client.configuration.AccountID, projectName)
	resourceName := fmt.Sprintf(pagesProjectResourceTemplateConstant, projectName)

	request, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodGet, requestURL, nil)
	if requestCreationError != nil {
		return false, fmt.Errorf(requestCreationErrorTemplateConstant, findPagesProjectOperationConstant, requestCreationError)
	}

	response, executionError := client.httpClient.Do(request)
	if executionError != nil {
		return false, restapi.TransientAPIError{Platform: platformNameConstant, Cause: executionError}
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return false, nil
	case response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices:
		return true, nil
	default:
		return false, restapi.ClassifyResponseStatus(platformNameConstant, resourceName, response.StatusCode, response.Header.Get(retryAfterHeaderNameConstant))
	}
}

// CreatePagesProject attempts one project creation and reports the outcome as a soft result.
// Transport failures and non-2xx responses surface in ErrorDetail; no retries are performed.
// Creation is not idempotent: repeating a create for the same name yields a duplicate project or
// a provider-side naming conflict, so callers should check FindPagesProject first when re-running.
func (client *Client) CreatePagesProject(executionContext context.Context, payload CreatePayload) CreateResult {
	requestURL := client.configuration.BaseURL + fmt.Sprintf(pagesProjectsPathTemplateConstant, client.configuration.AccountID)

	encodedPayload, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return CreateResult{ErrorDetail: fmt.Sprintf(payloadEncodingErrorTemplateConstant, createPagesProjectOperationConstant, encodingError)}
	}

	request, requestCreationError := http.NewRequestWithContext(executionContext, http.MethodPost, requestURL, bytes.NewReader(encodedPayload))
	if requestCreationError != nil {
		return CreateResult{ErrorDetail: requestCreationError.Error()}
	}
	restapi.SetJSONContentType(request)

	response, executionError := client.httpClient.Do(request)
	if executionError != nil {
		failureResult := CreateResult{ErrorDetail: fmt.Sprintf(requestExecutionErrorTemplateConstant, createPagesProjectOperationConstant, executionError)}
		client.logCreateFailure(payload.Name, failureResult.ErrorDetail)
		return failureResult
	}
	defer response.Body.Close()

	responseBody, _ := io.ReadAll(response.Body)

	var envelope apiEnvelope
	decodeError := json.Unmarshal(responseBody, &envelope)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices || (decodeError == nil && !envelope.Success) {
		errorDetail := client.buildErrorDetail(response.StatusCode, envelope, responseBody)
		client.logCreateFailure(payload.Name, errorDetail)
		return CreateResult{ErrorDetail: errorDetail}
	}
	if decodeError != nil {
		decodingFailure := restapi.ResponseDecodingError{Operation: createPagesProjectOperationConstant, Cause: decodeError}
		client.logCreateFailure(payload.Name, decodingFailure.Error())
		return CreateResult{ErrorDetail: decodingFailure.Error()}
	}

	client.logger.Info(
		logMessageProjectCreatedConstant,
		zap.String(logFieldProjectNameConstant, envelope.Result.Name),
		zap.String(logFieldSubdomainConstant, envelope.Result.Subdomain),
	)

	return CreateResult{
		Success:   true,
		CreatedID: envelope.Result.ID,
		Subdomain: envelope.Result.Subdomain,
	}
}

func (client *Client) buildErrorDetail(statusCode int, envelope apiEnvelope, responseBody []byte) string {
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, apiFailure := range envelope.Errors {
			messages = append(messages, apiFailure.Message)
		}
		return fmt.Sprintf(unexpectedStatusDetailTemplate, createPagesProjectOperationConstant, statusCode, strings.Join(messages, apiErrorDetailSeparatorConstant))
	}
	return fmt.Sprintf(unexpectedStatusDetailTemplate, createPagesProjectOperationConstant, statusCode, strings.TrimSpace(string(responseBody)))
}

func (client *Client) logCreateFailure(projectName string, errorDetail string) {
	client.logger.Warn(
		logMessageCreateFailedConstant,
		zap.String(logFieldProjectNameConstant, projectName),
		zap.String(logFieldErrorDetailConstant, errorDetail),
	)
}
