package restapi

import (
	"fmt"
	"net/http"
	"time"
)

const (
	authenticationErrorTemplateConstant   = "%s authentication failed with status %d"
	permissionDeniedErrorTemplateConstant = "%s denied access to %s with status %d"
	notFoundErrorTemplateConstant         = "%s resource %s not found"
	rateLimitErrorTemplateConstant        = "%s rate limit exceeded"
	rateLimitRetryAfterTemplateConstant   = "%s rate limit exceeded, retry after %s"
	transientErrorStatusTemplateConstant  = "%s request failed with status %d"
	transientErrorCauseTemplateConstant   = "%s request failed: %s"
	decodingErrorTemplateConstant         = "%s response decoding failed: %s"
)

// AuthenticationError reports rejected credentials on a primary resource.
type AuthenticationError struct {
	Platform   string
	StatusCode int
}

// Error describes the authentication failure.
func (authenticationError AuthenticationError) Error() string {
	return fmt.Sprintf(authenticationErrorTemplateConstant, authenticationError.Platform, authenticationError.StatusCode)
}

// PermissionDeniedError reports a token lacking scope for a sub-resource.
type PermissionDeniedError struct {
	Platform   string
	Resource   string
	StatusCode int
}

// Error describes the permission failure.
func (permissionError PermissionDeniedError) Error() string {
	return fmt.Sprintf(permissionDeniedErrorTemplateConstant, permissionError.Platform, permissionError.Resource, permissionError.StatusCode)
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Platform string
	Resource string
}

// Error describes the missing resource.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Platform, notFoundError.Resource)
}

// RateLimitError reports an exhausted request quota. RetryAfter is advisory; no backoff is performed.
type RateLimitError struct {
	Platform   string
	RetryAfter time.Duration
}

// Error describes the rate limit condition.
func (rateLimitError RateLimitError) Error() string {
	if rateLimitError.RetryAfter > 0 {
		return fmt.Sprintf(rateLimitRetryAfterTemplateConstant, rateLimitError.Platform, rateLimitError.RetryAfter)
	}
	return fmt.Sprintf(rateLimitErrorTemplateConstant, rateLimitError.Platform)
}

// TransientAPIError reports a server-side or transport failure.
type TransientAPIError struct {
	Platform   string
	StatusCode int
	Cause      error
}

// Error describes the transient failure.
func (transientError TransientAPIError) Error() string {
	if transientError.Cause != nil {
		return fmt.Sprintf(transientErrorCauseTemplateConstant, transientError.Platform, transientError.Cause)
	}
	return fmt.Sprintf(transientErrorStatusTemplateConstant, transientError.Platform, transientError.StatusCode)
}

// Unwrap exposes the underlying cause.
func (transientError TransientAPIError) Unwrap() error {
	return transientError.Cause
}

// ResponseDecodingError reports JSON decoding failures for an operation.
type ResponseDecodingError struct {
	Operation string
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(decodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying cause.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// ClassifyResponseStatus maps a non-2xx status code onto the shared error taxonomy.
func ClassifyResponseStatus(platform string, resource string, statusCode int, retryAfterHeader string) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return AuthenticationError{Platform: platform, StatusCode: statusCode}
	case statusCode == http.StatusNotFound:
		return NotFoundError{Platform: platform, Resource: resource}
	case statusCode == http.StatusTooManyRequests:
		return RateLimitError{Platform: platform, RetryAfter: parseRetryAfter(retryAfterHeader)}
	case statusCode >= http.StatusInternalServerError:
		return TransientAPIError{Platform: platform, StatusCode: statusCode}
	default:
		return TransientAPIError{Platform: platform, StatusCode: statusCode}
	}
}

func parseRetryAfter(retryAfterHeader string) time.Duration {
	if len(retryAfterHeader) == 0 {
		return 0
	}
	parsedSeconds, parseError := time.ParseDuration(retryAfterHeader + "s")
	if parseError != nil {
		return 0
	}
	return parsedSeconds
}
