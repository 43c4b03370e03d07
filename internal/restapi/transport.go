package restapi

import (
	"net/http"
	"time"
)

const (
	authorizationHeaderNameConstant = "Authorization"
	bearerTokenPrefixConstant       = "Bearer "
	contentTypeHeaderNameConstant   = "Content-Type"
	jsonContentTypeConstant         = "application/json"
	defaultRequestTimeoutSeconds    = 30
)

// HTTPClient abstracts request execution for platform clients.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// BearerTokenTransport attaches bearer-token authorization to outgoing requests.
type BearerTokenTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (transport *BearerTokenTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	clonedRequest := request.Clone(request.Context())
	clonedRequest.Header.Set(authorizationHeaderNameConstant, bearerTokenPrefixConstant+transport.Token)

	baseTransport := transport.Base
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	return baseTransport.RoundTrip(clonedRequest)
}

// NewBearerTokenHTTPClient constructs an http.Client that authenticates every request with the provided token.
func NewBearerTokenHTTPClient(token string) *http.Client {
	return &http.Client{
		Transport: &BearerTokenTransport{Token: token},
		Timeout:   defaultRequestTimeoutSeconds * time.Second,
	}
}

// SetJSONContentType marks the request body as JSON.
func SetJSONContentType(request *http.Request) {
	request.Header.Set(contentTypeHeaderNameConstant, jsonContentTypeConstant)
}
