package restapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pagemove/internal/restapi"
)

func TestBearerTokenHTTPClientAttachesAuthorizationHeader(testInstance *testing.T) {
	testInstance.Parallel()

	var observedAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		observedAuthorization = request.Header.Get("Authorization")
		responseWriter.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := restapi.NewBearerTokenHTTPClient("tok_secret")

	request, requestError := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(testInstance, requestError)

	response, executionError := client.Do(request)
	require.NoError(testInstance, executionError)
	defer response.Body.Close()

	require.Equal(testInstance, "Bearer tok_secret", observedAuthorization)
}

func TestBearerTokenTransportLeavesOriginalRequestUnmodified(testInstance *testing.T) {
	testInstance.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, _ *http.Request) {
		responseWriter.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := &restapi.BearerTokenTransport{Token: "tok_secret"}

	request, requestError := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	require.NoError(testInstance, requestError)

	response, executionError := transport.RoundTrip(request)
	require.NoError(testInstance, executionError)
	defer response.Body.Close()

	require.Empty(testInstance, request.Header.Get("Authorization"))
}

func TestSetJSONContentTypeMarksRequestBody(testInstance *testing.T) {
	testInstance.Parallel()

	request, requestError := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://localhost/projects", nil)
	require.NoError(testInstance, requestError)

	restapi.SetJSONContentType(request)
	require.Equal(testInstance, "application/json", request.Header.Get("Content-Type"))
}
