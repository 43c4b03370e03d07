// Package restapi provides the shared HTTP error taxonomy and bearer-token transport used by platform clients.
package restapi
