// Package cloudflare implements the destination platform client for the Cloudflare Pages API.
package cloudflare
