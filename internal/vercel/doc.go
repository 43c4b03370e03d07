// Package vercel implements the read-only source platform client for the Vercel v9 API.
package vercel
