// Package utils provides shared configuration loading, logging, and writer helpers for pagemove commands.
package utils
