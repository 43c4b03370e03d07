// Package cli wires the pagemove root command, configuration loading, and structured logging.
package cli
