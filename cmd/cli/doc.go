// Package cli constructs the repostat command-line interface, wiring the
// Cobra command hierarchy, the Viper configuration loader, and zap logging
// around the status and discover commands.
package cli
