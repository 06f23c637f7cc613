// Package utils exposes the ambient helpers shared by repostat commands:
// ConfigurationLoader (Viper, embedded defaults, environment overrides) and
// LoggerFactory (zap).
package utils
