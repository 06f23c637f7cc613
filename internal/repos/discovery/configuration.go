package discovery

import "strings"

// CommandConfiguration captures persistent settings for the discover command.
type CommandConfiguration struct {
	Roots                   []string `mapstructure:"roots"`
	MaxParallelRepositories int      `mapstructure:"max_parallel_repositories"`
}

// DefaultCommandConfiguration returns baseline configuration values for the discover command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Roots: []string{"."}}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Roots = make([]string, 0, len(configuration.Roots))
	for _, root := range configuration.Roots {
		if trimmedRoot := strings.TrimSpace(root); len(trimmedRoot) > 0 {
			sanitized.Roots = append(sanitized.Roots, trimmedRoot)
		}
	}
	if sanitized.MaxParallelRepositories < 0 {
		sanitized.MaxParallelRepositories = 0
	}
	return sanitized
}
