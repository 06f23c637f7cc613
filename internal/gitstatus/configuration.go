package gitstatus

import "strings"

// CommandConfiguration captures persistent settings for the status command.
type CommandConfiguration struct {
	Roots                   []string `mapstructure:"roots"`
	Format                  string   `mapstructure:"format"`
	UnsavedOnly             bool     `mapstructure:"unsaved_only"`
	BranchRef               string   `mapstructure:"branch_ref"`
	DetachedBranchLabel     string   `mapstructure:"detached_branch_label"`
	StatusLengthThreshold   int      `mapstructure:"status_length_threshold"`
	MaxParallelRepositories int      `mapstructure:"max_parallel_repositories"`
}

// DefaultCommandConfiguration returns baseline configuration values for the status command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:                   []string{"."},
		Format:                  string(OutputFormatTable),
		UnsavedOnly:             false,
		BranchRef:               gitHeadReferenceConstant,
		DetachedBranchLabel:     defaultDetachedBranchLabelConstant,
		StatusLengthThreshold:   defaultStatusLengthThresholdConstant,
		MaxParallelRepositories: 0,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Roots = make([]string, 0, len(configuration.Roots))
	for _, root := range configuration.Roots {
		if trimmedRoot := strings.TrimSpace(root); len(trimmedRoot) > 0 {
			sanitized.Roots = append(sanitized.Roots, trimmedRoot)
		}
	}

	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = defaults.Format
	}
	sanitized.BranchRef = strings.TrimSpace(configuration.BranchRef)
	if len(sanitized.BranchRef) == 0 {
		sanitized.BranchRef = defaults.BranchRef
	}
	sanitized.DetachedBranchLabel = strings.TrimSpace(configuration.DetachedBranchLabel)
	if len(sanitized.DetachedBranchLabel) == 0 {
		sanitized.DetachedBranchLabel = defaults.DetachedBranchLabel
	}
	if sanitized.StatusLengthThreshold <= 0 {
		sanitized.StatusLengthThreshold = defaults.StatusLengthThreshold
	}
	if sanitized.MaxParallelRepositories < 0 {
		sanitized.MaxParallelRepositories = 0
	}

	return sanitized
}

func (configuration CommandConfiguration) serviceOptions() ServiceOptions {
	return ServiceOptions{
		BranchReference:         configuration.BranchRef,
		DetachedBranchLabel:     configuration.DetachedBranchLabel,
		StatusLengthThreshold:   configuration.StatusLengthThreshold,
		MaxParallelRepositories: configuration.MaxParallelRepositories,
	}
}
