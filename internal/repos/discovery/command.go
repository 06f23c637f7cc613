package discovery

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/dependencies"
	"github.com/temirov/repostat/internal/repos/shared"
	pathutils "github.com/temirov/repostat/internal/utils/path"
)

const (
	commandUseConstant              = "discover [root...]"
	commandShortDescriptionConstant = "List git working trees beneath the provided roots"
	commandLongDescriptionConstant  = "discover prints every git working tree found at or one level beneath each root, one path per line. Roots default to the configured list or the current directory."
	discoveredPathTemplateConstant  = "%s\n"
	resolveRootsErrorTemplate       = "unable to resolve roots: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether git commands should be narrated on the console.
type HumanReadableLoggingProvider func() bool

// ConfigurationProvider supplies configuration values for the discover command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the discover cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           shared.GitExecutor
	FileSystem            shared.FileSystem
	RootResolver          *pathutils.RootResolver
	ConfigurationProvider ConfigurationProvider
	CommandEventsObserver execshell.CommandEventObserver
	HumanReadableLogging  HumanReadableLoggingProvider
}

// Build constructs the discover command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	roots := configuration.Roots
	if len(arguments) > 0 {
		roots = arguments
	}

	rootResolver := builder.RootResolver
	if rootResolver == nil {
		rootResolver = pathutils.NewRootResolver()
	}
	resolvedRoots, resolveError := rootResolver.Resolve(roots)
	if resolveError != nil {
		return fmt.Errorf(resolveRootsErrorTemplate, resolveError)
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventObserver(logger))
	if executorError != nil {
		return executorError
	}

	detector, detectorError := NewDetector(DetectorDependencies{
		GitExecutor:   gitExecutor,
		FileSystem:    builder.FileSystem,
		Logger:        logger,
		ParallelLimit: configuration.MaxParallelRepositories,
	})
	if detectorError != nil {
		return detectorError
	}

	seenPaths := make(map[string]struct{})
	for _, root := range resolvedRoots {
		workingTrees, discoveryError := detector.DiscoverWorkingTrees(command.Context(), root)
		if discoveryError != nil {
			return discoveryError
		}
		for _, workingTree := range workingTrees {
			if _, seen := seenPaths[workingTree]; seen {
				continue
			}
			seenPaths[workingTree] = struct{}{}
			if _, writeError := fmt.Fprintf(command.OutOrStdout(), discoveredPathTemplateConstant, workingTree); writeError != nil {
				return writeError
			}
		}
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger) execshell.CommandEventObserver {
	humanReadableLogging := builder.HumanReadableLogging != nil && builder.HumanReadableLogging()
	return dependencies.ResolveCommandEventObserver(builder.CommandEventsObserver, logger, humanReadableLogging)
}
