package gitstatus

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/dependencies"
	"github.com/temirov/repostat/internal/repos/shared"
	"github.com/temirov/repostat/internal/utils/flags"
	pathutils "github.com/temirov/repostat/internal/utils/path"
)

const (
	commandUseConstant              = "status [root...]"
	commandShortDescriptionConstant = "Summarize branch, dirtiness, and upstream state of git repositories"
	commandLongDescriptionConstant  = "status inspects every git working tree at or one level beneath each root and reports its branch, uncommitted changes, and commits ahead of or behind its upstream. Roots default to the configured list or the current directory."
	flagFormatNameConstant          = "format"
	flagFormatDescriptionConstant   = "output format"
	flagUnsavedOnlyNameConstant     = "unsaved-only"
	flagUnsavedOnlyDescription      = "only report repositories with uncommitted changes or unpushed commits"
	flagBranchRefNameConstant       = "branch-ref"
	flagBranchRefDescription        = "reference compared against its upstream"
	formatChoiceSubjectConstant     = "output format"
	resolveRootsErrorTemplate       = "unable to resolve roots: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether git commands should be narrated on the console.
type HumanReadableLoggingProvider func() bool

// ConfigurationProvider supplies configuration values for the status command.
type ConfigurationProvider func() CommandConfiguration

// TerminalDetector reports whether writer is an interactive terminal.
type TerminalDetector func(writer io.Writer) bool

// CommandBuilder assembles the status cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           shared.GitExecutor
	FileSystem            shared.FileSystem
	Discoverer            RepositoryDiscoverer
	RootResolver          *pathutils.RootResolver
	ConfigurationProvider ConfigurationProvider
	CommandEventsObserver execshell.CommandEventObserver
	HumanReadableLogging  HumanReadableLoggingProvider
	TerminalDetector      TerminalDetector
}

// CommandOptions captures the resolved parameters of one status invocation.
type CommandOptions struct {
	Roots         []string
	Format        OutputFormat
	UnsavedOnly   bool
	Configuration CommandConfiguration
}

// Build constructs the status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().String(flagFormatNameConstant, defaults.Format, flags.FormatChoiceUsage(defaults.Format, SupportedOutputFormats(), flagFormatDescriptionConstant))
	command.Flags().Bool(flagUnsavedOnlyNameConstant, defaults.UnsavedOnly, flagUnsavedOnlyDescription)
	command.Flags().String(flagBranchRefNameConstant, defaults.BranchRef, flagBranchRefDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventObserver(logger))
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		GitExecutor: gitExecutor,
		FileSystem:  builder.FileSystem,
		Discoverer:  builder.Discoverer,
		Logger:      logger,
	}, options.Configuration.serviceOptions())
	if serviceError != nil {
		return serviceError
	}

	statuses, statusError := service.GetStatusForRoots(command.Context(), options.Roots)
	if statusError != nil {
		return statusError
	}
	if options.UnsavedOnly {
		statuses = filterUnsaved(statuses)
	}

	outputWriter := command.OutOrStdout()
	renderer := StatusRenderer{Format: options.Format, HighlightFlag: builder.resolveTerminalDetector()(outputWriter)}
	return renderer.Render(outputWriter, statuses)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	if command.Flags().Changed(flagFormatNameConstant) {
		configuration.Format, _ = command.Flags().GetString(flagFormatNameConstant)
	}
	if command.Flags().Changed(flagUnsavedOnlyNameConstant) {
		configuration.UnsavedOnly, _ = command.Flags().GetBool(flagUnsavedOnlyNameConstant)
	}
	if command.Flags().Changed(flagBranchRefNameConstant) {
		configuration.BranchRef, _ = command.Flags().GetString(flagBranchRefNameConstant)
	}
	configuration = configuration.sanitize()

	format, formatError := flags.ParseChoice(formatChoiceSubjectConstant, configuration.Format, string(OutputFormatTable), SupportedOutputFormats())
	if formatError != nil {
		return CommandOptions{}, formatError
	}

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
		return CommandOptions{}, fmt.Errorf(resolveRootsErrorTemplate, resolveError)
	}

	return CommandOptions{
		Roots:         resolvedRoots,
		Format:        OutputFormat(format),
		UnsavedOnly:   configuration.UnsavedOnly,
		Configuration: configuration,
	}, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
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

func (builder *CommandBuilder) resolveTerminalDetector() TerminalDetector {
	if builder.TerminalDetector != nil {
		return builder.TerminalDetector
	}
	return IsTerminalWriter
}

// IsTerminalWriter reports whether writer is a file attached to a terminal.
func IsTerminalWriter(writer io.Writer) bool {
	file, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func filterUnsaved(statuses []GitStatus) []GitStatus {
	filtered := make([]GitStatus, 0, len(statuses))
	for _, status := range statuses {
		if status.HasUnsavedChanges {
			filtered = append(filtered, status)
		}
	}
	return filtered
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger) execshell.CommandEventObserver {
	humanReadableLogging := builder.HumanReadableLogging != nil && builder.HumanReadableLogging()
	return dependencies.ResolveCommandEventObserver(builder.CommandEventsObserver, logger, humanReadableLogging)
}
