// Package dependencies resolves default collaborators for repository commands.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/filesystem"
	"github.com/temirov/repostat/internal/repos/shared"
	"github.com/temirov/repostat/internal/ui"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default
// reporting command events to observer when one is supplied.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveCommandEventObserver returns the provided observer, a console observer when
// human-readable logging is enabled, or nil.
func ResolveCommandEventObserver(existing execshell.CommandEventObserver, logger *zap.Logger, humanReadableLogging bool) execshell.CommandEventObserver {
	if existing != nil {
		return existing
	}
	if !humanReadableLogging {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(logger)
}
