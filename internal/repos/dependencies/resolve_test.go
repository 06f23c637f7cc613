package dependencies_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/dependencies"
	"github.com/temirov/repostat/internal/repos/filesystem"
	"github.com/temirov/repostat/internal/ui"
)

func TestResolveFileSystemDefaultsToOperatingSystem(testInstance *testing.T) {
	require.Equal(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
}

func TestResolveGitExecutorBuildsShellExecutor(testInstance *testing.T) {
	gitExecutor, resolveError := dependencies.ResolveGitExecutor(nil, nil, nil)
	require.NoError(testInstance, resolveError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, gitExecutor)

	reused, reuseError := dependencies.ResolveGitExecutor(gitExecutor, zap.NewNop(), nil)
	require.NoError(testInstance, reuseError)
	require.Same(testInstance, gitExecutor, reused)
}

func TestResolveCommandEventObserver(testInstance *testing.T) {
	require.Nil(testInstance, dependencies.ResolveCommandEventObserver(nil, zap.NewNop(), false))
	require.IsType(testInstance, &ui.ConsoleCommandEventLogger{}, dependencies.ResolveCommandEventObserver(nil, zap.NewNop(), true))

	existing := ui.NewConsoleCommandEventLogger(nil)
	require.Same(testInstance, existing, dependencies.ResolveCommandEventObserver(existing, zap.NewNop(), false))
}
