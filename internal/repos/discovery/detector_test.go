package discovery_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/discovery"
)

const (
	workingTreeResponseConstant    = "true\n"
	notWorkingTreeResponseConstant = "false\n"
	alphaDirectoryNameConstant     = "alpha"
	betaDirectoryNameConstant      = "beta"
	gammaDirectoryNameConstant     = "gamma"
	hiddenDirectoryNameConstant    = ".dotfiles"
	plainFileNameConstant          = "notes.txt"
	linkedDirectoryNameConstant    = "linked"
	missingDirectoryNameConstant   = "missing"
)

type workingTreeExecutorStub struct {
	mutex           sync.Mutex
	responses       map[string]string
	executionErrors map[string]error
	workingDirs     []string
}

func (executor *workingTreeExecutorStub) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()

	executor.workingDirs = append(executor.workingDirs, details.WorkingDirectory)
	if executionError, exists := executor.executionErrors[details.WorkingDirectory]; exists {
		return execshell.ExecutionResult{}, executionError
	}
	if response, exists := executor.responses[details.WorkingDirectory]; exists {
		return execshell.ExecutionResult{StandardOutput: response}, nil
	}
	return execshell.ExecutionResult{}, execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: details},
		Result:  execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
	}
}

func (executor *workingTreeExecutorStub) recordedDirectories() []string {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	return append([]string{}, executor.workingDirs...)
}

func createDirectories(testInstance *testing.T, root string, names ...string) {
	testInstance.Helper()
	for _, name := range names {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(root, name), 0o755))
	}
}

func newTestDetector(testInstance *testing.T, executor *workingTreeExecutorStub) *discovery.Detector {
	testInstance.Helper()
	detector, detectorError := discovery.NewDetector(discovery.DetectorDependencies{GitExecutor: executor, Logger: zap.NewNop()})
	require.NoError(testInstance, detectorError)
	return detector
}

func TestNewDetectorRequiresGitExecutor(testInstance *testing.T) {
	detector, detectorError := discovery.NewDetector(discovery.DetectorDependencies{})
	require.Nil(testInstance, detector)
	require.ErrorIs(testInstance, detectorError, discovery.ErrGitExecutorNotConfigured)
}

func TestIsWorkingTree(testInstance *testing.T) {
	testCases := []struct {
		name           string
		response       string
		executionError error
		expected       bool
	}{
		{name: "inside_work_tree", response: workingTreeResponseConstant, expected: true},
		{name: "bare_or_git_dir", response: notWorkingTreeResponseConstant, expected: false},
		{name: "not_a_repository", expected: false},
		{name: "git_unavailable", executionError: errors.New("exec: git not found"), expected: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			directory := subTest.TempDir()
			executor := &workingTreeExecutorStub{responses: map[string]string{}, executionErrors: map[string]error{}}
			if len(testCase.response) > 0 {
				executor.responses[directory] = testCase.response
			}
			if testCase.executionError != nil {
				executor.executionErrors[directory] = testCase.executionError
			}

			detector := newTestDetector(subTest, executor)
			require.Equal(subTest, testCase.expected, detector.IsWorkingTree(context.Background(), directory))
		})
	}
}

func TestDiscoverWorkingTreesReturnsRootWhenRootIsWorkingTree(testInstance *testing.T) {
	root := testInstance.TempDir()
	createDirectories(testInstance, root, alphaDirectoryNameConstant)

	executor := &workingTreeExecutorStub{responses: map[string]string{
		root: workingTreeResponseConstant,
		filepath.Join(root, alphaDirectoryNameConstant): workingTreeResponseConstant,
	}}

	detector := newTestDetector(testInstance, executor)
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{root}, workingTrees)
	require.Equal(testInstance, []string{root}, executor.recordedDirectories())
}

func TestDiscoverWorkingTreesPreservesListingOrder(testInstance *testing.T) {
	root := testInstance.TempDir()
	createDirectories(testInstance, root, gammaDirectoryNameConstant, alphaDirectoryNameConstant, betaDirectoryNameConstant)

	executor := &workingTreeExecutorStub{responses: map[string]string{
		filepath.Join(root, alphaDirectoryNameConstant): workingTreeResponseConstant,
		filepath.Join(root, gammaDirectoryNameConstant): workingTreeResponseConstant,
	}}

	detector := newTestDetector(testInstance, executor)
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{
		filepath.Join(root, alphaDirectoryNameConstant),
		filepath.Join(root, gammaDirectoryNameConstant),
	}, workingTrees)
}

func TestDiscoverWorkingTreesConsidersHiddenAndLinkedDirectoriesOnly(testInstance *testing.T) {
	root := testInstance.TempDir()
	linkTarget := testInstance.TempDir()
	createDirectories(testInstance, root, hiddenDirectoryNameConstant)
	require.NoError(testInstance, os.WriteFile(filepath.Join(root, plainFileNameConstant), []byte("notes"), 0o644))
	require.NoError(testInstance, os.Symlink(linkTarget, filepath.Join(root, linkedDirectoryNameConstant)))

	executor := &workingTreeExecutorStub{responses: map[string]string{
		filepath.Join(root, hiddenDirectoryNameConstant): workingTreeResponseConstant,
		filepath.Join(root, linkedDirectoryNameConstant): workingTreeResponseConstant,
		filepath.Join(root, plainFileNameConstant):       workingTreeResponseConstant,
	}}

	detector := newTestDetector(testInstance, executor)
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{
		filepath.Join(root, hiddenDirectoryNameConstant),
		filepath.Join(root, linkedDirectoryNameConstant),
	}, workingTrees)
	require.NotContains(testInstance, executor.recordedDirectories(), filepath.Join(root, plainFileNameConstant))
}

func TestDiscoverWorkingTreesReturnsEmptyListWhenNothingMatches(testInstance *testing.T) {
	root := testInstance.TempDir()
	createDirectories(testInstance, root, alphaDirectoryNameConstant, betaDirectoryNameConstant)

	detector := newTestDetector(testInstance, &workingTreeExecutorStub{})
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.NoError(testInstance, discoveryError)
	require.Empty(testInstance, workingTrees)
}

func TestDiscoverWorkingTreesReportsUnlistableRoot(testInstance *testing.T) {
	root := filepath.Join(testInstance.TempDir(), missingDirectoryNameConstant)

	detector := newTestDetector(testInstance, &workingTreeExecutorStub{})
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.Error(testInstance, discoveryError)
	require.Nil(testInstance, workingTrees)
	require.True(testInstance, strings.Contains(discoveryError.Error(), root))
	require.ErrorIs(testInstance, discoveryError, os.ErrNotExist)
}

func TestDiscoverWorkingTreesHonorsParallelLimit(testInstance *testing.T) {
	root := testInstance.TempDir()
	createDirectories(testInstance, root, alphaDirectoryNameConstant, betaDirectoryNameConstant, gammaDirectoryNameConstant)

	executor := &workingTreeExecutorStub{responses: map[string]string{
		filepath.Join(root, betaDirectoryNameConstant): workingTreeResponseConstant,
	}}

	detector, detectorError := discovery.NewDetector(discovery.DetectorDependencies{GitExecutor: executor, ParallelLimit: 1})
	require.NoError(testInstance, detectorError)

	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), root)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{filepath.Join(root, betaDirectoryNameConstant)}, workingTrees)
	require.Len(testInstance, executor.recordedDirectories(), 4)
}

func TestDiscoverWorkingTreesResolvesRelativeRoot(testInstance *testing.T) {
	workspace := testInstance.TempDir()
	createDirectories(testInstance, workspace, alphaDirectoryNameConstant, betaDirectoryNameConstant)
	testInstance.Chdir(workspace)

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	executor := &workingTreeExecutorStub{responses: map[string]string{
		filepath.Join(workingDirectory, betaDirectoryNameConstant): workingTreeResponseConstant,
	}}

	detector := newTestDetector(testInstance, executor)
	workingTrees, discoveryError := detector.DiscoverWorkingTrees(context.Background(), ".")
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{filepath.Join(workingDirectory, betaDirectoryNameConstant)}, workingTrees)
	require.Contains(testInstance, executor.recordedDirectories(), workingDirectory)
}
