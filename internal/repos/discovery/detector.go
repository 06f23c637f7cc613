package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/dependencies"
	"github.com/temirov/repostat/internal/repos/shared"
)

const (
	gitRevParseSubcommandConstant     = "rev-parse"
	gitInsideWorkTreeFlagConstant     = "--is-inside-work-tree"
	gitInsideWorkTreeTrueConstant     = "true"
	gitExecutorMissingMessageConstant = "git executor not configured"
	listRootErrorTemplateConstant     = "unable to list %s: %w"
	resolveRootErrorTemplateConstant  = "unable to resolve %s: %w"
	workingTreeCheckFailedMessage     = "Working tree check failed"
	subdirectoryStatFailedMessage     = "Skipping unreadable directory entry"
	rootIsWorkingTreeMessage          = "Root is a working tree"
	subdirectoriesDiscoveredMessage   = "Discovered working trees beneath root"
	logFieldPathConstant              = "path"
	logFieldRootConstant              = "root"
	logFieldCountConstant             = "count"
)

// ErrGitExecutorNotConfigured indicates the detector was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// DetectorDependencies carries the collaborators and limits used by Detector.
type DetectorDependencies struct {
	GitExecutor   shared.GitExecutor
	FileSystem    shared.FileSystem
	Logger        *zap.Logger
	ParallelLimit int
}

// Detector decides which directories are git working trees.
type Detector struct {
	gitExecutor   shared.GitExecutor
	fileSystem    shared.FileSystem
	logger        *zap.Logger
	parallelLimit int
}

// NewDetector constructs a Detector. The filesystem defaults to the operating system and the logger to a no-op logger.
func NewDetector(detectorDependencies DetectorDependencies) (*Detector, error) {
	if detectorDependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	logger := detectorDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parallelLimit := detectorDependencies.ParallelLimit
	if parallelLimit < 0 {
		parallelLimit = 0
	}

	return &Detector{
		gitExecutor:   detectorDependencies.GitExecutor,
		fileSystem:    dependencies.ResolveFileSystem(detectorDependencies.FileSystem),
		logger:        logger,
		parallelLimit: parallelLimit,
	}, nil
}

// IsWorkingTree reports whether path is inside a git working tree. Every failure yields false.
func (detector *Detector) IsWorkingTree(executionContext context.Context, path string) bool {
	executionResult, executionError := detector.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory:     path,
		EnvironmentVariables: execshell.ReadOnlyQueryEnvironment(),
	})
	if executionError != nil {
		detector.logger.Debug(workingTreeCheckFailedMessage, zap.String(logFieldPathConstant, path), zap.Error(executionError))
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == gitInsideWorkTreeTrueConstant
}

// DiscoverWorkingTrees returns [root] when root is a working tree, otherwise the working trees
// among its immediate subdirectories in listing order. Relative roots are made absolute first.
// Only a failure to resolve or list root is reported.
func (detector *Detector) DiscoverWorkingTrees(executionContext context.Context, root string) ([]string, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return nil, fmt.Errorf(resolveRootErrorTemplateConstant, root, absoluteError)
	}
	root = filepath.Clean(absoluteRoot)

	if detector.IsWorkingTree(executionContext, root) {
		detector.logger.Debug(rootIsWorkingTreeMessage, zap.String(logFieldRootConstant, root))
		return []string{root}, nil
	}

	candidates, listError := detector.listSubdirectories(root)
	if listError != nil {
		return nil, fmt.Errorf(listRootErrorTemplateConstant, root, listError)
	}

	matches := make([]bool, len(candidates))
	checkGroup, groupContext := errgroup.WithContext(executionContext)
	if detector.parallelLimit > 0 {
		checkGroup.SetLimit(detector.parallelLimit)
	}
	for candidateIndex := range candidates {
		candidateIndex := candidateIndex
		checkGroup.Go(func() error {
			matches[candidateIndex] = detector.IsWorkingTree(groupContext, candidates[candidateIndex])
			return nil
		})
	}
	if waitError := checkGroup.Wait(); waitError != nil {
		return nil, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	workingTrees := make([]string, 0, len(candidates))
	for candidateIndex, isWorkingTree := range matches {
		if isWorkingTree {
			workingTrees = append(workingTrees, candidates[candidateIndex])
		}
	}

	detector.logger.Debug(subdirectoriesDiscoveredMessage, zap.String(logFieldRootConstant, root), zap.Int(logFieldCountConstant, len(workingTrees)))
	return workingTrees, nil
}

func (detector *Detector) listSubdirectories(root string) ([]string, error) {
	entries, readError := detector.fileSystem.ReadDir(root)
	if readError != nil {
		return nil, readError
	}

	subdirectories := make([]string, 0, len(entries))
	for _, entry := range entries {
		entryPath := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			subdirectories = append(subdirectories, entryPath)
			continue
		}
		if entry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		targetInfo, statError := detector.fileSystem.Stat(entryPath)
		if statError != nil {
			detector.logger.Debug(subdirectoryStatFailedMessage, zap.String(logFieldPathConstant, entryPath), zap.Error(statError))
			continue
		}
		if targetInfo.IsDir() {
			subdirectories = append(subdirectories, entryPath)
		}
	}
	return subdirectories, nil
}
