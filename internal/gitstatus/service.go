package gitstatus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/repostat/internal/repos/discovery"
	"github.com/temirov/repostat/internal/repos/shared"
)

const (
	defaultDetachedBranchLabelConstant   = "DETACHED"
	defaultStatusLengthThresholdConstant = 1000
	discoverRootErrorTemplateConstant    = "unable to discover repositories under %s: %w"
	resolvePathErrorTemplateConstant     = "unable to resolve %s: %w"
	statusCollectedMessageConstant       = "Collected repository status"
	logFieldBranchConstant               = "branch"
	logFieldDirtyConstant                = "dirty"
	logFieldUnsyncedConstant             = "unsynced"
)

// RepositoryDiscoverer resolves a root into the working trees to inspect.
type RepositoryDiscoverer interface {
	DiscoverWorkingTrees(executionContext context.Context, root string) ([]string, error)
}

// ServiceDependencies carries the collaborators used by Service.
type ServiceDependencies struct {
	GitExecutor shared.GitExecutor
	FileSystem  shared.FileSystem
	Discoverer  RepositoryDiscoverer
	Logger      *zap.Logger
}

// ServiceOptions tunes status collection. Zero values select the defaults.
type ServiceOptions struct {
	BranchReference         string
	DetachedBranchLabel     string
	StatusLengthThreshold   int
	MaxParallelRepositories int
}

// Service collects GitStatus records.
type Service struct {
	discoverer              RepositoryDiscoverer
	fieldReader             fieldReader
	logger                  *zap.Logger
	statusLengthThreshold   int
	maxParallelRepositories int
}

// NewService constructs a Service. When no discoverer is supplied a discovery.Detector
// sharing the git executor is used.
func NewService(serviceDependencies ServiceDependencies, options ServiceOptions) (*Service, error) {
	logger := serviceDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	queryRunner, runnerError := NewQueryRunner(serviceDependencies.GitExecutor, logger)
	if runnerError != nil {
		return nil, runnerError
	}

	options = options.withDefaults()

	discoverer := serviceDependencies.Discoverer
	if discoverer == nil {
		detector, detectorError := discovery.NewDetector(discovery.DetectorDependencies{
			GitExecutor:   serviceDependencies.GitExecutor,
			FileSystem:    serviceDependencies.FileSystem,
			Logger:        logger,
			ParallelLimit: options.MaxParallelRepositories,
		})
		if detectorError != nil {
			return nil, detectorError
		}
		discoverer = detector
	}

	return &Service{
		discoverer: discoverer,
		fieldReader: fieldReader{
			queryRunner:         queryRunner,
			branchReference:     options.BranchReference,
			detachedBranchLabel: options.DetachedBranchLabel,
		},
		logger:                  logger,
		statusLengthThreshold:   options.StatusLengthThreshold,
		maxParallelRepositories: options.MaxParallelRepositories,
	}, nil
}

// GetStatus collects the status of the working tree at path, made absolute first. Query failures
// fall back to empty fields; only a failure to run git at all for the branch query is returned.
func (service *Service) GetStatus(executionContext context.Context, path string) (GitStatus, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return GitStatus{}, fmt.Errorf(resolvePathErrorTemplateConstant, path, absoluteError)
	}
	path = filepath.Clean(absolutePath)

	var (
		branch          string
		shortStatus     ShortStatusInfo
		diffCommitCount DiffCommitCount
		modifiedCount   ModifiedCount
	)

	queryGroup, groupContext := errgroup.WithContext(executionContext)
	queryGroup.Go(func() error {
		var branchError error
		branch, branchError = service.fieldReader.readBranch(groupContext, path)
		return branchError
	})
	queryGroup.Go(func() error {
		shortStatus = service.fieldReader.readShortStatus(groupContext, path)
		return nil
	})
	queryGroup.Go(func() error {
		diffCommitCount = service.fieldReader.readDiffCommitCount(groupContext, path)
		return nil
	})
	queryGroup.Go(func() error {
		modifiedCount = service.fieldReader.readModifiedCount(groupContext, path)
		return nil
	})
	if waitError := queryGroup.Wait(); waitError != nil {
		return GitStatus{}, waitError
	}
	if contextError := executionContext.Err(); contextError != nil {
		return GitStatus{}, contextError
	}

	status := NewGitStatus(StatusFields{
		Name:            filepath.Base(path),
		Path:            path,
		Branch:          branch,
		ShortStatus:     shortStatus,
		DiffCommitCount: diffCommitCount,
		ModifiedCount:   modifiedCount,
	}, service.statusLengthThreshold)

	service.logger.Debug(statusCollectedMessageConstant,
		zap.String(logFieldPathConstant, path),
		zap.String(logFieldBranchConstant, status.Branch),
		zap.Bool(logFieldDirtyConstant, status.IsDirty),
		zap.Bool(logFieldUnsyncedConstant, status.HasUnsyncedCommits),
	)
	return status, nil
}

// GetStatusForRoot discovers the working trees under root and collects their statuses
// concurrently, returning them in discovery order.
func (service *Service) GetStatusForRoot(executionContext context.Context, root string) ([]GitStatus, error) {
	repositoryPaths, discoveryError := service.discoverer.DiscoverWorkingTrees(executionContext, root)
	if discoveryError != nil {
		return nil, fmt.Errorf(discoverRootErrorTemplateConstant, root, discoveryError)
	}
	return service.collectStatuses(executionContext, repositoryPaths)
}

// GetStatusForRoots runs GetStatusForRoot for each root in order, keeping the first record
// seen for every repository path.
func (service *Service) GetStatusForRoots(executionContext context.Context, roots []string) ([]GitStatus, error) {
	seenPaths := make(map[string]struct{})
	statuses := make([]GitStatus, 0, len(roots))
	for _, root := range roots {
		if len(strings.TrimSpace(root)) == 0 {
			continue
		}
		rootStatuses, rootError := service.GetStatusForRoot(executionContext, root)
		if rootError != nil {
			return nil, rootError
		}
		for _, status := range rootStatuses {
			if _, seen := seenPaths[status.Path]; seen {
				continue
			}
			seenPaths[status.Path] = struct{}{}
			statuses = append(statuses, status)
		}
	}
	return statuses, nil
}

func (service *Service) collectStatuses(executionContext context.Context, repositoryPaths []string) ([]GitStatus, error) {
	statuses := make([]GitStatus, len(repositoryPaths))

	statusGroup, groupContext := errgroup.WithContext(executionContext)
	if service.maxParallelRepositories > 0 {
		statusGroup.SetLimit(service.maxParallelRepositories)
	}
	for repositoryIndex := range repositoryPaths {
		repositoryIndex := repositoryIndex
		statusGroup.Go(func() error {
			status, statusError := service.GetStatus(groupContext, repositoryPaths[repositoryIndex])
			if statusError != nil {
				return statusError
			}
			statuses[repositoryIndex] = status
			return nil
		})
	}
	if waitError := statusGroup.Wait(); waitError != nil {
		return nil, waitError
	}
	return statuses, nil
}

func (options ServiceOptions) withDefaults() ServiceOptions {
	normalized := options
	normalized.BranchReference = strings.TrimSpace(options.BranchReference)
	if len(normalized.BranchReference) == 0 {
		normalized.BranchReference = gitHeadReferenceConstant
	}
	normalized.DetachedBranchLabel = strings.TrimSpace(options.DetachedBranchLabel)
	if len(normalized.DetachedBranchLabel) == 0 {
		normalized.DetachedBranchLabel = defaultDetachedBranchLabelConstant
	}
	if normalized.StatusLengthThreshold <= 0 {
		normalized.StatusLengthThreshold = defaultStatusLengthThresholdConstant
	}
	if normalized.MaxParallelRepositories < 0 {
		normalized.MaxParallelRepositories = 0
	}
	return normalized
}
