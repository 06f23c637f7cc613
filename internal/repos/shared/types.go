// Package shared declares the collaborator interfaces used by repository
// discovery and status aggregation.
package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/repostat/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the read-only filesystem operations required by discovery.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
}
