// Package pathutils normalizes user-supplied root paths.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
	defaultRootPathConstant         = "."
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// AbsolutePathResolver converts a relative path into an absolute one.
type AbsolutePathResolver func(path string) (string, error)

// RootResolver expands home shortcuts, makes roots absolute, and drops duplicates.
type RootResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	absolutePathResolver  AbsolutePathResolver
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewRootResolver constructs a RootResolver using the operating system lookups.
func NewRootResolver() *RootResolver {
	return NewRootResolverWithProviders(nil, nil)
}

// NewRootResolverWithProviders constructs a RootResolver with custom lookups; nil values fall back to the operating system.
func NewRootResolverWithProviders(homeProvider HomeDirectoryProvider, absoluteResolver AbsolutePathResolver) *RootResolver {
	if homeProvider == nil {
		homeProvider = os.UserHomeDir
	}
	if absoluteResolver == nil {
		absoluteResolver = filepath.Abs
	}
	return &RootResolver{homeDirectoryProvider: homeProvider, absolutePathResolver: absoluteResolver}
}

// Resolve returns absolute, cleaned, de-duplicated roots in input order.
// Blank entries are skipped and an empty input resolves to the working directory.
func (resolver *RootResolver) Resolve(roots []string) ([]string, error) {
	candidates := make([]string, 0, len(roots))
	for _, root := range roots {
		trimmedRoot := strings.TrimSpace(root)
		if len(trimmedRoot) == 0 {
			continue
		}
		candidates = append(candidates, trimmedRoot)
	}
	if len(candidates) == 0 {
		candidates = []string{defaultRootPathConstant}
	}

	seen := make(map[string]struct{}, len(candidates))
	resolved := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absolutePath, resolveError := resolver.absolutePathResolver(resolver.ExpandHome(candidate))
		if resolveError != nil {
			return nil, resolveError
		}
		absolutePath = filepath.Clean(absolutePath)
		if _, duplicate := seen[absolutePath]; duplicate {
			continue
		}
		seen[absolutePath] = struct{}{}
		resolved = append(resolved, absolutePath)
	}
	return resolved, nil
}

// ExpandHome resolves a leading tilde to the user's home directory.
func (resolver *RootResolver) ExpandHome(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := resolver.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)))
	default:
		return candidatePath
	}
}

func (resolver *RootResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
