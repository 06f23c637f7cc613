package gitstatus

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
	"github.com/temirov/repostat/internal/repos/shared"
)

const (
	gitExecutorMissingMessageConstant = "git executor not configured"
	queryUnavailableMessageConstant   = "Git query unavailable"
	logFieldPathConstant              = "path"
	logFieldArgumentsConstant         = "arguments"
)

// ErrGitExecutorNotConfigured indicates a git executor was not provided.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// QueryOutcome is the result of a git query whose failure is not fatal.
type QueryOutcome struct {
	output    string
	failure   error
	available bool
}

// Available reports whether the query produced output.
func (outcome QueryOutcome) Available() bool {
	return outcome.available
}

// Output returns the captured standard output of an available query.
func (outcome QueryOutcome) Output() string {
	return outcome.output
}

// Failure returns the error that made the query unavailable.
func (outcome QueryOutcome) Failure() error {
	return outcome.failure
}

// QueryRunner runs git queries inside a working tree.
type QueryRunner struct {
	gitExecutor shared.GitExecutor
	logger      *zap.Logger
}

// NewQueryRunner constructs a QueryRunner. A nil logger is replaced by a no-op logger.
func NewQueryRunner(gitExecutor shared.GitExecutor, logger *zap.Logger) (*QueryRunner, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryRunner{gitExecutor: gitExecutor, logger: logger}, nil
}

// Run executes git with arguments in path and returns its standard output.
// Queries run with untranslated output and without optional index locks.
func (runner *QueryRunner) Run(executionContext context.Context, path string, arguments ...string) (string, error) {
	executionResult, executionError := runner.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     path,
		EnvironmentVariables: execshell.ReadOnlyQueryEnvironment(),
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// TryRun executes git like Run but reports any failure as an unavailable outcome.
func (runner *QueryRunner) TryRun(executionContext context.Context, path string, arguments ...string) QueryOutcome {
	output, runError := runner.Run(executionContext, path, arguments...)
	if runError != nil {
		runner.logger.Debug(queryUnavailableMessageConstant,
			zap.String(logFieldPathConstant, path),
			zap.Strings(logFieldArgumentsConstant, arguments),
			zap.Error(runError),
		)
		return QueryOutcome{failure: runError}
	}
	return QueryOutcome{output: output, available: true}
}
