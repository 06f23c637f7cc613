package gitstatus

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/repostat/internal/execshell"
)

const (
	gitBranchSubcommandConstant     = "branch"
	gitShowCurrentFlagConstant      = "--show-current"
	gitStatusSubcommandConstant     = "status"
	gitShortFlagConstant            = "--short"
	gitRevListSubcommandConstant    = "rev-list"
	gitLeftRightFlagConstant        = "--left-right"
	gitCountFlagConstant            = "--count"
	gitDiffSubcommandConstant       = "diff"
	gitShortStatFlagConstant        = "--shortstat"
	gitHeadReferenceConstant        = "HEAD"
	upstreamRangeTemplateConstant   = "%s...%s@{upstream}"
	branchQueryFailedMessage        = "Branch query failed; reporting detached label"
	readBranchErrorTemplateConstant = "unable to read branch of %s: %w"
)

type fieldReader struct {
	queryRunner         *QueryRunner
	branchReference     string
	detachedBranchLabel string
}

func (reader fieldReader) readBranch(executionContext context.Context, path string) (string, error) {
	output, runError := reader.queryRunner.Run(executionContext, path, gitBranchSubcommandConstant, gitShowCurrentFlagConstant)
	if runError == nil {
		return ParseBranch(output, reader.detachedBranchLabel), nil
	}

	var executionFailure execshell.CommandExecutionError
	if errors.As(runError, &executionFailure) {
		return "", fmt.Errorf(readBranchErrorTemplateConstant, path, runError)
	}

	reader.queryRunner.logger.Debug(branchQueryFailedMessage, zap.String(logFieldPathConstant, path), zap.Error(runError))
	return reader.detachedBranchLabel, nil
}

func (reader fieldReader) readShortStatus(executionContext context.Context, path string) ShortStatusInfo {
	outcome := reader.queryRunner.TryRun(executionContext, path, gitStatusSubcommandConstant, gitShortFlagConstant)
	if !outcome.Available() {
		return ShortStatusInfo{TooManyChanges: true}
	}
	return ParseShortStatus(outcome.Output())
}

func (reader fieldReader) readDiffCommitCount(executionContext context.Context, path string) DiffCommitCount {
	reference := reader.branchReference
	if len(reference) == 0 {
		reference = gitHeadReferenceConstant
	}
	upstreamRange := fmt.Sprintf(upstreamRangeTemplateConstant, reference, reference)

	outcome := reader.queryRunner.TryRun(executionContext, path, gitRevListSubcommandConstant, gitLeftRightFlagConstant, gitCountFlagConstant, upstreamRange)
	if !outcome.Available() {
		return DiffCommitCount{}
	}
	return ParseDiffCommitCount(outcome.Output())
}

func (reader fieldReader) readModifiedCount(executionContext context.Context, path string) ModifiedCount {
	outcome := reader.queryRunner.TryRun(executionContext, path, gitDiffSubcommandConstant, gitShortStatFlagConstant, gitHeadReferenceConstant)
	if !outcome.Available() {
		return ModifiedCount{}
	}
	return ParseModifiedCount(outcome.Output())
}
