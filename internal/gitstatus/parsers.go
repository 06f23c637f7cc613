package gitstatus

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	commitCountPattern  = regexp.MustCompile(`(\d+)\s+(\d+)`)
	filesChangedPattern = regexp.MustCompile(`(\d+) files? changed`)
	insertionsPattern   = regexp.MustCompile(`(\d+) insertions?\(\+\)`)
	deletionsPattern    = regexp.MustCompile(`(\d+) deletions?\(-\)`)
)

// ParseBranch returns the trimmed branch name, or detachedLabel when the output is empty.
func ParseBranch(output string, detachedLabel string) string {
	branchName := strings.TrimSpace(output)
	if len(branchName) == 0 {
		return detachedLabel
	}
	return branchName
}

// ParseShortStatus returns the trimmed short status text.
func ParseShortStatus(output string) ShortStatusInfo {
	return ShortStatusInfo{Status: strings.TrimSpace(output)}
}

// ParseDiffCommitCount reads "<ahead> <behind>" from rev-list --left-right --count output.
// Output without two counts yields an absent record.
func ParseDiffCommitCount(output string) DiffCommitCount {
	match := commitCountPattern.FindStringSubmatch(output)
	if match == nil {
		return DiffCommitCount{}
	}

	ahead, aheadError := strconv.Atoi(match[1])
	behind, behindError := strconv.Atoi(match[2])
	if aheadError != nil || behindError != nil {
		return DiffCommitCount{}
	}
	return DiffCommitCount{Ahead: &ahead, Behind: &behind}
}

// ParseModifiedCount reads the file, insertion, and deletion totals from diff --shortstat output.
// Missing totals are zero.
func ParseModifiedCount(output string) ModifiedCount {
	return ModifiedCount{
		Files:      firstCount(filesChangedPattern, output),
		Insertions: firstCount(insertionsPattern, output),
		Deletions:  firstCount(deletionsPattern, output),
	}
}

func firstCount(pattern *regexp.Regexp, output string) int {
	match := pattern.FindStringSubmatch(output)
	if match == nil {
		return 0
	}
	count, conversionError := strconv.Atoi(match[1])
	if conversionError != nil {
		return 0
	}
	return count
}
