package gitstatus

import "unicode/utf8"

// ShortStatusInfo holds the trimmed porcelain short status of a working tree.
// TooManyChanges is set when the status could not be collected.
type ShortStatusInfo struct {
	Status         string
	TooManyChanges bool
}

// ModifiedCount summarizes uncommitted changes relative to HEAD.
type ModifiedCount struct {
	Files      int `json:"files" yaml:"files"`
	Insertions int `json:"insertions" yaml:"insertions"`
	Deletions  int `json:"deletions" yaml:"deletions"`
}

// DiffCommitCount reports commits ahead of and behind the upstream branch.
// Nil values mean the counts are unknown, usually because no upstream is configured.
type DiffCommitCount struct {
	Ahead  *int `json:"ahead" yaml:"ahead"`
	Behind *int `json:"behind" yaml:"behind"`
}

// GitStatus is the status record of one working tree.
type GitStatus struct {
	Name               string          `json:"name" yaml:"name"`
	Path               string          `json:"path" yaml:"path"`
	Status             string          `json:"status" yaml:"status"`
	Branch             string          `json:"branch" yaml:"branch"`
	DiffCommitCount    DiffCommitCount `json:"diff_commit_count" yaml:"diff_commit_count"`
	ModifiedCount      ModifiedCount   `json:"modified_count" yaml:"modified_count"`
	IsDirty            bool            `json:"is_dirty" yaml:"is_dirty"`
	HasUnsavedChanges  bool            `json:"has_unsaved_changes" yaml:"has_unsaved_changes"`
	TooManyChanges     bool            `json:"too_many_changes" yaml:"too_many_changes"`
	HasUnmergedCommits bool            `json:"has_unmerged_commits" yaml:"has_unmerged_commits"`
	HasUnsyncedCommits bool            `json:"has_unsynced_commits" yaml:"has_unsynced_commits"`
}

// StatusFields are the raw extractor results a GitStatus is derived from.
type StatusFields struct {
	Name            string
	Path            string
	Branch          string
	ShortStatus     ShortStatusInfo
	DiffCommitCount DiffCommitCount
	ModifiedCount   ModifiedCount
}

// NewGitStatus derives the health flags from fields. A status text longer than
// statusLengthThreshold characters (runes, not bytes) marks the record as having too many changes.
func NewGitStatus(fields StatusFields, statusLengthThreshold int) GitStatus {
	isDirty := fields.ModifiedCount.Files > 0
	hasUnmergedCommits := isPositive(fields.DiffCommitCount.Ahead)
	hasUnsyncedCommits := hasUnmergedCommits || isPositive(fields.DiffCommitCount.Behind)

	return GitStatus{
		Name:               fields.Name,
		Path:               fields.Path,
		Status:             fields.ShortStatus.Status,
		Branch:             fields.Branch,
		DiffCommitCount:    fields.DiffCommitCount,
		ModifiedCount:      fields.ModifiedCount,
		IsDirty:            isDirty,
		HasUnsavedChanges:  isDirty || hasUnmergedCommits,
		TooManyChanges:     fields.ShortStatus.TooManyChanges || utf8.RuneCountInString(fields.ShortStatus.Status) > statusLengthThreshold,
		HasUnmergedCommits: hasUnmergedCommits,
		HasUnsyncedCommits: hasUnsyncedCommits,
	}
}

func isPositive(count *int) bool {
	return count != nil && *count > 0
}
