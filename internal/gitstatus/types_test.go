package gitstatus_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostat/internal/gitstatus"
)

const statusLengthThresholdConstant = 1000

func TestNewGitStatusDefaultRecordHasNoUnsavedChanges(testInstance *testing.T) {
	status := gitstatus.NewGitStatus(gitstatus.StatusFields{}, statusLengthThresholdConstant)
	require.False(testInstance, status.HasUnsavedChanges)
	require.False(testInstance, status.IsDirty)
	require.False(testInstance, status.HasUnmergedCommits)
	require.False(testInstance, status.HasUnsyncedCommits)
	require.False(testInstance, status.TooManyChanges)
	require.Nil(testInstance, status.DiffCommitCount.Ahead)
	require.Nil(testInstance, status.DiffCommitCount.Behind)
}

func TestNewGitStatusDerivesFlags(testInstance *testing.T) {
	testCases := []struct {
		name             string
		fields           gitstatus.StatusFields
		expectedDirty    bool
		expectedUnmerged bool
		expectedUnsynced bool
		expectedUnsaved  bool
		expectedTooMany  bool
	}{
		{
			name:            "modified_files",
			fields:          gitstatus.StatusFields{ModifiedCount: gitstatus.ModifiedCount{Files: 2, Insertions: 3}},
			expectedDirty:   true,
			expectedUnsaved: true,
		},
		{
			name:             "ahead_of_upstream",
			fields:           gitstatus.StatusFields{DiffCommitCount: gitstatus.DiffCommitCount{Ahead: intPointer(2), Behind: intPointer(0)}},
			expectedUnmerged: true,
			expectedUnsynced: true,
			expectedUnsaved:  true,
		},
		{
			name:             "behind_upstream",
			fields:           gitstatus.StatusFields{DiffCommitCount: gitstatus.DiffCommitCount{Ahead: intPointer(0), Behind: intPointer(4)}},
			expectedUnsynced: true,
		},
		{
			name:   "no_upstream",
			fields: gitstatus.StatusFields{DiffCommitCount: gitstatus.DiffCommitCount{}},
		},
		{
			name:            "status_query_failed",
			fields:          gitstatus.StatusFields{ShortStatus: gitstatus.ShortStatusInfo{TooManyChanges: true}},
			expectedTooMany: true,
		},
		{
			name:   "status_at_threshold",
			fields: gitstatus.StatusFields{ShortStatus: gitstatus.ShortStatusInfo{Status: strings.Repeat("x", statusLengthThresholdConstant)}},
		},
		{
			name:            "status_above_threshold",
			fields:          gitstatus.StatusFields{ShortStatus: gitstatus.ShortStatusInfo{Status: strings.Repeat("x", statusLengthThresholdConstant+1)}},
			expectedTooMany: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			status := gitstatus.NewGitStatus(testCase.fields, statusLengthThresholdConstant)
			require.Equal(subTest, testCase.expectedDirty, status.IsDirty)
			require.Equal(subTest, testCase.expectedUnmerged, status.HasUnmergedCommits)
			require.Equal(subTest, testCase.expectedUnsynced, status.HasUnsyncedCommits)
			require.Equal(subTest, testCase.expectedUnsaved, status.HasUnsavedChanges)
			require.Equal(subTest, testCase.expectedTooMany, status.TooManyChanges)
			require.Equal(subTest, status.IsDirty || status.HasUnmergedCommits, status.HasUnsavedChanges)
		})
	}
}

func TestNewGitStatusCountsStatusCharacters(testInstance *testing.T) {
	testCases := []struct {
		name            string
		status          string
		expectedTooMany bool
	}{
		{name: "multibyte_below_threshold", status: strings.Repeat("é", 600), expectedTooMany: false},
		{name: "multibyte_at_threshold", status: strings.Repeat("é", statusLengthThresholdConstant), expectedTooMany: false},
		{name: "multibyte_above_threshold", status: strings.Repeat("é", statusLengthThresholdConstant+1), expectedTooMany: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			fields := gitstatus.StatusFields{ShortStatus: gitstatus.ShortStatusInfo{Status: testCase.status}}
			require.Equal(subTest, testCase.expectedTooMany, gitstatus.NewGitStatus(fields, statusLengthThresholdConstant).TooManyChanges)
		})
	}
}
