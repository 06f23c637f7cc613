package gitstatus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostat/internal/gitstatus"
)

func intPointer(value int) *int {
	return &value
}

func TestParseBranch(testInstance *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected string
	}{
		{name: "named_branch", output: "main\n", expected: "main"},
		{name: "padded_branch", output: "  feature/login  \n", expected: "feature/login"},
		{name: "detached_head", output: "", expected: "DETACHED"},
		{name: "whitespace_only", output: " \n", expected: "DETACHED"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, gitstatus.ParseBranch(testCase.output, "DETACHED"))
		})
	}
}

func TestParseShortStatusTrimsOutput(testInstance *testing.T) {
	parsed := gitstatus.ParseShortStatus(" M README.md\n?? notes.txt\n\n")
	require.Equal(testInstance, gitstatus.ShortStatusInfo{Status: "M README.md\n?? notes.txt"}, parsed)
}

func TestParseDiffCommitCount(testInstance *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected gitstatus.DiffCommitCount
	}{
		{name: "ahead_and_behind", output: "3\t1\n", expected: gitstatus.DiffCommitCount{Ahead: intPointer(3), Behind: intPointer(1)}},
		{name: "in_sync", output: "0\t0\n", expected: gitstatus.DiffCommitCount{Ahead: intPointer(0), Behind: intPointer(0)}},
		{name: "space_separated", output: "12 7", expected: gitstatus.DiffCommitCount{Ahead: intPointer(12), Behind: intPointer(7)}},
		{name: "empty_output", output: "", expected: gitstatus.DiffCommitCount{}},
		{name: "single_count", output: "5\n", expected: gitstatus.DiffCommitCount{}},
		{name: "error_text", output: "fatal: no upstream configured for branch 'main'", expected: gitstatus.DiffCommitCount{}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, gitstatus.ParseDiffCommitCount(testCase.output))
		})
	}
}

func TestParseModifiedCount(testInstance *testing.T) {
	testCases := []struct {
		name     string
		output   string
		expected gitstatus.ModifiedCount
	}{
		{
			name:     "deletions_only",
			output:   " 8 files changed, 595 deletions(-)\n",
			expected: gitstatus.ModifiedCount{Files: 8, Insertions: 0, Deletions: 595},
		},
		{
			name:     "insertions_and_deletions",
			output:   " 4 files changed, 15 insertions(+), 5 deletions(-)\n",
			expected: gitstatus.ModifiedCount{Files: 4, Insertions: 15, Deletions: 5},
		},
		{
			name:     "singular_forms",
			output:   " 1 file changed, 1 insertion(+)\n",
			expected: gitstatus.ModifiedCount{Files: 1, Insertions: 1, Deletions: 0},
		},
		{
			name:     "single_deletion",
			output:   " 1 file changed, 1 deletion(-)",
			expected: gitstatus.ModifiedCount{Files: 1, Deletions: 1},
		},
		{
			name:     "no_changes",
			output:   "",
			expected: gitstatus.ModifiedCount{},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expected, gitstatus.ParseModifiedCount(testCase.output))
		})
	}
}
