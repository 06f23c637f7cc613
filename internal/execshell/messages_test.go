package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesStatusQueries(t *testing.T) {
	formatter := CommandMessageFormatter{}
	testCases := []struct {
		name     string
		build    func(command ShellCommand) string
		command  ShellCommand
		expected string
	}{
		{
			name:     "work_tree_start",
			build:    formatter.BuildStartedMessage,
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "--is-inside-work-tree"}, WorkingDirectory: "/workspace/repo"}},
			expected: "Analyzing repository at /workspace/repo",
		},
		{
			name:     "status_start",
			build:    formatter.BuildStartedMessage,
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "--short"}, WorkingDirectory: "/workspace/repo"}},
			expected: "Reviewing working tree status in /workspace/repo",
		},
		{
			name:     "commit_count_start",
			build:    formatter.BuildStartedMessage,
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-list", "--left-right", "--count", "HEAD...HEAD@{upstream}"}, WorkingDirectory: "/workspace/repo"}},
			expected: "Counting commits between HEAD...HEAD@{upstream} in /workspace/repo",
		},
		{
			name:     "generic_without_working_directory",
			build:    formatter.BuildStartedMessage,
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"log", "-1"}}},
			expected: "Running git log -1",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, testCase.build(testCase.command))
		})
	}
}

func TestBuildSuccessMessageForCurrentBranch(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"branch", "--show-current"}, WorkingDirectory: "/workspace/repo"}}

	require.Equal(t, "Current branch in /workspace/repo is main", formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "main\n"}))
	require.Equal(t, "/workspace/repo is in a detached HEAD state", formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: "\n"}))
}

func TestBuildSuccessMessageForEmptyDiffSummary(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"diff", "--shortstat", "HEAD"}, WorkingDirectory: "/workspace/repo"}}

	require.Equal(t, "No uncommitted changes in /workspace/repo", formatter.BuildSuccessMessage(command, ExecutionResult{}))
	require.Equal(t, "Summarized uncommitted changes in /workspace/repo", formatter.BuildSuccessMessage(command, ExecutionResult{StandardOutput: " 1 file changed, 1 insertion(+)\n"}))
}

func TestBuildFailureMessagesIncludeExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-list", "--left-right", "--count", "HEAD...HEAD@{upstream}"}, WorkingDirectory: "/workspace/repo"}}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "fatal: no upstream configured for branch 'main'\n"})
	require.Equal(t, "Failed to count commits between HEAD...HEAD@{upstream} in /workspace/repo (exit code 128: fatal: no upstream configured for branch 'main')", message)

	executionMessage := formatter.BuildExecutionFailureMessage(ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status", "--short"}}}, errors.New("exec: \"git\": executable file not found in $PATH"))
	require.Equal(t, "Unable to review working tree status in current directory: exec: \"git\": executable file not found in $PATH", executionMessage)
}
