// Package execshell provides structured helpers for invoking git.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and distinguishes commands that exited with a
// non-zero status (CommandFailedError) from commands that could not be started
// at all (CommandExecutionError).
package execshell
