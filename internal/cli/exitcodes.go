package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/figmark/pkg/config"
	"github.com/yaklabco/figmark/pkg/runner"
)

// Exit codes for figmark.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitFailure indicates at least one file failed, or another error.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrRenderFailed is returned when a run finished with failed files. The
	// failures have already been reported.
	ErrRenderFailed = errors.New("render failed")

	// ErrInvalidUsage wraps command-line usage errors.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult returns the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrRenderFailed):
		return ExitFailure
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitFailure
	}
}
