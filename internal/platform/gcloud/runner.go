package gcloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Binary is the gcloud executable name.
const Binary = "gcloud"

// CommandRunner executes gcloud invocations. Run streams output to the
// operator (builds, deploys); Output captures stdout for state inspection.
type CommandRunner interface {
	Run(ctx context.Context, args ...string) error
	Output(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs gcloud as a subprocess.
type ExecRunner struct {
	// Stdout and Stderr receive streamed command output. They default to
	// the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes gcloud and streams its output.
func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	log.Debug().Strs("args", args).Msg("exec gcloud")

	// #nosec G204 - args are assembled from validated configuration
	cmd := exec.CommandContext(ctx, Binary, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{Args: args, Err: err}
	}
	return nil
}

// Output executes gcloud and returns its trimmed stdout. Stderr is
// captured into the returned CommandError on failure.
func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, error) {
	log.Debug().Strs("args", args).Msg("exec gcloud (captured)")

	// #nosec G204 - args are assembled from validated configuration
	cmd := exec.CommandContext(ctx, Binary, args...)
	out, err := cmd.Output()
	if err != nil {
		cmdErr := &CommandError{Args: args, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.Stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", cmdErr
	}
	return strings.TrimSpace(string(out)), nil
}

// CommandError carries the diagnostic output of a failed gcloud call.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("gcloud %s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the captured stderr of a failed command, or the plain
// error text when none was captured.
func Diagnostic(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		return cmdErr.Stderr
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsNotFound reports whether a describe-style call failed because the
// resource does not exist. gcloud signals this on stderr, not with a
// distinct exit code.
func IsNotFound(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	return strings.Contains(stderr, "not_found") ||
		strings.Contains(stderr, "not found") ||
		strings.Contains(stderr, "could not be found") ||
		strings.Contains(stderr, "does not exist")
}
