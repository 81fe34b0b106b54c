package provisioning

import (
	"fmt"
	"time"
)

// PropagationTimeoutError reports that a created service account never
// became visible within the polling budget. The safe remedy is a re-run,
// which resolves the step to AlreadyPresent once the backend catches up.
type PropagationTimeoutError struct {
	Email    string
	Attempts int
	Delay    time.Duration
}

func (e *PropagationTimeoutError) Error() string {
	return fmt.Sprintf(
		"service account %s was created but not visible after %d checks %v apart; wait a moment and re-run",
		e.Email, e.Attempts, e.Delay)
}

// PermissionGrantError reports a rejected IAM role grant.
type PermissionGrantError struct {
	Role   string
	Member string
	Err    error
}

func (e *PermissionGrantError) Error() string {
	return fmt.Sprintf("failed to grant %s to %s: %v", e.Role, e.Member, e.Err)
}

func (e *PermissionGrantError) Unwrap() error {
	return e.Err
}

// ResourceCreationError reports a failed enable or create call for a
// named resource.
type ResourceCreationError struct {
	Resource string
	Name     string
	Err      error
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create %s %s: %v", e.Resource, e.Name, e.Err)
}

func (e *ResourceCreationError) Unwrap() error {
	return e.Err
}

// BuildError reports a failed image build, carrying the build system's
// own diagnostic output.
type BuildError struct {
	Tag        string
	Diagnostic string
	Err        error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("image build for %s failed", e.Tag)
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
