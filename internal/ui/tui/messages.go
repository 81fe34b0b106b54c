// Package tui provides a Bubble Tea dashboard for interactive deployment
// runs.
package tui

import "github.com/docsearch/deployctl/internal/provisioning"

// StepMsg reports the state transition of one provisioning step.
type StepMsg struct {
	Step    string
	Done    bool
	Outcome provisioning.Outcome
	Err     error
}

// AttemptMsg reports retry progress inside a step.
type AttemptMsg struct {
	Step    string
	Current int
	Total   int
}

// TickMsg is sent periodically to advance the spinner.
type TickMsg struct{}

// ErrMsg carries a fatal error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the deployment finished, carrying the service URL.
type DoneMsg struct{ URL string }
