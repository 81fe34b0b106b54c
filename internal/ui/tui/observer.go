package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsearch/deployctl/internal/provisioning"
)

// Observer translates provisioning events into Bubble Tea messages. The
// pipeline runs in its own goroutine; Program.Send is safe to call from
// there.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver wires an observer to a running program.
func NewObserver(p *tea.Program) *Observer {
	return &Observer{send: p.Send}
}

// Printf is a no-op: the dashboard renders state, not log lines.
func (o *Observer) Printf(string, ...interface{}) {}

// Event implements provisioning.Observer.
func (o *Observer) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventStepStarted:
		o.send(StepMsg{Step: event.Step})
	case provisioning.EventStepCompleted:
		o.send(StepMsg{Step: event.Step, Done: true, Outcome: event.Outcome})
	case provisioning.EventStepFailed:
		// The error itself arrives through the pipeline result; the
		// dashboard only needs to stop the spinner here.
	}
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(step string, current, total int) {
	o.send(AttemptMsg{Step: step, Current: current, Total: total})
}
