package provisioning

import (
	"fmt"
	"time"
)

// Logger is the minimal progress surface a step writes to.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured step events. The console observer renders
// them inline; the TUI observer feeds them into its message loop.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports attempt progress inside a step, e.g. propagation
	// polling.
	Progress(step string, current, total int)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Message   string
	Resource  string
	Outcome   Outcome
	Timestamp time.Time
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStepStarted indicates a provisioning step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a provisioning step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a provisioning step failed.
	EventStepFailed EventType = "step.failed"

	// EventResourceCreating indicates a resource is being created.
	EventResourceCreating EventType = "resource.creating"
	// EventResourceCreated indicates a resource was created successfully.
	EventResourceCreated EventType = "resource.created"
	// EventResourceExists indicates a resource already exists.
	EventResourceExists EventType = "resource.exists"

	// EventProgress indicates progress in a long-running operation.
	EventProgress EventType = "progress"
)

// ConsoleObserver renders events as plain lines on a writer-less stdout
// stream. It is the non-interactive default.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	fmt.Printf(format+"\n", v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	switch event.Type {
	case EventStepStarted:
		o.Printf("==> %s", event.Message)
	case EventStepCompleted:
		o.Printf("    %s", event.Message)
	case EventStepFailed:
		o.Printf("    FAILED: %s", event.Message)
	case EventResourceCreating:
		o.Printf("    creating %s", event.Resource)
	case EventResourceCreated:
		o.Printf("    created %s", event.Resource)
	case EventResourceExists:
		o.Printf("    %s already present", event.Resource)
	default:
		o.Printf("    %s", event.Message)
	}
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(step string, current, total int) {
	o.Printf("    [%s] attempt %d/%d", step, current, total)
}

// NopObserver discards everything. Used by doctor probes and tests that
// do not assert on progress output.
type NopObserver struct{}

func (NopObserver) Printf(string, ...interface{}) {}
func (NopObserver) Event(Event)                   {}
func (NopObserver) Progress(string, int, int)     {}
