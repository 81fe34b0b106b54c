package provisioning

// Outcome classifies how a step left its resource.
type Outcome int

const (
	// OutcomeFailed means the step could not reach its target state.
	OutcomeFailed Outcome = iota
	// OutcomeCreated means the step created the resource on this run.
	OutcomeCreated
	// OutcomeAlreadyPresent means the resource existed before this run.
	OutcomeAlreadyPresent
)

// String returns the reporter-facing form.
func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyPresent:
		return "already present"
	default:
		return "failed"
	}
}

// StepResult records what a single step did. The sequencer collects these
// in order; the reporter renders them after the run.
type StepResult struct {
	Step    string
	Outcome Outcome
	Err     error
}
