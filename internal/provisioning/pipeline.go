package provisioning

import (
	"fmt"
	"time"
)

// Step is one idempotent unit of the provisioning sequence.
type Step interface {
	// Name returns the short identifier used in results and reports.
	Name() string

	// Provision brings the step's resource to its target state.
	Provision(ctx *Context) (Outcome, error)
}

// Steps returns the provisioning sequence in its required order. The
// order is not reorderable: the role grant and the deploy need the
// service account, the build needs the repository.
func Steps() []Step {
	return []Step{
		&ServicesStep{},
		&ServiceAccountStep{},
		&RoleGrantStep{},
		&RepositoryStep{},
		&BuildStep{},
	}
}

// RunSteps executes steps sequentially, stopping at the first failure.
// It always returns the results collected so far, so the reporter can
// show what succeeded before the failing step.
func RunSteps(ctx *Context, steps []Step) ([]StepResult, error) {
	start := time.Now()
	results := make([]StepResult, 0, len(steps))

	for i, step := range steps {
		ctx.Observer.Event(Event{
			Type:      EventStepStarted,
			Step:      step.Name(),
			Message:   stepBanner(step.Name(), i+1, len(steps)),
			Timestamp: time.Now(),
		})

		stepStart := time.Now()
		outcome, err := step.Provision(ctx)
		result := StepResult{Step: step.Name(), Outcome: outcome, Err: err}
		results = append(results, result)

		if err != nil {
			ctx.Observer.Event(Event{
				Type:      EventStepFailed,
				Step:      step.Name(),
				Message:   err.Error(),
				Timestamp: time.Now(),
			})
			return results, err
		}

		ctx.Observer.Event(Event{
			Type:      EventStepCompleted,
			Step:      step.Name(),
			Message:   completionMessage(step.Name(), outcome, time.Since(stepStart)),
			Outcome:   outcome,
			Timestamp: time.Now(),
		})
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return results, nil
}

func stepBanner(name string, i, total int) string {
	return fmt.Sprintf("%s (%d/%d)", name, i, total)
}

func completionMessage(name string, outcome Outcome, took time.Duration) string {
	return fmt.Sprintf("%s: %s in %v", name, outcome, took.Round(time.Millisecond))
}
