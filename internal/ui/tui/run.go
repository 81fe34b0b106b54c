package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsearch/deployctl/internal/provisioning"
)

// Run drives the deployment under the dashboard. fn executes the actual
// pipeline in a goroutine, reporting through the observer it receives,
// and returns the service URL. Quitting the dashboard cancels the
// pipeline's context so the in-flight step aborts instead of running
// headless. Run blocks until both the dashboard and the pipeline have
// finished.
func Run(ctx context.Context, projectID, region string, stepNames []string, fn func(ctx context.Context, obs provisioning.Observer) (string, error), opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(projectID, region, stepNames), opts...)

	done := make(chan error, 1)
	go func() {
		url, err := fn(ctx, NewObserver(p))
		if err != nil {
			p.Send(ErrMsg{Err: err})
			done <- err
			return
		}
		p.Send(DoneMsg{URL: url})
		done <- nil
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return err
	}

	select {
	case err := <-done:
		return err
	default:
		// Dashboard quit while the pipeline was still running.
		cancel()
		return <-done
	}
}
