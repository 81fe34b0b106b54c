package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsearch/deployctl/internal/provisioning"
)

func stepNames() []string {
	return []string{"enable-services", "create-service-account", "grant-role", "create-repository", "build"}
}

func TestNewModel_IncludesDeploy(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())
	require.Len(t, m.Steps, 6)
	assert.Equal(t, "deploy", m.Steps[5].Name)
}

func TestUpdate_StepLifecycle(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())

	next, _ := m.Update(StepMsg{Step: "create-service-account"})
	m = next.(Model)
	assert.True(t, m.Steps[1].Active)
	// Starting a later step marks earlier ones done.
	assert.True(t, m.Steps[0].Done)

	next, _ = m.Update(StepMsg{Step: "create-service-account", Done: true, Outcome: provisioning.OutcomeCreated})
	m = next.(Model)
	assert.True(t, m.Steps[1].Done)
	assert.False(t, m.Steps[1].Active)
	assert.Equal(t, provisioning.OutcomeCreated, m.Steps[1].Outcome)
}

func TestUpdate_AttemptProgress(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())

	next, _ := m.Update(StepMsg{Step: "create-service-account"})
	m = next.(Model)
	next, _ = m.Update(AttemptMsg{Step: "create-service-account", Current: 2, Total: 3})
	m = next.(Model)

	assert.Equal(t, "attempt 2/3", m.Steps[1].Attempt)
}

func TestUpdate_ErrQuits(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())

	next, cmd := m.Update(ErrMsg{Err: errors.New("boom")})
	m = next.(Model)
	assert.Error(t, m.Err)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_DoneMarksEverything(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())

	next, cmd := m.Update(DoneMsg{URL: "https://docsearch-x.a.run.app"})
	m = next.(Model)
	assert.True(t, m.Done)
	assert.Equal(t, "https://docsearch-x.a.run.app", m.URL)
	for _, step := range m.Steps {
		assert.True(t, step.Done)
	}
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_RendersStates(t *testing.T) {
	m := NewModel("p1", "us-central1", stepNames())
	next, _ := m.Update(StepMsg{Step: "enable-services", Done: true, Outcome: provisioning.OutcomeAlreadyPresent})
	m = next.(Model)
	next, _ = m.Update(StepMsg{Step: "create-service-account"})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "deployctl")
	assert.Contains(t, view, "p1")
	assert.Contains(t, view, "already present")
	assert.Contains(t, view, "create-service-account")
}

func TestRun_QuitCancelsPipeline(t *testing.T) {
	started := make(chan struct{})
	pipeline := func(ctx context.Context, obs provisioning.Observer) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- Run(context.Background(), "p1", "us-central1", stepNames(), pipeline,
			tea.WithInput(strings.NewReader("q")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
		)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline never started")
	}

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("dashboard quit did not stop the pipeline")
	}
}

func TestObserver_TranslatesEvents(t *testing.T) {
	var got []tea.Msg
	obs := &Observer{send: func(msg tea.Msg) { got = append(got, msg) }}

	obs.Event(provisioning.Event{Type: provisioning.EventStepStarted, Step: "build"})
	obs.Event(provisioning.Event{
		Type: provisioning.EventStepCompleted, Step: "build",
		Outcome: provisioning.OutcomeCreated,
	})
	obs.Progress("create-service-account", 1, 3)
	// Resource-level events stay inside the step line.
	obs.Event(provisioning.Event{Type: provisioning.EventResourceCreated, Step: "build"})

	require.Len(t, got, 3)
	assert.Equal(t, StepMsg{Step: "build"}, got[0])
	assert.Equal(t, StepMsg{Step: "build", Done: true, Outcome: provisioning.OutcomeCreated}, got[1])
	assert.Equal(t, AttemptMsg{Step: "create-service-account", Current: 1, Total: 3}, got[2])
}
