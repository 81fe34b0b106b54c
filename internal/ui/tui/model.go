package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsearch/deployctl/internal/provisioning"
)

// StepState is one line of the dashboard.
type StepState struct {
	Name    string
	Active  bool
	Done    bool
	Outcome provisioning.Outcome
	Attempt string
	Err     error
}

// Model is the Bubble Tea model for the deployment dashboard.
type Model struct {
	ProjectID string
	Region    string

	Steps []StepState

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int

	URL  string
	Err  error
	Done bool
}

// NewModel creates the dashboard model with the full step list up front,
// including the final deploy.
func NewModel(projectID, region string, stepNames []string) Model {
	steps := make([]StepState, 0, len(stepNames)+1)
	for _, name := range stepNames {
		steps = append(steps, StepState{Name: name})
	}
	steps = append(steps, StepState{Name: "deploy"})

	return Model{
		ProjectID: projectID,
		Region:    region,
		Steps:     steps,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StepMsg:
		m.updateStep(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case AttemptMsg:
		m.updateAttempt(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.URL = msg.URL
		m.Done = true
		for i := range m.Steps {
			m.Steps[i].Done = true
			m.Steps[i].Active = false
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStep(msg StepMsg) {
	idx := m.stepIndex(msg.Step)
	if idx < 0 {
		return
	}

	// Everything before the reported step has finished.
	for i := 0; i < idx; i++ {
		m.Steps[i].Done = true
		m.Steps[i].Active = false
	}

	step := &m.Steps[idx]
	step.Attempt = ""
	if msg.Done {
		step.Done = true
		step.Active = false
		step.Outcome = msg.Outcome
	} else {
		step.Active = true
	}
	if msg.Err != nil {
		step.Err = msg.Err
		step.Active = false
	}
}

func (m *Model) updateAttempt(msg AttemptMsg) {
	if idx := m.stepIndex(msg.Step); idx >= 0 {
		m.Steps[idx].Attempt = attemptLabel(msg.Current, msg.Total)
	}
}

func (m *Model) stepIndex(name string) int {
	for i, step := range m.Steps {
		if step.Name == name {
			return i
		}
	}
	return -1
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
