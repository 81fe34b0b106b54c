package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docsearch/deployctl/internal/provisioning"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	urlStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Report renders the end-of-run summary: every step outcome, and either
// the service URL or the failing step with its reason.
type Report struct {
	Results    []provisioning.StepResult
	ServiceURL string
	Err        error
}

// Render writes the styled summary. Styling degrades automatically when
// the writer is not a terminal; lipgloss handles that.
func (r Report) Render(w io.Writer) {
	fmt.Fprintln(w)

	for _, result := range r.Results {
		fmt.Fprintf(w, "  %s %s %s\n",
			outcomeMark(result.Outcome),
			result.Step,
			dimStyle.Render("("+result.Outcome.String()+")"))
	}

	if r.Err != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, failureStyle.Render("Deployment failed"))
		fmt.Fprintf(w, "  %s\n", firstLine(r.Err.Error()))
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, successStyle.Render("Deployment complete"))
	if r.ServiceURL != "" {
		fmt.Fprintf(w, "  Service URL: %s\n", urlStyle.Render(r.ServiceURL))
	}
}

func outcomeMark(o provisioning.Outcome) string {
	switch o {
	case provisioning.OutcomeCreated:
		return successStyle.Render("[OK]")
	case provisioning.OutcomeAlreadyPresent:
		return dimStyle.Render("[OK]")
	default:
		return failureStyle.Render("[!!]")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
