package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/docsearch/deployctl/internal/provisioning"
)

func attemptLabel(current, total int) string {
	return fmt.Sprintf("attempt %d/%d", current, total)
}

func renderView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("deployctl"))
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %s (%s)", m.ProjectID, m.Region)))
	b.WriteString("\n\n")

	for _, step := range m.Steps {
		b.WriteString(renderStep(step, m.SpinnerFrame))
		b.WriteString("\n")
	}

	switch {
	case m.Err != nil:
		b.WriteString("\n")
		b.WriteString(failedStyle.Render("Deployment failed"))
		b.WriteString("\n")
		b.WriteString(firstLine(m.Err.Error()))
		b.WriteString("\n")
	case m.Done:
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("Deployment complete"))
		if m.URL != "" {
			b.WriteString("\n")
			b.WriteString("Service URL: ")
			b.WriteString(urlStyle.Render(m.URL))
		}
		b.WriteString("\n")
	}

	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("elapsed %v  -  q to quit", elapsed)))
	b.WriteString("\n")

	return b.String()
}

func renderStep(step StepState, frame int) string {
	var mark, name string
	switch {
	case step.Err != nil:
		mark = failedStyle.Render(crossMark)
		name = failedStyle.Render(step.Name)
	case step.Done:
		mark = doneStyle.Render(checkMark)
		if step.Outcome == provisioning.OutcomeAlreadyPresent {
			name = dimStyle.Render(step.Name + " (already present)")
		} else {
			name = step.Name
		}
	case step.Active:
		mark = activeStyle.Render(spinnerFrames[frame%len(spinnerFrames)])
		name = activeStyle.Render(step.Name)
		if step.Attempt != "" {
			name += dimStyle.Render("  " + step.Attempt)
		}
	default:
		mark = dimStyle.Render(pending)
		name = dimStyle.Render(step.Name)
	}
	return fmt.Sprintf("  %s %s", mark, name)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
