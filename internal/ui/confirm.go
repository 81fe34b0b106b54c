// Package ui implements the operator-facing surfaces: the confirmation
// gate before mutation and the styled result report after the run.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/util/naming"
)

// ErrConfirmationDeclined signals a clean operator abort. It maps to the
// cancellation exit code, not a failure.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// ciEnvVars are the signals that the run happens inside automation, where
// prompting would hang forever.
var ciEnvVars = []string{"CI", "BUILD_ID", "GITHUB_ACTIONS"}

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// runForm is swapped in tests; huh owns the terminal when it runs.
var runForm = func(form *huh.Form) error {
	return form.Run()
}

// ShouldSkipConfirmation reports whether the gate must be bypassed:
// explicitly via config, implicitly via a CI signal, or because stdin is
// not an interactive terminal.
func ShouldSkipConfirmation(cfg *config.Config) bool {
	if cfg.SkipConfirmation {
		return true
	}
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return !stdinIsTerminal()
}

// Plan renders the full action list the operator is about to approve.
func Plan(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "About to provision project %s:\n", cfg.ProjectID)
	fmt.Fprintf(&b, "  1. Enable platform services (Cloud Run, Cloud Build, Artifact Registry, IAM, Discovery Engine)\n")
	fmt.Fprintf(&b, "  2. Create service account %s\n", naming.ServiceAccountEmail(cfg.ServiceAccountName, cfg.ProjectID))
	fmt.Fprintf(&b, "  3. Grant Discovery Engine access to the service account\n")
	fmt.Fprintf(&b, "  4. Create Artifact Registry repository %s (%s)\n", cfg.RepositoryName, cfg.Region)
	fmt.Fprintf(&b, "  5. Build the application image from %s\n", cfg.SourceDir)
	fmt.Fprintf(&b, "  6. Deploy %s to Cloud Run in %s\n", cfg.AppName, cfg.Region)
	return b.String()
}

// Confirm shows the plan and requires an explicit affirmative before any
// mutation happens. A skipped gate returns nil without prompting.
func Confirm(cfg *config.Config, out io.Writer) error {
	if ShouldSkipConfirmation(cfg) {
		return nil
	}

	fmt.Fprint(out, Plan(cfg))

	var proceed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Proceed with deployment?").
			Affirmative("Yes").
			Negative("No").
			Value(&proceed),
	))

	if err := runForm(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrConfirmationDeclined
		}
		// huh needs a working terminal; fall back to a plain prompt.
		return confirmPlain(out, os.Stdin)
	}
	if !proceed {
		return ErrConfirmationDeclined
	}
	return nil
}

// confirmPlain is the lowest-common-denominator prompt: one line, one
// character.
func confirmPlain(out io.Writer, in io.Reader) error {
	fmt.Fprint(out, "Proceed with deployment? [y/N]: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ErrConfirmationDeclined
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return ErrConfirmationDeclined
	}
}
