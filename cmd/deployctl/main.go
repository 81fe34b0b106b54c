// Package main is the entry point for the deployctl CLI.
//
// deployctl provisions and deploys a containerized document-search
// application to Google Cloud Run in one run: it enables the required
// platform services, creates the runtime service account and its role
// binding, creates the Artifact Registry repository, builds the image
// with Cloud Build and deploys it. Every step is idempotent, so the
// command is safe to re-run against a partially provisioned project.
//
// For detailed usage information, run:
//
//	deployctl --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/docsearch/deployctl/cmd/deployctl/commands"
	"github.com/docsearch/deployctl/internal/ui"
)

// Exit codes. Cancellation is distinguished from failure so wrappers can
// tell an operator's "no" apart from a broken run.
const (
	exitOK       = 0
	exitFailure  = 1
	exitCanceled = 2
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	os.Exit(run())
}

func run() int {
	err := commands.Root().Execute()
	if err == nil {
		return exitOK
	}
	if errors.Is(err, ui.ErrConfirmationDeclined) {
		fmt.Fprintln(os.Stderr, "aborted")
		return exitCanceled
	}
	fmt.Fprintln(os.Stderr, err)
	return exitFailure
}
