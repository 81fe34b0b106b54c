// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and tested independently of cobra by
// swapping the factory function variables below.
package handlers

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/deploy"
	"github.com/docsearch/deployctl/internal/logging"
	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/provisioning"
	"github.com/docsearch/deployctl/internal/ui"
	"github.com/docsearch/deployctl/internal/ui/tui"
	"github.com/docsearch/deployctl/internal/util/prerequisites"
)

// Factory function variables - replaced in tests for dependency injection.
var (
	// newAPI creates the provider client.
	newAPI = func() gcloud.API {
		return gcloud.NewClient()
	}

	// resolveConfig merges flags, env, file and defaults.
	resolveConfig = config.Resolve

	// ensureTools checks (and if needed installs) required CLI tools.
	ensureTools = prerequisites.EnsureDefault

	// confirm runs the confirmation gate.
	confirm = ui.Confirm

	// runDashboard drives the pipeline under the interactive TUI.
	runDashboard = tui.Run

	// stdoutIsTerminal decides whether the dashboard can render.
	stdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// reportOut receives the end-of-run report.
	reportOut io.Writer = os.Stdout
)

// Deploy runs the complete orchestration: config resolution, preflight,
// confirmation, the five provisioning steps and the Cloud Run deploy,
// followed by the result report. Configuration and preflight failures
// surface before any remote call is made.
func Deploy(ctx context.Context, flags config.Flags, verbose bool) error {
	logging.Configure(verbose)

	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	if err := ensureTools().Error(); err != nil {
		return err
	}

	api := newAPI()
	if _, err := api.ActiveAccount(ctx); err != nil {
		return err
	}

	if err := confirm(cfg, os.Stdout); err != nil {
		return err
	}

	structured := api.SupportsStructuredOutput(ctx)

	var results []provisioning.StepResult
	var url string

	pipeline := func(ctx context.Context, obs provisioning.Observer) (string, error) {
		pctx := provisioning.NewContext(ctx, cfg, api)
		pctx.Observer = obs
		pctx.StructuredPolicy = structured

		var runErr error
		results, runErr = provisioning.RunSteps(pctx, provisioning.Steps())
		if runErr != nil {
			return "", runErr
		}
		return deploy.Run(ctx, cfg, api)
	}

	if stdoutIsTerminal() && !verbose {
		err = runDashboard(ctx, cfg.ProjectID, cfg.Region, stepNames(), func(ctx context.Context, obs provisioning.Observer) (string, error) {
			u, runErr := pipeline(ctx, obs)
			url = u
			return u, runErr
		})
	} else {
		url, err = pipeline(ctx, provisioning.NewConsoleObserver())
	}

	ui.Report{Results: results, ServiceURL: url, Err: err}.Render(reportOut)
	return err
}

func stepNames() []string {
	steps := provisioning.Steps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name()
	}
	return names
}
