package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/provisioning"
	"github.com/docsearch/deployctl/internal/util/naming"
	"github.com/docsearch/deployctl/internal/util/prerequisites"
)

// checkTools is swapped in tests.
var checkTools = func() *prerequisites.CheckResults {
	return prerequisites.Check(prerequisites.DefaultTools())
}

// DoctorReport is the machine-readable form of a doctor run.
type DoctorReport struct {
	ProjectID      string            `json:"project_id"`
	Account        string            `json:"account,omitempty"`
	AuthError      string            `json:"auth_error,omitempty"`
	Tools          map[string]bool   `json:"tools"`
	Services       map[string]bool   `json:"services"`
	ServiceAccount string            `json:"service_account"`
	RoleBinding    string            `json:"role_binding"`
	Repository     string            `json:"repository"`
	CloudRun       string            `json:"cloud_run"`
	ServiceURL     string            `json:"service_url,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// Doctor probes local tooling, authentication and every remote resource
// the deployment needs, without changing anything.
func Doctor(ctx context.Context, flags config.Flags, jsonOutput bool) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	report := probe(ctx, cfg)

	if jsonOutput {
		enc := json.NewEncoder(reportOut)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderDoctor(report)
	return nil
}

func probe(ctx context.Context, cfg *config.Config) DoctorReport {
	report := DoctorReport{
		ProjectID: cfg.ProjectID,
		Tools:     make(map[string]bool),
		Services:  make(map[string]bool),
		Errors:    make(map[string]string),
	}

	for _, result := range checkTools().Results {
		report.Tools[result.Tool.Name] = result.Found
	}

	api := newAPI()
	account, err := api.ActiveAccount(ctx)
	if err != nil {
		report.AuthError = err.Error()
		return report
	}
	report.Account = account

	for _, service := range provisioning.RequiredServices() {
		enabled, err := api.IsEnabled(ctx, cfg.ProjectID, service)
		if err != nil {
			report.Errors[service] = err.Error()
			continue
		}
		report.Services[service] = enabled
	}

	email := naming.ServiceAccountEmail(cfg.ServiceAccountName, cfg.ProjectID)
	report.ServiceAccount = probeExistence(report.Errors, "service_account", func() (gcloud.Existence, error) {
		return api.DescribeServiceAccount(ctx, cfg.ProjectID, email)
	})

	report.RoleBinding = "absent"
	member := naming.ServiceAccountMember(cfg.ServiceAccountName, cfg.ProjectID)
	if policy, err := api.GetPolicy(ctx, cfg.ProjectID); err != nil {
		report.RoleBinding = "unknown"
		report.Errors["role_binding"] = err.Error()
	} else if policy.HasBinding(provisioning.DiscoveryEngineRole, member) {
		report.RoleBinding = "present"
	}

	report.Repository = probeExistence(report.Errors, "repository", func() (gcloud.Existence, error) {
		return api.DescribeRepository(ctx, cfg.ProjectID, cfg.RepositoryName, cfg.Region)
	})

	report.CloudRun = probeExistence(report.Errors, "cloud_run", func() (gcloud.Existence, error) {
		return api.DescribeService(ctx, cfg.ProjectID, cfg.AppName, cfg.Region)
	})
	if report.CloudRun == "present" {
		if url, err := api.ServiceURL(ctx, cfg.ProjectID, cfg.AppName, cfg.Region); err == nil {
			report.ServiceURL = url
		}
	}

	if len(report.Errors) == 0 {
		report.Errors = nil
	}
	return report
}

func probeExistence(errs map[string]string, key string, describe func() (gcloud.Existence, error)) string {
	state, err := describe()
	if err != nil {
		errs[key] = err.Error()
		return gcloud.ExistenceUnknown.String()
	}
	return state.String()
}

var (
	doctorHeaderStyle = lipgloss.NewStyle().Bold(true)
	doctorOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	doctorBadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	doctorDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

func renderDoctor(report DoctorReport) {
	fmt.Fprintln(reportOut, doctorHeaderStyle.Render("Project "+report.ProjectID))

	names := make([]string, 0, len(report.Tools))
	for name := range report.Tools {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(reportOut, "  %s tool %s\n", stateMark(report.Tools[name]), name)
	}

	if report.AuthError != "" {
		fmt.Fprintf(reportOut, "  %s authentication: %s\n", doctorBadStyle.Render("[!!]"), report.AuthError)
		return
	}
	fmt.Fprintf(reportOut, "  %s authenticated as %s\n", doctorOKStyle.Render("[OK]"), report.Account)

	for _, service := range provisioning.RequiredServices() {
		enabled, known := report.Services[service]
		switch {
		case !known:
			fmt.Fprintf(reportOut, "  %s service %s\n", doctorDimStyle.Render("[??]"), service)
		default:
			fmt.Fprintf(reportOut, "  %s service %s\n", stateMark(enabled), service)
		}
	}

	fmt.Fprintf(reportOut, "  %s service account: %s\n", existenceMark(report.ServiceAccount), report.ServiceAccount)
	fmt.Fprintf(reportOut, "  %s role binding: %s\n", existenceMark(report.RoleBinding), report.RoleBinding)
	fmt.Fprintf(reportOut, "  %s repository: %s\n", existenceMark(report.Repository), report.Repository)
	fmt.Fprintf(reportOut, "  %s cloud run service: %s\n", existenceMark(report.CloudRun), report.CloudRun)
	if report.ServiceURL != "" {
		fmt.Fprintf(reportOut, "       %s\n", report.ServiceURL)
	}
}

func stateMark(ok bool) string {
	if ok {
		return doctorOKStyle.Render("[OK]")
	}
	return doctorBadStyle.Render("[!!]")
}

func existenceMark(state string) string {
	switch state {
	case "present":
		return doctorOKStyle.Render("[OK]")
	case "absent":
		return doctorBadStyle.Render("[!!]")
	default:
		return doctorDimStyle.Render("[??]")
	}
}
