// Package prerequisites verifies that the external tools the orchestrator
// shells out to are present, attempting a package-manager installation for
// tools that support one before giving up.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents an external tool the orchestrator depends on.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for manual installation instructions.
	InstallURL string

	// Packages maps a package manager name to the package that provides
	// this tool. Managers not listed cannot install it.
	Packages map[string]string
}

// DefaultTools returns the tools the deploy flow depends on.
// gcloud drives every provisioning, build and deploy call.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "gcloud",
			Required:    true,
			Description: "Drives all Google Cloud provisioning, build and deploy calls",
			InstallURL:  "https://cloud.google.com/sdk/docs/install",
			Packages: map[string]string{
				"apt-get": "google-cloud-cli",
				"dnf":     "google-cloud-cli",
				"yum":     "google-cloud-cli",
				"brew":    "google-cloud-sdk",
				"snap":    "google-cloud-cli",
			},
		},
	}
}

// ToolMissingError reports a required tool that is neither installed nor
// installable on this host.
type ToolMissingError struct {
	Tool       string
	InstallURL string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("required tool %q not found and could not be installed; install it manually: %s", e.Tool, e.InstallURL)
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool      Tool
	Found     bool
	Path      string
	Version   string
	Installed bool // true when the tool was installed by this run
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Error returns a ToolMissingError for the first required missing tool,
// or nil when everything needed is available.
func (r *CheckResults) Error() error {
	for _, tool := range r.Missing {
		if tool.Required {
			return &ToolMissingError{Tool: tool.Name, InstallURL: tool.InstallURL}
		}
	}
	return nil
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Check verifies that the specified tools are available without attempting
// installation.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// Ensure checks the tools and tries to install any that are missing through
// the host's package manager. Tools still missing afterwards end up in
// Missing, and Error() reports the first required one.
func Ensure(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err != nil && len(tool.Packages) > 0 {
			if installErr := install(tool); installErr == nil {
				result.Installed = true
				path, err = lookPath(tool.Name)
			}
		}

		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// EnsureDefault ensures the default required tools.
func EnsureDefault() *CheckResults {
	return Ensure(DefaultTools())
}

// toolVersion attempts to get the version of a tool. Returns an empty
// string if the version cannot be determined.
func toolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
