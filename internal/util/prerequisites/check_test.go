package prerequisites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, present map[string]bool) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if present[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { lookPath = orig })
}

func stubRunInstall(t *testing.T, fn func(manager string, args ...string) error) {
	t.Helper()
	orig := runInstall
	runInstall = fn
	t.Cleanup(func() { runInstall = orig })
}

func TestCheck_ToolPresent(t *testing.T) {
	stubLookPath(t, map[string]bool{"sometool": true})

	results := Check([]Tool{{Name: "sometool", Required: true}})

	require.Len(t, results.Results, 1)
	assert.True(t, results.Results[0].Found)
	assert.Equal(t, "/usr/bin/sometool", results.Results[0].Path)
	assert.Empty(t, results.Missing)
	assert.NoError(t, results.Error())
}

func TestCheck_RequiredToolMissing(t *testing.T) {
	stubLookPath(t, nil)

	results := Check([]Tool{{Name: "gcloud", Required: true, InstallURL: "https://cloud.google.com/sdk/docs/install"}})

	err := results.Error()
	require.Error(t, err)

	var missing *ToolMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "gcloud", missing.Tool)
	assert.Contains(t, err.Error(), "https://cloud.google.com/sdk/docs/install")
}

func TestCheck_OptionalToolMissing(t *testing.T) {
	stubLookPath(t, nil)

	results := Check([]Tool{{Name: "jq", Required: false}})

	require.Len(t, results.Missing, 1)
	assert.NoError(t, results.Error())
}

func TestEnsure_InstallsThroughFirstAvailableManager(t *testing.T) {
	present := map[string]bool{"dnf": true, "brew": true}
	stubLookPath(t, present)

	var used []string
	stubRunInstall(t, func(manager string, args ...string) error {
		used = append(used, manager)
		// Simulate a successful install making the tool visible.
		present["mytool"] = true
		return nil
	})

	tool := Tool{
		Name:     "mytool",
		Required: true,
		Packages: map[string]string{"apt-get": "mytool", "dnf": "mytool-pkg", "brew": "mytool"},
	}

	results := Ensure([]Tool{tool})

	require.NoError(t, results.Error())
	require.Len(t, used, 1)
	assert.Equal(t, "dnf", used[0], "apt-get is absent, dnf is the first present manager")
	assert.True(t, results.Results[0].Installed)
	assert.True(t, results.Results[0].Found)
}

func TestEnsure_AllInstallersFail(t *testing.T) {
	stubLookPath(t, map[string]bool{"apt-get": true, "snap": true})

	var attempts int
	stubRunInstall(t, func(manager string, args ...string) error {
		attempts++
		return errors.New("install failed")
	})

	tool := Tool{
		Name:       "gcloud",
		Required:   true,
		InstallURL: "https://cloud.google.com/sdk/docs/install",
		Packages:   map[string]string{"apt-get": "google-cloud-cli", "snap": "google-cloud-cli"},
	}

	results := Ensure([]Tool{tool})

	assert.Equal(t, 2, attempts, "every present manager with a package is tried")

	var missing *ToolMissingError
	require.ErrorAs(t, results.Error(), &missing)
	assert.Equal(t, "gcloud", missing.Tool)
}

func TestEnsure_NoManagerAvailable(t *testing.T) {
	stubLookPath(t, nil)

	stubRunInstall(t, func(manager string, args ...string) error {
		t.Fatal("no install should be attempted without a package manager")
		return nil
	})

	results := Ensure([]Tool{{
		Name:     "gcloud",
		Required: true,
		Packages: map[string]string{"apt-get": "google-cloud-cli"},
	}})

	require.Error(t, results.Error())
}

func TestDefaultTools(t *testing.T) {
	tools := DefaultTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "gcloud", tools[0].Name)
	assert.True(t, tools[0].Required)
	assert.NotEmpty(t, tools[0].Packages)
}
