package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every config environment variable for the test, so runs
// on developer machines with real values set stay deterministic.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvProjectID, EnvDataStoreID, EnvRegion, EnvLocation, EnvAppName,
		EnvServiceAccountName, EnvRepositoryName, EnvSourceDir, EnvSkipConfirmation,
	} {
		t.Setenv(name, "")
	}
}

func TestResolve_DefaultsApplied(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve(Flags{ProjectID: "search-prod-1", DataStoreID: "docs-store"})
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultLocation, cfg.Location)
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultAppName+"-sa", cfg.ServiceAccountName)
	assert.Equal(t, DefaultRepository, cfg.RepositoryName)
	assert.Equal(t, ".", cfg.SourceDir)
	assert.False(t, cfg.SkipConfirmation)
}

func TestResolve_MissingRequiredField(t *testing.T) {
	clearEnv(t)

	_, err := Resolve(Flags{ProjectID: "search-prod-1"})
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, EnvDataStoreID, missing.Field)
}

func TestResolve_EnvironmentOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProjectID, "env-project")
	t.Setenv(EnvDataStoreID, "env-store")
	t.Setenv(EnvRegion, "europe-west1")
	t.Setenv(EnvSkipConfirmation, "true")

	cfg, err := Resolve(Flags{})
	require.NoError(t, err)

	assert.Equal(t, "env-project", cfg.ProjectID)
	assert.Equal(t, "env-store", cfg.DataStoreID)
	assert.Equal(t, "europe-west1", cfg.Region)
	assert.True(t, cfg.SkipConfirmation)
}

func TestResolve_FlagsWinOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProjectID, "env-project")
	t.Setenv(EnvDataStoreID, "env-store")
	t.Setenv(EnvRegion, "europe-west1")

	cfg, err := Resolve(Flags{ProjectID: "flag-project", Region: "us-east1"})
	require.NoError(t, err)

	assert.Equal(t, "flag-project", cfg.ProjectID)
	assert.Equal(t, "us-east1", cfg.Region)
	assert.Equal(t, "env-store", cfg.DataStoreID, "env still fills what flags leave unset")
}

func TestResolve_FileBelowEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRegion, "europe-west1")

	path := writeConfigFile(t, `
project_id: file-project
data_store_id: file-store
region: asia-east1
app_name: filer
`)

	cfg, err := Resolve(Flags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "file-project", cfg.ProjectID)
	assert.Equal(t, "file-store", cfg.DataStoreID)
	assert.Equal(t, "europe-west1", cfg.Region, "environment beats the file")
	assert.Equal(t, "filer", cfg.AppName)
	assert.Equal(t, "filer-sa", cfg.ServiceAccountName, "derived from file app name")
}

func TestResolve_ExplicitServiceAccountNotDerived(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve(Flags{
		ProjectID:          "search-prod-1",
		DataStoreID:        "docs-store",
		ServiceAccountName: "custom-runtime",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom-runtime", cfg.ServiceAccountName)
}

func TestLoadFile_UnknownKeyRejected(t *testing.T) {
	path := writeConfigFile(t, "projcet_id: typo\n")

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deployctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
