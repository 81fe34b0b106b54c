package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ProjectID:          "search-prod-1",
		DataStoreID:        "docs-store",
		Region:             DefaultRegion,
		Location:           DefaultLocation,
		AppName:            DefaultAppName,
		ServiceAccountName: "docsearch-sa",
		RepositoryName:     DefaultRepository,
		SourceDir:          ".",
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingProjectIsFirst(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectID = ""
	cfg.DataStoreID = "" // both missing, project must be named first

	err := cfg.Validate()
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, EnvProjectID, missing.Field)
}

func TestValidate_MissingDataStore(t *testing.T) {
	cfg := validConfig()
	cfg.DataStoreID = ""

	var missing *MissingFieldError
	require.ErrorAs(t, cfg.Validate(), &missing)
	assert.Equal(t, EnvDataStoreID, missing.Field)
}

func TestValidate_BadLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Location = "mars"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Location")
}

func TestValidate_ShortProjectID(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectID = "p1"

	require.NoError(t, cfg.Validate())
}

func TestValidate_BadProjectID(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectID = "Not A Project"

	require.Error(t, cfg.Validate())
}
