// Package config resolves and validates the deployment configuration.
//
// Sources are merged in priority order: explicit flags, then environment
// variables, then an optional deployctl.yaml file, then hard-coded
// defaults. The resulting Config is immutable for the lifetime of a run
// and is handed to every component by pointer; nothing downstream reads
// the environment again.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Defaults for every non-required field.
const (
	DefaultRegion     = "us-central1"
	DefaultLocation   = "global"
	DefaultAppName    = "docsearch"
	DefaultRepository = "docsearch-repo"
	DefaultSourceDir  = "."
)

// Environment variable names read by Resolve.
const (
	EnvProjectID          = "PROJECT_ID"
	EnvDataStoreID        = "DATA_STORE_ID"
	EnvRegion             = "REGION"
	EnvLocation           = "LOCATION"
	EnvAppName            = "APP_NAME"
	EnvServiceAccountName = "SERVICE_ACCOUNT_NAME"
	EnvRepositoryName     = "REPOSITORY_NAME"
	EnvSourceDir          = "SOURCE_DIR"
	EnvSkipConfirmation   = "SKIP_CONFIRMATION"
)

// Config holds the resolved deployment configuration.
type Config struct {
	// ProjectID is the Google Cloud project everything is provisioned in.
	ProjectID string `mapstructure:"project_id" validate:"required,hostname_rfc1123"`

	// DataStoreID identifies the Discovery Engine data store the deployed
	// application queries at runtime.
	DataStoreID string `mapstructure:"data_store_id" validate:"required"`

	// Region is the Cloud Run / Artifact Registry region.
	Region string `mapstructure:"region" validate:"required"`

	// Location is the Discovery Engine location ("global", "us" or "eu").
	Location string `mapstructure:"location" validate:"required,oneof=global us eu"`

	// AppName names the Cloud Run service and the application image.
	AppName string `mapstructure:"app_name" validate:"required,hostname_rfc1123"`

	// ServiceAccountName is the short name of the runtime service account.
	// Defaults to "<app_name>-sa".
	ServiceAccountName string `mapstructure:"service_account_name" validate:"required,hostname_rfc1123"`

	// RepositoryName is the Artifact Registry repository for the image.
	RepositoryName string `mapstructure:"repository_name" validate:"required,hostname_rfc1123"`

	// SourceDir is the directory submitted to Cloud Build.
	SourceDir string `mapstructure:"source_dir" validate:"required"`

	// SkipConfirmation proceeds without the interactive plan prompt.
	SkipConfirmation bool `mapstructure:"skip_confirmation"`
}

// MissingFieldError reports the first required configuration value that is
// absent from every source. It is raised before any remote call is made.
type MissingFieldError struct {
	Field string // environment variable style name, e.g. PROJECT_ID
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required configuration %s is not set (flag, environment or config file)", e.Field)
}

var validate = validator.New()

// Validate checks the resolved configuration. Required fields are checked
// explicitly first so the error names the first absent one; format checks
// run through the validator tags afterwards.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{EnvProjectID, c.ProjectID},
		{EnvDataStoreID, c.DataStoreID},
	}
	for _, field := range required {
		if field.value == "" {
			return &MissingFieldError{Field: field.name}
		}
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %q validation (value %q)",
				first.Field(), first.Tag(), fmt.Sprintf("%v", first.Value()))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
