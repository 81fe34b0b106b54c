package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when no
// explicit --config path is given.
const DefaultConfigFile = "deployctl.yaml"

// File holds values read from a deployctl.yaml file. All fields are
// optional; unset fields fall through to defaults.
type File struct {
	ProjectID          string `mapstructure:"project_id"`
	DataStoreID        string `mapstructure:"data_store_id"`
	Region             string `mapstructure:"region"`
	Location           string `mapstructure:"location"`
	AppName            string `mapstructure:"app_name"`
	ServiceAccountName string `mapstructure:"service_account_name"`
	RepositoryName     string `mapstructure:"repository_name"`
	SourceDir          string `mapstructure:"source_dir"`
	SkipConfirmation   bool   `mapstructure:"skip_confirmation"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var f File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &f,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return &f, nil
}

// FindConfigFile returns the default config file path if one exists in the
// working directory.
func FindConfigFile() (string, bool) {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, true
	}
	return "", false
}
