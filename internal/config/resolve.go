package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Flags carries values bound from CLI flags. Empty strings mean unset.
type Flags struct {
	ConfigPath         string
	ProjectID          string
	DataStoreID        string
	Region             string
	Location           string
	AppName            string
	ServiceAccountName string
	RepositoryName     string
	SourceDir          string
	SkipConfirmation   bool
}

// Resolve merges flags, environment variables, the optional config file
// and defaults into a validated Config. Priority: flags > environment >
// file > defaults. Validation happens here, before any remote call.
func Resolve(flags Flags) (*Config, error) {
	cfg := &Config{
		Region:         DefaultRegion,
		Location:       DefaultLocation,
		AppName:        DefaultAppName,
		RepositoryName: DefaultRepository,
		SourceDir:      DefaultSourceDir,
	}

	path := flags.ConfigPath
	if path == "" {
		if found, ok := FindConfigFile(); ok {
			path = found
		}
	}
	if path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		applyFile(cfg, file)
		log.Debug().Str("path", path).Msg("loaded config file")
	}

	applyEnv(cfg)
	applyFlags(cfg, flags)

	// The service account short name derives from the app name unless it
	// was set explicitly by any source.
	if cfg.ServiceAccountName == "" {
		cfg.ServiceAccountName = fmt.Sprintf("%s-sa", cfg.AppName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("project", cfg.ProjectID).
		Str("region", cfg.Region).
		Str("location", cfg.Location).
		Str("app", cfg.AppName).
		Msg("configuration resolved")

	return cfg, nil
}

func applyFile(cfg *Config, f *File) {
	setString(&cfg.ProjectID, f.ProjectID)
	setString(&cfg.DataStoreID, f.DataStoreID)
	setString(&cfg.Region, f.Region)
	setString(&cfg.Location, f.Location)
	setString(&cfg.AppName, f.AppName)
	setString(&cfg.ServiceAccountName, f.ServiceAccountName)
	setString(&cfg.RepositoryName, f.RepositoryName)
	setString(&cfg.SourceDir, f.SourceDir)
	if f.SkipConfirmation {
		cfg.SkipConfirmation = true
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.ProjectID, os.Getenv(EnvProjectID))
	setString(&cfg.DataStoreID, os.Getenv(EnvDataStoreID))
	setString(&cfg.Region, os.Getenv(EnvRegion))
	setString(&cfg.Location, os.Getenv(EnvLocation))
	setString(&cfg.AppName, os.Getenv(EnvAppName))
	setString(&cfg.ServiceAccountName, os.Getenv(EnvServiceAccountName))
	setString(&cfg.RepositoryName, os.Getenv(EnvRepositoryName))
	setString(&cfg.SourceDir, os.Getenv(EnvSourceDir))
	if v, err := strconv.ParseBool(os.Getenv(EnvSkipConfirmation)); err == nil && v {
		cfg.SkipConfirmation = true
	}
}

func applyFlags(cfg *Config, flags Flags) {
	setString(&cfg.ProjectID, flags.ProjectID)
	setString(&cfg.DataStoreID, flags.DataStoreID)
	setString(&cfg.Region, flags.Region)
	setString(&cfg.Location, flags.Location)
	setString(&cfg.AppName, flags.AppName)
	setString(&cfg.ServiceAccountName, flags.ServiceAccountName)
	setString(&cfg.RepositoryName, flags.RepositoryName)
	setString(&cfg.SourceDir, flags.SourceDir)
	if flags.SkipConfirmation {
		cfg.SkipConfirmation = true
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
