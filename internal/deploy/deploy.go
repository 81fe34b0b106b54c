// Package deploy pushes the built application image to Cloud Run and
// resolves its public address.
package deploy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/util/naming"
)

// ContainerPort is the single port the application container listens on.
const ContainerPort = 8080

// DeployError reports a failed Cloud Run deploy with the provider's
// diagnostic output. Deploys are not retried; the operator decides.
type DeployError struct {
	Service    string
	Diagnostic string
	Err        error
}

func (e *DeployError) Error() string {
	msg := fmt.Sprintf("deploy of %s failed", e.Service)
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	}
	return msg
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// RuntimeEnv returns the environment the deployed application receives.
// The application is opaque to the orchestrator: these three identifiers
// and a port are its entire contract.
func RuntimeEnv(cfg *config.Config) map[string]string {
	return map[string]string{
		"PROJECT_ID":    cfg.ProjectID,
		"LOCATION":      cfg.Location,
		"DATA_STORE_ID": cfg.DataStoreID,
	}
}

// Run deploys the freshly built image to Cloud Run under the runtime
// service account and returns the reachable service URL.
func Run(ctx context.Context, cfg *config.Config, hoster gcloud.Hoster) (string, error) {
	image := naming.ImageTag(cfg.Region, cfg.ProjectID, cfg.RepositoryName, cfg.AppName)
	email := naming.ServiceAccountEmail(cfg.ServiceAccountName, cfg.ProjectID)

	log.Info().
		Str("service", cfg.AppName).
		Str("image", image).
		Str("region", cfg.Region).
		Msg("deploying to Cloud Run")

	opts := gcloud.DeployOpts{
		ProjectID:            cfg.ProjectID,
		Service:              cfg.AppName,
		Image:                image,
		Region:               cfg.Region,
		ServiceAccountEmail:  email,
		Port:                 ContainerPort,
		EnvVars:              RuntimeEnv(cfg),
		AllowUnauthenticated: true,
	}
	if err := hoster.DeployService(ctx, opts); err != nil {
		return "", &DeployError{
			Service:    cfg.AppName,
			Diagnostic: gcloud.Diagnostic(err),
			Err:        err,
		}
	}

	url, err := hoster.ServiceURL(ctx, cfg.ProjectID, cfg.AppName, cfg.Region)
	if err != nil {
		return "", &DeployError{
			Service:    cfg.AppName,
			Diagnostic: gcloud.Diagnostic(err),
			Err:        err,
		}
	}
	return url, nil
}
