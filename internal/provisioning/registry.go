package provisioning

import (
	"time"

	"github.com/docsearch/deployctl/internal/platform/gcloud"
)

// RepositoryStep ensures the docker-format Artifact Registry repository
// the build pushes into exists in the configured region.
type RepositoryStep struct{}

func (s *RepositoryStep) Name() string { return "create-repository" }

func (s *RepositoryStep) Provision(ctx *Context) (Outcome, error) {
	cfg := ctx.Config

	state, err := ctx.API.DescribeRepository(ctx, cfg.ProjectID, cfg.RepositoryName, cfg.Region)
	if err != nil {
		return OutcomeFailed, &ResourceCreationError{Resource: "repository", Name: cfg.RepositoryName, Err: err}
	}
	if state == gcloud.ExistencePresent {
		ctx.Observer.Event(Event{
			Type: EventResourceExists, Step: s.Name(),
			Resource: cfg.RepositoryName, Timestamp: time.Now(),
		})
		return OutcomeAlreadyPresent, nil
	}

	ctx.Observer.Event(Event{
		Type: EventResourceCreating, Step: s.Name(),
		Resource: cfg.RepositoryName, Timestamp: time.Now(),
	})
	if err := ctx.API.CreateRepository(ctx, cfg.ProjectID, cfg.RepositoryName, cfg.Region); err != nil {
		return OutcomeFailed, &ResourceCreationError{Resource: "repository", Name: cfg.RepositoryName, Err: err}
	}
	ctx.Observer.Event(Event{
		Type: EventResourceCreated, Step: s.Name(),
		Resource: cfg.RepositoryName, Timestamp: time.Now(),
	})
	return OutcomeCreated, nil
}
