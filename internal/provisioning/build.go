package provisioning

import (
	"time"

	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/util/naming"
)

// BuildStep ensures an application image exists under the expected tag,
// submitting the source to Cloud Build when it does not. The build is an
// opaque external call: it streams its own output and is not retried. An
// image already pushed under the tag is reused; delete the tag to force a
// rebuild.
type BuildStep struct{}

func (s *BuildStep) Name() string { return "build" }

func (s *BuildStep) Provision(ctx *Context) (Outcome, error) {
	cfg := ctx.Config
	tag := naming.ImageTag(cfg.Region, cfg.ProjectID, cfg.RepositoryName, cfg.AppName)

	state, err := ctx.API.DescribeImage(ctx, tag)
	if err != nil {
		return OutcomeFailed, &BuildError{
			Tag:        tag,
			Diagnostic: gcloud.Diagnostic(err),
			Err:        err,
		}
	}
	if state == gcloud.ExistencePresent {
		ctx.Observer.Event(Event{
			Type: EventResourceExists, Step: s.Name(),
			Resource: tag, Timestamp: time.Now(),
		})
		return OutcomeAlreadyPresent, nil
	}

	ctx.Observer.Event(Event{
		Type: EventResourceCreating, Step: s.Name(),
		Resource: tag, Timestamp: time.Now(),
	})
	if err := ctx.API.SubmitBuild(ctx, cfg.ProjectID, cfg.SourceDir, tag); err != nil {
		return OutcomeFailed, &BuildError{
			Tag:        tag,
			Diagnostic: gcloud.Diagnostic(err),
			Err:        err,
		}
	}
	ctx.Observer.Event(Event{
		Type: EventResourceCreated, Step: s.Name(),
		Resource: tag, Timestamp: time.Now(),
	})
	return OutcomeCreated, nil
}
