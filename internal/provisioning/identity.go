package provisioning

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/util/naming"
)

// ServiceAccountStep ensures the runtime service account exists and is
// visible. Creation is asynchronous on the backend, so a fresh account is
// polled under the bounded propagation policy before the step reports
// success; later steps reference the account and must not race its
// visibility.
type ServiceAccountStep struct{}

func (s *ServiceAccountStep) Name() string { return "create-service-account" }

func (s *ServiceAccountStep) Provision(ctx *Context) (Outcome, error) {
	cfg := ctx.Config
	email := naming.ServiceAccountEmail(cfg.ServiceAccountName, cfg.ProjectID)

	state, err := ctx.API.DescribeServiceAccount(ctx, cfg.ProjectID, email)
	if err != nil {
		return OutcomeFailed, &ResourceCreationError{Resource: "service account", Name: email, Err: err}
	}
	if state == gcloud.ExistencePresent {
		ctx.Observer.Event(Event{
			Type: EventResourceExists, Step: s.Name(),
			Resource: email, Timestamp: time.Now(),
		})
		return OutcomeAlreadyPresent, nil
	}

	ctx.Observer.Event(Event{
		Type: EventResourceCreating, Step: s.Name(),
		Resource: email, Timestamp: time.Now(),
	})
	displayName := cfg.AppName + " runtime"
	if err := ctx.API.CreateServiceAccount(ctx, cfg.ProjectID, cfg.ServiceAccountName, displayName); err != nil {
		return OutcomeFailed, &ResourceCreationError{Resource: "service account", Name: email, Err: err}
	}

	if err := s.awaitVisible(ctx, email); err != nil {
		return OutcomeFailed, err
	}

	ctx.Observer.Event(Event{
		Type: EventResourceCreated, Step: s.Name(),
		Resource: email, Timestamp: time.Now(),
	})
	return OutcomeCreated, nil
}

// awaitVisible polls the describe call until the new account shows up or
// the propagation budget runs out.
func (s *ServiceAccountStep) awaitVisible(ctx *Context, email string) error {
	policy := ctx.Propagation
	attempt := 0

	err := policy.Do(ctx, func() error {
		attempt++
		ctx.Observer.Progress(s.Name(), attempt, policy.MaxAttempts)

		state, err := ctx.API.DescribeServiceAccount(ctx, ctx.Config.ProjectID, email)
		if err != nil {
			return err
		}
		if state != gcloud.ExistencePresent {
			return fmt.Errorf("service account %s not visible yet", email)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Str("email", email).Int("attempts", attempt).Msg("service account did not become visible")
		return &PropagationTimeoutError{
			Email:    email,
			Attempts: policy.MaxAttempts,
			Delay:    policy.Delay,
		}
	}
	return nil
}
