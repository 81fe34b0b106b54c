package provisioning

import (
	"time"

	"github.com/rs/zerolog/log"
)

// RequiredServices lists the platform services the deployment depends on,
// in enablement order.
func RequiredServices() []string {
	return []string{
		"run.googleapis.com",
		"cloudbuild.googleapis.com",
		"artifactregistry.googleapis.com",
		"iam.googleapis.com",
		"discoveryengine.googleapis.com",
	}
}

// ServicesStep enables the required platform services. Enablement is
// checked and applied per service; a service already enabled is left
// untouched.
type ServicesStep struct{}

func (s *ServicesStep) Name() string { return "enable-services" }

func (s *ServicesStep) Provision(ctx *Context) (Outcome, error) {
	enabledAny := false

	for _, service := range RequiredServices() {
		enabled, err := ctx.API.IsEnabled(ctx, ctx.Config.ProjectID, service)
		if err != nil {
			return OutcomeFailed, &ResourceCreationError{Resource: "service", Name: service, Err: err}
		}

		if enabled {
			ctx.Observer.Event(Event{
				Type: EventResourceExists, Step: s.Name(),
				Resource: service, Timestamp: time.Now(),
			})
			continue
		}

		ctx.Observer.Event(Event{
			Type: EventResourceCreating, Step: s.Name(),
			Resource: service, Timestamp: time.Now(),
		})
		if err := ctx.API.Enable(ctx, ctx.Config.ProjectID, service); err != nil {
			return OutcomeFailed, &ResourceCreationError{Resource: "service", Name: service, Err: err}
		}
		log.Debug().Str("service", service).Msg("service enabled")
		ctx.Observer.Event(Event{
			Type: EventResourceCreated, Step: s.Name(),
			Resource: service, Timestamp: time.Now(),
		})
		enabledAny = true
	}

	if enabledAny {
		return OutcomeCreated, nil
	}
	return OutcomeAlreadyPresent, nil
}
