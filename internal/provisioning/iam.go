package provisioning

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/util/naming"
)

// DiscoveryEngineRole is the role the runtime service account needs to
// query the Discovery Engine data store.
const DiscoveryEngineRole = "roles/discoveryengine.editor"

// RoleGrantStep grants DiscoveryEngineRole to the runtime service account
// on the project, but only when the exact role+member pair is not already
// bound. The structured policy read is authoritative; the textual scan of
// the raw policy dump is a degraded path used only when structured output
// is unavailable or fails to parse, and can only over-report existing
// bindings, never grant twice.
type RoleGrantStep struct{}

func (s *RoleGrantStep) Name() string { return "grant-role" }

func (s *RoleGrantStep) Provision(ctx *Context) (Outcome, error) {
	cfg := ctx.Config
	member := naming.ServiceAccountMember(cfg.ServiceAccountName, cfg.ProjectID)

	bound, err := s.hasBinding(ctx, member)
	if err != nil {
		return OutcomeFailed, &PermissionGrantError{Role: DiscoveryEngineRole, Member: member, Err: err}
	}
	if bound {
		ctx.Observer.Event(Event{
			Type: EventResourceExists, Step: s.Name(),
			Resource: DiscoveryEngineRole + " for " + member, Timestamp: time.Now(),
		})
		return OutcomeAlreadyPresent, nil
	}

	ctx.Observer.Event(Event{
		Type: EventResourceCreating, Step: s.Name(),
		Resource: DiscoveryEngineRole + " for " + member, Timestamp: time.Now(),
	})
	if err := ctx.API.AddBinding(ctx, cfg.ProjectID, member, DiscoveryEngineRole); err != nil {
		return OutcomeFailed, &PermissionGrantError{Role: DiscoveryEngineRole, Member: member, Err: err}
	}
	ctx.Observer.Event(Event{
		Type: EventResourceCreated, Step: s.Name(),
		Resource: DiscoveryEngineRole + " for " + member, Timestamp: time.Now(),
	})
	return OutcomeCreated, nil
}

func (s *RoleGrantStep) hasBinding(ctx *Context, member string) (bool, error) {
	if ctx.StructuredPolicy {
		policy, err := ctx.API.GetPolicy(ctx, ctx.Config.ProjectID)
		if err == nil {
			return policy.HasBinding(DiscoveryEngineRole, member), nil
		}
		log.Warn().Err(err).Msg("structured policy read failed, falling back to text scan")
	}

	text, err := ctx.API.GetPolicyText(ctx, ctx.Config.ProjectID)
	if err != nil {
		return false, err
	}
	return gcloud.TextContainsBinding(text, DiscoveryEngineRole, member), nil
}
