package provisioning

import (
	"context"
	"time"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/util/retry"
)

// DefaultPropagation is the visibility polling budget for freshly created
// identities: a bounded number of fixed-delay checks, not an open-ended
// wait.
var DefaultPropagation = retry.Fixed(3, 5*time.Second)

// Context wraps the dependencies every provisioning step needs.
type Context struct {
	context.Context
	Config   *config.Config
	API      gcloud.API
	Observer Observer

	// Propagation bounds the service account visibility poll.
	Propagation retry.Policy

	// StructuredPolicy records whether the provider can emit parseable
	// JSON. When false the role grant step falls back to scanning the
	// raw policy dump.
	StructuredPolicy bool
}

// NewContext creates a provisioning context with the console observer and
// the default propagation policy.
func NewContext(ctx context.Context, cfg *config.Config, api gcloud.API) *Context {
	return &Context{
		Context:          ctx,
		Config:           cfg,
		API:              api,
		Observer:         NewConsoleObserver(),
		Propagation:      DefaultPropagation,
		StructuredPolicy: true,
	}
}
