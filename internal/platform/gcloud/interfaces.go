package gcloud

import "context"

// Existence is the observed state of a remote resource. It is re-derived
// by a describe call at the start of every step and never cached across
// steps: the orchestrator is not the only writer of the project.
type Existence int

const (
	// ExistenceUnknown means the describe call could not determine state.
	ExistenceUnknown Existence = iota
	// ExistenceAbsent means the resource does not exist.
	ExistenceAbsent
	// ExistencePresent means the resource exists.
	ExistencePresent
)

// String returns a human-readable form for logs and doctor output.
func (e Existence) String() string {
	switch e {
	case ExistenceAbsent:
		return "absent"
	case ExistencePresent:
		return "present"
	default:
		return "unknown"
	}
}

// ServiceCatalog checks and toggles platform service enablement.
type ServiceCatalog interface {
	IsEnabled(ctx context.Context, projectID, service string) (bool, error)
	Enable(ctx context.Context, projectID, service string) error
}

// IdentityStore manages service accounts.
type IdentityStore interface {
	DescribeServiceAccount(ctx context.Context, projectID, email string) (Existence, error)
	CreateServiceAccount(ctx context.Context, projectID, name, displayName string) error
}

// PolicyStore reads and mutates the project IAM policy. GetPolicy is the
// structured, authoritative read; GetPolicyText is the degraded raw dump
// used only when structured parsing is unavailable.
type PolicyStore interface {
	GetPolicy(ctx context.Context, projectID string) (*Policy, error)
	GetPolicyText(ctx context.Context, projectID string) (string, error)
	AddBinding(ctx context.Context, projectID, member, role string) error
}

// ArtifactStore manages Artifact Registry repositories.
type ArtifactStore interface {
	DescribeRepository(ctx context.Context, projectID, repository, location string) (Existence, error)
	CreateRepository(ctx context.Context, projectID, repository, location string) error
}

// Builder submits application image builds.
type Builder interface {
	DescribeImage(ctx context.Context, tag string) (Existence, error)
	SubmitBuild(ctx context.Context, projectID, sourceDir, tag string) error
}

// DeployOpts carries everything a Cloud Run deploy call binds together.
type DeployOpts struct {
	ProjectID            string
	Service              string
	Image                string
	Region               string
	ServiceAccountEmail  string
	Port                 int
	EnvVars              map[string]string
	AllowUnauthenticated bool
}

// Hoster deploys the built image and reports its reachable address.
type Hoster interface {
	DeployService(ctx context.Context, opts DeployOpts) error
	ServiceURL(ctx context.Context, projectID, service, region string) (string, error)
	DescribeService(ctx context.Context, projectID, service, region string) (Existence, error)
}

// API is the full provider surface the orchestrator consumes.
type API interface {
	ServiceCatalog
	IdentityStore
	PolicyStore
	ArtifactStore
	Builder
	Hoster

	// ActiveAccount returns the authenticated gcloud account, failing when
	// no credentials are active.
	ActiveAccount(ctx context.Context) (string, error)

	// SupportsStructuredOutput probes whether gcloud can emit JSON the
	// policy inspection can parse. The degraded text path is used only
	// when this reports false.
	SupportsStructuredOutput(ctx context.Context) bool
}
