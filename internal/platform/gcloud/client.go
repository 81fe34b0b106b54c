package gcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Client implements the API interface over a CommandRunner.
type Client struct {
	runner CommandRunner
}

// NewClient returns a client executing real gcloud subprocesses.
func NewClient() *Client {
	return NewClientWithRunner(NewExecRunner())
}

// NewClientWithRunner returns a client using the given runner. Tests
// substitute a scripted runner here.
func NewClientWithRunner(runner CommandRunner) *Client {
	return &Client{runner: runner}
}

// ActiveAccount returns the account gcloud is authenticated as.
func (c *Client) ActiveAccount(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx,
		"auth", "list", "--filter=status:ACTIVE", "--format", "value(account)")
	if err != nil {
		return "", fmt.Errorf("failed to check gcloud authentication: %w", err)
	}
	if out == "" {
		return "", errors.New("not authenticated: run 'gcloud auth login' first")
	}
	return out, nil
}

// SupportsStructuredOutput probes gcloud's JSON formatter once per call.
func (c *Client) SupportsStructuredOutput(ctx context.Context) bool {
	out, err := c.runner.Output(ctx, "version", "--format", "json")
	if err != nil {
		return false
	}
	return json.Valid([]byte(out))
}

// IsEnabled checks whether a platform service is enabled on the project.
func (c *Client) IsEnabled(ctx context.Context, projectID, service string) (bool, error) {
	out, err := c.runner.Output(ctx,
		"services", "list", "--enabled",
		"--project", projectID,
		"--filter", "config.name="+service,
		"--format", "value(config.name)")
	if err != nil {
		return false, fmt.Errorf("failed to check service %s: %w", service, err)
	}
	return out == service, nil
}

// Enable turns a platform service on. Enablement is synchronous in the
// provider model; no propagation wait is needed afterwards.
func (c *Client) Enable(ctx context.Context, projectID, service string) error {
	if _, err := c.runner.Output(ctx,
		"services", "enable", service, "--project", projectID); err != nil {
		return fmt.Errorf("failed to enable service %s: %w", service, err)
	}
	return nil
}

// DescribeServiceAccount checks whether the service account exists.
func (c *Client) DescribeServiceAccount(ctx context.Context, projectID, email string) (Existence, error) {
	_, err := c.runner.Output(ctx,
		"iam", "service-accounts", "describe", email,
		"--project", projectID,
		"--format", "value(email)")
	if err != nil {
		if IsNotFound(err) {
			return ExistenceAbsent, nil
		}
		return ExistenceUnknown, fmt.Errorf("failed to describe service account %s: %w", email, err)
	}
	return ExistencePresent, nil
}

// CreateServiceAccount creates a service account by short name.
func (c *Client) CreateServiceAccount(ctx context.Context, projectID, name, displayName string) error {
	if _, err := c.runner.Output(ctx,
		"iam", "service-accounts", "create", name,
		"--project", projectID,
		"--display-name", displayName); err != nil {
		return fmt.Errorf("failed to create service account %s: %w", name, err)
	}
	return nil
}

// GetPolicy fetches and parses the project IAM policy.
func (c *Client) GetPolicy(ctx context.Context, projectID string) (*Policy, error) {
	out, err := c.runner.Output(ctx,
		"projects", "get-iam-policy", projectID, "--format", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch iam policy for %s: %w", projectID, err)
	}
	return ParsePolicy([]byte(out))
}

// GetPolicyText fetches the raw policy dump for the degraded text scan.
func (c *Client) GetPolicyText(ctx context.Context, projectID string) (string, error) {
	out, err := c.runner.Output(ctx,
		"projects", "get-iam-policy", projectID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch iam policy for %s: %w", projectID, err)
	}
	return out, nil
}

// AddBinding grants a role to a member on the project. The updated policy
// gcloud prints is discarded; the next run re-reads state anyway.
func (c *Client) AddBinding(ctx context.Context, projectID, member, role string) error {
	if _, err := c.runner.Output(ctx,
		"projects", "add-iam-policy-binding", projectID,
		"--member", member,
		"--role", role,
		"--quiet"); err != nil {
		return fmt.Errorf("failed to bind %s to %s: %w", role, member, err)
	}
	return nil
}

// DescribeRepository checks whether the Artifact Registry repository exists.
func (c *Client) DescribeRepository(ctx context.Context, projectID, repository, location string) (Existence, error) {
	_, err := c.runner.Output(ctx,
		"artifacts", "repositories", "describe", repository,
		"--project", projectID,
		"--location", location,
		"--format", "value(name)")
	if err != nil {
		if IsNotFound(err) {
			return ExistenceAbsent, nil
		}
		return ExistenceUnknown, fmt.Errorf("failed to describe repository %s: %w", repository, err)
	}
	return ExistencePresent, nil
}

// CreateRepository creates a docker-format Artifact Registry repository.
func (c *Client) CreateRepository(ctx context.Context, projectID, repository, location string) error {
	if _, err := c.runner.Output(ctx,
		"artifacts", "repositories", "create", repository,
		"--project", projectID,
		"--location", location,
		"--repository-format", "docker",
		"--quiet"); err != nil {
		return fmt.Errorf("failed to create repository %s: %w", repository, err)
	}
	return nil
}

// DescribeImage checks whether an image is already pushed under the tag.
func (c *Client) DescribeImage(ctx context.Context, tag string) (Existence, error) {
	_, err := c.runner.Output(ctx,
		"artifacts", "docker", "images", "describe", tag,
		"--format", "value(image_summary.digest)")
	if err != nil {
		if IsNotFound(err) {
			return ExistenceAbsent, nil
		}
		return ExistenceUnknown, fmt.Errorf("failed to describe image %s: %w", tag, err)
	}
	return ExistencePresent, nil
}

// SubmitBuild runs a Cloud Build of the source directory tagged into the
// registry. Build output streams to the operator; the orchestrator treats
// the build itself as opaque.
func (c *Client) SubmitBuild(ctx context.Context, projectID, sourceDir, tag string) error {
	return c.runner.Run(ctx,
		"builds", "submit", sourceDir,
		"--project", projectID,
		"--tag", tag,
		"--quiet")
}

// DeployService deploys the image to Cloud Run.
func (c *Client) DeployService(ctx context.Context, opts DeployOpts) error {
	args := []string{
		"run", "deploy", opts.Service,
		"--project", opts.ProjectID,
		"--image", opts.Image,
		"--region", opts.Region,
		"--service-account", opts.ServiceAccountEmail,
		"--port", strconv.Itoa(opts.Port),
		"--quiet",
	}
	if opts.AllowUnauthenticated {
		args = append(args, "--allow-unauthenticated")
	}
	if len(opts.EnvVars) > 0 {
		args = append(args, "--set-env-vars", formatEnvVars(opts.EnvVars))
	}
	return c.runner.Run(ctx, args...)
}

// ServiceURL returns the externally reachable address of the deployed
// service.
func (c *Client) ServiceURL(ctx context.Context, projectID, service, region string) (string, error) {
	out, err := c.runner.Output(ctx,
		"run", "services", "describe", service,
		"--project", projectID,
		"--region", region,
		"--format", "value(status.url)")
	if err != nil {
		return "", fmt.Errorf("failed to read service url for %s: %w", service, err)
	}
	if out == "" {
		return "", fmt.Errorf("service %s has no reachable url yet", service)
	}
	return out, nil
}

// DescribeService checks whether the Cloud Run service exists.
func (c *Client) DescribeService(ctx context.Context, projectID, service, region string) (Existence, error) {
	_, err := c.runner.Output(ctx,
		"run", "services", "describe", service,
		"--project", projectID,
		"--region", region,
		"--format", "value(metadata.name)")
	if err != nil {
		if IsNotFound(err) {
			return ExistenceAbsent, nil
		}
		return ExistenceUnknown, fmt.Errorf("failed to describe service %s: %w", service, err)
	}
	return ExistencePresent, nil
}

// formatEnvVars renders env vars in gcloud's KEY=VALUE,KEY=VALUE form with
// deterministic ordering.
func formatEnvVars(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+vars[k])
	}
	return strings.Join(pairs, ",")
}
