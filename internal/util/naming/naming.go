// Package naming provides consistent naming functions for Google Cloud
// resources.
//
// All derived identifiers (service account email, IAM member string,
// Artifact Registry paths, image tags) are built here so the format lives
// in exactly one place and the provisioning steps never concatenate
// resource strings ad hoc.
package naming

import "fmt"

// ServiceAccountEmail returns the full email for a service account created
// under the given project.
func ServiceAccountEmail(account, projectID string) string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", account, projectID)
}

// ServiceAccountMember returns the IAM member string for a service account,
// as it appears in policy bindings.
func ServiceAccountMember(account, projectID string) string {
	return "serviceAccount:" + ServiceAccountEmail(account, projectID)
}

// RepositoryHost returns the Artifact Registry docker host for a region.
func RepositoryHost(region string) string {
	return region + "-docker.pkg.dev"
}

// RepositoryPath returns the full Artifact Registry repository path.
func RepositoryPath(region, projectID, repository string) string {
	return fmt.Sprintf("%s/%s/%s", RepositoryHost(region), projectID, repository)
}

// ImageTag returns the fully qualified image tag for the application image
// stored under the given repository.
func ImageTag(region, projectID, repository, app string) string {
	return fmt.Sprintf("%s/%s", RepositoryPath(region, projectID, repository), app)
}
