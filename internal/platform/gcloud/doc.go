// Package gcloud wraps the Google Cloud CLI.
//
// Every provider interaction — service enablement, identity management,
// IAM policy inspection, Artifact Registry, Cloud Build, Cloud Run — is
// issued as a gcloud invocation through a CommandRunner, with results read
// from its structured (--format) output. The package exposes one narrow
// interface per provider subsystem so provisioning steps depend only on
// the calls they make, and the fakes subpackage can simulate any remote
// state.
package gcloud
