// Package provisioning runs the ordered, idempotent steps that bring a
// Google Cloud project from any partially provisioned state to the state
// the deployment needs: enabled services, a runtime service account with
// its role binding, an Artifact Registry repository, and a built
// application image.
//
// Every step re-derives remote state with a describe call before acting
// and reports one of three outcomes: Created, AlreadyPresent or Failed.
// The sequencer stops at the first failure; a later re-run picks up where
// the previous one left off because completed steps resolve to
// AlreadyPresent.
package provisioning
