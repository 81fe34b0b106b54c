package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsearch/deployctl/internal/provisioning"
)

func TestReport_Success(t *testing.T) {
	var out bytes.Buffer
	Report{
		Results: []provisioning.StepResult{
			{Step: "enable-services", Outcome: provisioning.OutcomeAlreadyPresent},
			{Step: "create-service-account", Outcome: provisioning.OutcomeCreated},
			{Step: "grant-role", Outcome: provisioning.OutcomeCreated},
			{Step: "create-repository", Outcome: provisioning.OutcomeCreated},
			{Step: "build", Outcome: provisioning.OutcomeCreated},
		},
		ServiceURL: "https://docsearch-abc-uc.a.run.app",
	}.Render(&out)

	got := out.String()
	assert.Contains(t, got, "Deployment complete")
	assert.Contains(t, got, "https://docsearch-abc-uc.a.run.app")
	assert.Contains(t, got, "enable-services")
	assert.Contains(t, got, "already present")
	assert.NotContains(t, got, "failed")
}

func TestReport_Failure(t *testing.T) {
	var out bytes.Buffer
	Report{
		Results: []provisioning.StepResult{
			{Step: "enable-services", Outcome: provisioning.OutcomeCreated},
			{Step: "create-service-account", Outcome: provisioning.OutcomeFailed, Err: errors.New("boom")},
		},
		Err: errors.New("failed to create service account: boom\ndetails follow"),
	}.Render(&out)

	got := out.String()
	assert.Contains(t, got, "Deployment failed")
	assert.Contains(t, got, "failed to create service account: boom")
	assert.NotContains(t, got, "details follow")
	assert.NotContains(t, got, "Deployment complete")
}
