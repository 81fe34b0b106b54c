package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsearch/deployctl/internal/config"
	"github.com/docsearch/deployctl/internal/platform/gcloud"
	"github.com/docsearch/deployctl/internal/platform/gcloud/fakes"
)

func testConfig() *config.Config {
	return &config.Config{
		ProjectID:          "p1",
		DataStoreID:        "store-1",
		Region:             "us-central1",
		Location:           "global",
		AppName:            "docsearch",
		ServiceAccountName: "docsearch-sa",
		RepositoryName:     "docsearch-repo",
		SourceDir:          ".",
	}
}

func TestRun(t *testing.T) {
	fake := fakes.New()

	url, err := Run(context.Background(), testConfig(), fake)
	require.NoError(t, err)
	assert.Equal(t, "https://docsearch-fake.a.run.app", url)
	assert.Equal(t, 1, fake.CallCount("DeployService"))
}

func TestRun_DeployFailure(t *testing.T) {
	fake := fakes.New()
	fake.Fail["DeployService"] = &gcloud.CommandError{
		Args:   []string{"run", "deploy"},
		Stderr: "revision failed to become ready",
		Err:    errors.New("exit status 1"),
	}

	_, err := Run(context.Background(), testConfig(), fake)
	require.Error(t, err)

	var deployErr *DeployError
	require.ErrorAs(t, err, &deployErr)
	assert.Equal(t, "docsearch", deployErr.Service)
	assert.Equal(t, "revision failed to become ready", deployErr.Diagnostic)
}

func TestRun_URLFailure(t *testing.T) {
	fake := fakes.New()
	fake.Fail["ServiceURL"] = errors.New("no url yet")

	_, err := Run(context.Background(), testConfig(), fake)
	require.Error(t, err)

	var deployErr *DeployError
	require.ErrorAs(t, err, &deployErr)
}

func TestRuntimeEnv(t *testing.T) {
	env := RuntimeEnv(testConfig())
	assert.Equal(t, map[string]string{
		"PROJECT_ID":    "p1",
		"LOCATION":      "global",
		"DATA_STORE_ID": "store-1",
	}, env)
}
