package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "ServiceAccountEmail",
			got:      ServiceAccountEmail("docsearch-sa", "p1"),
			expected: "docsearch-sa@p1.iam.gserviceaccount.com",
		},
		{
			name:     "ServiceAccountMember",
			got:      ServiceAccountMember("docsearch-sa", "p1"),
			expected: "serviceAccount:docsearch-sa@p1.iam.gserviceaccount.com",
		},
		{
			name:     "RepositoryHost",
			got:      RepositoryHost("us-central1"),
			expected: "us-central1-docker.pkg.dev",
		},
		{
			name:     "RepositoryPath",
			got:      RepositoryPath("us-central1", "p1", "docsearch-repo"),
			expected: "us-central1-docker.pkg.dev/p1/docsearch-repo",
		},
		{
			name:     "ImageTag",
			got:      ImageTag("us-central1", "p1", "docsearch-repo", "docsearch"),
			expected: "us-central1-docker.pkg.dev/p1/docsearch-repo/docsearch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}
