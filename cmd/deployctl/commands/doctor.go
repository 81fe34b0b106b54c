package commands

import (
	"github.com/spf13/cobra"

	"github.com/docsearch/deployctl/cmd/deployctl/handlers"
	"github.com/docsearch/deployctl/internal/config"
)

// Doctor returns the command for inspecting deployment state.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect deployctl.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var flags config.Flags
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Inspect deployment state without changing anything",
		Long: `Inspect the current deployment state of the project.

Checks local tooling and authentication, then probes every resource the
deployment needs: platform services, the runtime service account, its
role binding, the Artifact Registry repository and the Cloud Run
service. Nothing is created or modified.

Examples:
  # Inspect the project from the environment
  deployctl doctor

  # Get state in JSON format
  deployctl doctor --json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), flags, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to configuration file (default: deployctl.yaml)")
	cmd.Flags().StringVar(&flags.ProjectID, "project", "", "Google Cloud project ID")
	cmd.Flags().StringVar(&flags.DataStoreID, "data-store", "", "Discovery Engine data store ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
