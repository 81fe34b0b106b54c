// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/docsearch/deployctl/cmd/deployctl/handlers"
	"github.com/docsearch/deployctl/internal/config"
)

// Root returns the root command for the deployctl CLI. The root command
// itself runs the full deployment; doctor and version are subcommands.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect deployctl.yaml)
//	--project: Google Cloud project ID (or PROJECT_ID env)
//	--data-store: Discovery Engine data store ID (or DATA_STORE_ID env)
//	--skip-confirmation, -y: Skip the confirmation prompt
//
// Environment variables mirror every flag; flags win.
func Root() *cobra.Command {
	var flags config.Flags
	var verbose bool

	cmd := &cobra.Command{
		Use:   "deployctl",
		Short: "Deploy the document-search application to Cloud Run",
		Long: `Deploy the document-search application to Google Cloud Run.

One run performs, in order: platform service enablement, service account
creation, Discovery Engine role grant, Artifact Registry repository
creation, a Cloud Build image build and the Cloud Run deploy. Every step
checks existing state first, so re-running against a partially
provisioned project only performs what is still missing.

Examples:
  # Deploy using PROJECT_ID and DATA_STORE_ID from the environment
  deployctl

  # Deploy a specific project without prompting
  deployctl --project my-project --data-store my-store -y

  # Deploy using a config file
  deployctl -c production.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), flags, verbose)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to configuration file (default: deployctl.yaml)")
	cmd.Flags().StringVar(&flags.ProjectID, "project", "", "Google Cloud project ID")
	cmd.Flags().StringVar(&flags.DataStoreID, "data-store", "", "Discovery Engine data store ID")
	cmd.Flags().StringVar(&flags.Region, "region", "", "Cloud Run / Artifact Registry region")
	cmd.Flags().StringVar(&flags.Location, "location", "", "Discovery Engine location (global, us or eu)")
	cmd.Flags().StringVar(&flags.AppName, "app", "", "Application and Cloud Run service name")
	cmd.Flags().StringVar(&flags.ServiceAccountName, "service-account", "", "Runtime service account name")
	cmd.Flags().StringVar(&flags.RepositoryName, "repository", "", "Artifact Registry repository name")
	cmd.Flags().StringVar(&flags.SourceDir, "source", "", "Application source directory")
	cmd.Flags().BoolVarP(&flags.SkipConfirmation, "skip-confirmation", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
