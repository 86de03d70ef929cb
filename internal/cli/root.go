package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphctl/internal/config"
	"github.com/custodia-labs/graphctl/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Persistent flags.
	verbose         bool
	settingsPath    string
	credentialsPath string
	outputFormat    string

	// settings is resolved before any command runs.
	settings = config.DefaultSettings()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "graphctl",
	Short: "Manage Microsoft Entra ID directory users",
	Long: `Graphctl is a thin command-line client for the Microsoft Graph directory API.

It authenticates as an application (client-credentials grant) and can search,
create, and delete directory users. Credentials are read from a local JSON
file; nothing is cached beyond a single token per invocation.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the graphctl version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "settings file (default ~/.graphctl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", "", "credentials file (default ~/.graphctl/auth.json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: json or table")

	// Resolve verbosity and settings before any command executes.
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		loaded, err := config.LoadSettings(settingsPath)
		if err != nil {
			return err
		}
		settings = loaded

		if outputFormat == "" {
			outputFormat = settings.Output
		}
		if outputFormat != config.OutputJSON && outputFormat != config.OutputTable {
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
