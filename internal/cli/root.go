package cli

import (
	"fmt"
	"os"

	"github.com/oasref-labs/oasref/internal/config"
	"github.com/oasref-labs/oasref/internal/console"
	"github.com/oasref-labs/oasref/internal/fetch"
	"github.com/oasref-labs/oasref/internal/project"
	"github.com/oasref-labs/oasref/internal/reconcile"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "oasref",
	Short: "Manage OpenAPI service references in a project file",
	Long: `oasref records OpenAPI specification sources (local files, URLs, or nested
projects) as references in an XML project file, downloading remote documents
next to the project so code generators can consume them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// buildReconciler resolves the project file and wires a reconciler with its
// downloader and reporter. An empty projectFlag triggers discovery of the
// single project file in the working directory.
func buildReconciler(cmd *cobra.Command, projectFlag string) (*reconcile.Reconciler, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("getting current directory: %w", err)
	}

	projectPath := projectFlag
	if projectPath == "" {
		projectPath, err = project.Discover(cwd)
		if err != nil {
			return nil, "", err
		}
	}

	var fetchOpts []fetch.Option
	if timeout := config.Duration(config.KeyTimeout); timeout > 0 {
		fetchOpts = append(fetchOpts, fetch.WithTimeout(timeout))
	}

	r := reconcile.New(cwd, fetch.New(fetchOpts...), console.New(cmd.OutOrStdout()))
	return r, projectPath, nil
}
