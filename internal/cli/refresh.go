package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshProject string

var refreshCmd = &cobra.Command{
	Use:   "refresh <url>...",
	Short: "Re-download the content behind URL references",
	Long: `Refresh the local files backing references that were added from a URL. The
reference entry is left untouched; only the downloaded content is replaced.

Example:
  oasref refresh https://example.com/swagger/v1/swagger.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVarP(&refreshProject, "project", "p", "", "Project file to read (default: the single *.oasproj in the working directory)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	r, projectPath, err := buildReconciler(cmd, refreshProject)
	if err != nil {
		return err
	}

	for _, source := range args {
		if err := r.Refresh(projectPath, source); err != nil {
			return fmt.Errorf("refreshing %s: %w", source, err)
		}
	}
	return nil
}
