package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeProject string

var removeCmd = &cobra.Command{
	Use:   "remove <source>...",
	Short: "Remove OpenAPI references from the project",
	Long: `Remove one or more OpenAPI references from the project file, matching the
source exactly as it was recorded. The backing local file of a specification
reference is deleted as well. Removing a reference that does not exist is
not an error.

Example:
  oasref remove petstore.json
  oasref remove ../billing/billing.oasproj`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().StringVarP(&removeProject, "project", "p", "", "Project file to modify (default: the single *.oasproj in the working directory)")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	r, projectPath, err := buildReconciler(cmd, removeProject)
	if err != nil {
		return err
	}

	for _, source := range args {
		if err := r.Remove(projectPath, source); err != nil {
			return fmt.Errorf("removing %s: %w", source, err)
		}
	}
	return nil
}
