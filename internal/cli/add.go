package cli

import (
	"fmt"

	"github.com/oasref-labs/oasref/internal/config"
	"github.com/oasref-labs/oasref/internal/reconcile"
	"github.com/spf13/cobra"
)

var (
	addProject    string
	addClassName  string
	addOutputFile string
	addOverwrite  bool
)

var addCmd = &cobra.Command{
	Use:   "add <source>...",
	Short: "Add OpenAPI references to the project",
	Long: `Add one or more OpenAPI references to the project file. A source may be a
local specification file, an absolute URL, or another project file. URL
sources are downloaded into the working directory before the reference is
recorded, and the origin URL is kept so the content can be refreshed later.
Adding a reference that already exists succeeds without creating a duplicate.

Example:
  oasref add specs/petstore.json
  oasref add https://example.com/swagger/v1/swagger.json --output-file petstore.json
  oasref add ../billing/billing.oasproj`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project file to modify (default: the single *.oasproj in the working directory)")
	addCmd.Flags().StringVarP(&addClassName, "class-name", "c", "", "Class name to record on the reference")
	addCmd.Flags().StringVarP(&addOutputFile, "output-file", "o", "", "File name for downloaded URL sources")
	addCmd.Flags().BoolVar(&addOverwrite, "overwrite", false, "Replace an existing output file whose content differs")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	r, projectPath, err := buildReconciler(cmd, addProject)
	if err != nil {
		return err
	}

	className := addClassName
	if className == "" {
		className = config.Get(config.KeyClassName)
	}

	for _, source := range args {
		opts := reconcile.AddOptions{
			ClassName:  className,
			OutputFile: addOutputFile,
			Overwrite:  addOverwrite,
		}
		if err := r.Add(projectPath, source, opts); err != nil {
			return fmt.Errorf("adding %s: %w", source, err)
		}
	}
	return nil
}
