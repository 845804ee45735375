package cli

import (
	"fmt"
	"strings"

	"github.com/oasref-labs/oasref/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write oasref settings stored at ~/.oasref/config.yaml.

Recognized keys:
  class-name   default class name recorded on added references
  timeout      download timeout, e.g. "45s"`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print configuration values",
	Long:  `Print the value of one recognized key, or all recognized keys when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			if err := config.ValidateKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(out, config.Get(args[0]))
			return nil
		}

		var lines []string
		for _, key := range config.KnownKeys() {
			lines = append(lines, fmt.Sprintf("%s = %s", key, config.Get(key)))
		}
		fmt.Fprintln(out, strings.Join(lines, "\n"))
		return nil
	},
}
