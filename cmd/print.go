package cmd

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the demo SQL script",
	Long: `
Print the INSERT statements for the demo services, parts and suppliers.
The output is always the same: no database connection, config file or
environment variable is read. Only --out redirects it.

Examples:
  demoseed print
  demoseed print > demo_seed.sql
  demoseed print --out demo_seed.sql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return runPrint(cmd, out)
	},
}

func runPrint(cmd *cobra.Command, out string) error {
	if out == "" {
		return demodata.WriteScript(cmd.OutOrStdout())
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}

	if err := demodata.WriteScript(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return file.Close()
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().StringP("out", "o", "", "Write the script to a file instead of stdout")
}
