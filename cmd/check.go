package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/demoseed/internal/scriptrun"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.sql>",
	Short: "Run a demo SQL file and stop at the first error",
	Long: `
Execute a demo data script against the configured database. USE, SET and
SELECT statements run best-effort; INSERT, UPDATE and DELETE statements are
counted and must succeed. Execution stops at the first failing statement and
prints a suggested fix when the error is recognised.

Examples:
  demoseed print > demo_seed.sql && demoseed check demo_seed.sql
  demoseed check db/demo/fixtures.sql --timeout 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("timeout") {
			cfg.Check.StatementTimeout, _ = cmd.Flags().GetInt("timeout")
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("🔍 Checking %s", args[0])

		runner := scriptrun.NewRunner(adapter, scriptrun.Options{
			StatementTimeout: cfg.StatementTimeout(),
			ProgressEvery:    cfg.Check.ProgressEvery,
		}, logger)

		result, err := runner.RunFile(ctx, args[0])
		if err != nil {
			return err
		}
		runner.PrintSummary(result)

		if result.Errors > 0 {
			return fmt.Errorf("script stopped at statement #%d", result.Failure.Index)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Int("timeout", 0, "Per-statement timeout in seconds (overrides check.statement_timeout)")
}
