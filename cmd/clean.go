package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Lumos-Labs-HQ/demoseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the demo rows from the database",
	Long: `
Delete every row tagged with the configured CreatedBy value (DemoData by
default) from the demo tables. Suppliers are removed first, services last.

Examples:
  demoseed clean
  demoseed clean --tables parts
  demoseed clean --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tables, _ := cmd.Flags().GetStringSlice("tables")
		noTx, _ := cmd.Flags().GetBool("no-transaction")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			color.Yellow("⚠️  This removes all rows with CreatedBy = '%s'.", cfg.Seed.CreatedBy)
			fmt.Print("Continue? (y/N): ")

			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("❌ Clean cancelled")
				return nil
			}
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		s := seeder.New(adapter,
			seeder.WithLogger(logger),
			seeder.WithCreatedBy(cfg.Seed.CreatedBy))

		report, err := s.Clean(ctx, seeder.CleanOptions{
			Tables:        tables,
			NoTransaction: noTx || !cfg.Seed.Transaction,
		})
		if err != nil {
			return err
		}

		color.Green("\n✅ Removed %d demo rows", report.Total())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringSlice("tables", nil, "Clean only these tables (comma separated)")
	cleanCmd.Flags().Bool("no-transaction", false, "Run without a transaction")
	cleanCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
