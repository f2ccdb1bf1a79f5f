package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/demoseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many demo rows are in the database",
	Long: `
Count the rows tagged with the configured CreatedBy value in each demo table.
Tables missing from the database are listed as such.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
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

		report, err := s.Status(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("\nDemo data status (CreatedBy = '%s'):\n", cfg.Seed.CreatedBy)
		fmt.Println("═══════════════════════════════════════")
		for _, table := range report.Tables {
			switch {
			case !table.Exists:
				color.Red("  ❌ %-12s table not found", table.Name)
			case table.Rows == 0:
				color.Yellow("  ⏳ %-12s no demo rows", table.Name)
			default:
				color.Green("  ✅ %-12s %d demo rows", table.Name, table.Rows)
			}
		}
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("Total: %d\n", report.Total())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
