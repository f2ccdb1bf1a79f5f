package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/demoseed/internal/database"
	"github.com/Lumos-Labs-HQ/demoseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Insert the demo rows into the database",
	Long: `
Insert the demo services, parts and suppliers into the configured database.
All tables are seeded in one transaction unless --no-transaction is given.

Examples:
  demoseed apply
  demoseed apply --tables services,parts
  demoseed apply --dry-run
  demoseed apply --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tables, _ := cmd.Flags().GetStringSlice("tables")
		noTx, _ := cmd.Flags().GetBool("no-transaction")
		force, _ := cmd.Flags().GetBool("force")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		// dry runs only need the dialect, not a connection
		if dryRun {
			s := seeder.New(database.NewAdapter(cfg.Database.Provider), seeder.WithCreatedBy(cfg.Seed.CreatedBy))
			statements, err := s.Render(tables)
			if err != nil {
				return err
			}
			color.Yellow("-- dry run for %s, nothing was executed", cfg.Database.Provider)
			for _, stmt := range statements {
				fmt.Fprintln(cmd.OutOrStdout(), stmt)
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
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

		report, err := s.Apply(ctx, seeder.ApplyOptions{
			Tables:        tables,
			NoTransaction: noTx || !cfg.Seed.Transaction,
			Force:         force,
		})
		if err != nil {
			return err
		}

		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d table(s) could not be seeded", len(failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringSlice("tables", nil, "Seed only these tables (comma separated)")
	applyCmd.Flags().Bool("no-transaction", false, "Run without a transaction")
	applyCmd.Flags().BoolP("force", "f", false, "Skip tables that fail instead of aborting")
	applyCmd.Flags().Bool("dry-run", false, "Print the statements for the configured database without executing them")
}
