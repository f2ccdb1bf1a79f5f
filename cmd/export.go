package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/demoseed/internal/demodata"
	"github.com/Lumos-Labs-HQ/demoseed/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the demo rows as fixtures",
	Long: `
Write the demo services, parts and suppliers to export_path (db/demo by
default). Supported formats: ` + strings.Join(export.Formats, ", ") + `

Examples:
  demoseed export
  demoseed export --format yaml
  demoseed export --format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")

		exportPath, err := export.PerformExport(context.Background(), demodata.Datasets(), cfg.ExportPath, format, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("✅ Export completed: %s\n", exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("format", "json", "Export format ("+strings.Join(export.Formats, ", ")+")")
}
