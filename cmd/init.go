package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/demoseed/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a demoseed config file",
	Long:  `Write ` + config.FileName + ` with the default settings to the current directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if err := config.InitializeProject(force); err != nil {
			return err
		}

		color.Green("✅ Created %s", config.FileName)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  1. Set DATABASE_URL in .env (or the variable named by database.url_env)")
		fmt.Println("  2. Run 'demoseed apply --dry-run' to preview the statements")
		fmt.Println("  3. Run 'demoseed apply' to insert the demo rows")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}
