package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/demoseed/internal/config"
	"github.com/Lumos-Labs-HQ/demoseed/internal/database"
	"github.com/Lumos-Labs-HQ/demoseed/internal/logging"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════╗",
		"║                                                          ║",
		"║        🔧  D E M O S E E D  🔧                            ║",
		"║                                                          ║",
		"║        Garage demo data: services • parts • suppliers    ║",
		"║                                                          ║",
		"╚══════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                   ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "demoseed",
	Short: "Demo data for the garage management database",
	Long: `
demoseed prints, applies and checks the demo rows of the garage management
database: repair services, spare parts and suppliers.

Every demo row is tagged CreatedBy = 'DemoData' so it can be counted and
removed again without touching real data.

Database Support:
- MySQL (default)
- PostgreSQL
- SQLite`,
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "demoseed version %s\n", Version)
			return nil
		}

		if printScript, _ := cmd.Flags().GetBool("print"); printScript {
			return runPrint(cmd, "")
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			return cmd.Help()
		}
		return nil
	},
}

func Execute() error {
	defer func() { logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log database operations to stderr")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
	rootCmd.Flags().Bool("print", false, "Print the demo SQL script (same as 'demoseed print')")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("demoseed.config")
	}

	viper.SetEnvPrefix("demoseed")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// connect opens and pings the configured database. The caller closes it.
func connect(ctx context.Context, cfg *config.Config) (database.DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := database.NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Debug("connected", zap.String("provider", cfg.Database.Provider))
	return adapter, nil
}
