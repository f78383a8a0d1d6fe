package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"foodwaste/internal/backend"
	"foodwaste/internal/cli"
	"foodwaste/internal/config"
	applog "foodwaste/internal/log"
)

var (
	cfg    *config.Config
	logger *applog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wastectl",
	Short: "Administers the food waste tracker store",
	Long: `wastectl inspects and maintains the store the food waste tracker uses:
print statistics, list entries, seed demo data, export snapshots and run
schema migrations. Settings come from the environment (and .env), with
flags taking precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.LoadEnvFile()
		logger = cli.SetupLogger(applog.ComponentCLI, os.Stderr)

		cfg = config.Load()
		flags := cmd.Flags()
		if flags.Changed("backend") {
			cfg.DataBackend, _ = flags.GetString("backend")
		}
		if flags.Changed("sqlite-path") {
			cfg.SQLiteDBPath, _ = flags.GetString("sqlite-path")
		}
		if flags.Changed("database-url") {
			cfg.DatabaseURL, _ = flags.GetString("database-url")
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "store backend: memory, sqlite or postgres (default $DATA_BACKEND)")
	rootCmd.PersistentFlags().String("sqlite-path", "", "SQLite database path (default $SQLITE_DB_PATH)")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection URL (default $DATABASE_URL)")
}

// openBackend opens the configured store. Change events are published only
// when publish is set.
func openBackend(ctx context.Context, publish bool) (*backend.Result, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !publish {
		bcfg.AMQPURL = ""
	}
	return backend.NewFactory(logger).CreateBackend(ctx, bcfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
