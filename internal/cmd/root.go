package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/config"
	"github.com/willfong/mockbank/internal/logging"
	"github.com/willfong/mockbank/internal/ui"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
	noColor bool

	// set by initConfig before any command runs
	appCfg *config.Config
	logger = zap.NewNop()
)

// flagKeys maps command-line flags onto config keys. Any command that
// defines one of these flags has it bound before the config is loaded.
var flagKeys = map[string]string{
	"db":         "ledger.db_path",
	"save":       "ledger.save_on_exit",
	"verbose":    "verbose",
	"no-color":   "no_color",
	"dsn":        "database.dsn",
	"driver":     "database.driver",
	"addr":       "server.addr",
	"seed":       "simulate.seed",
	"workers":    "simulate.workers",
	"operations": "simulate.operations",
	"think-time": "simulate.think_time",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockbank",
	Short: "Mock banking ledger with an agent tool surface",
	Long: `An in-memory banking ledger for exercising banking agents.

Customers, accounts, transactions, loans and credit cards live in memory,
seeded from an embedded fixture or a snapshot file (--db). Every query and
money movement is exposed as a named tool with a JSON schema, callable from
the command line or over HTTP.

Settings come from flags, MOCKBANK_* environment variables and an optional
config file (--config).

Example usage:
  mockbank stats
  mockbank tool get_account_info --args '{"account_id":"account_2001"}'
  mockbank tool process_deposit --db bank.json --save --args '{"account_id":"account_2001","amount":200}'
  mockbank serve --addr 127.0.0.1:8080
  mockbank simulate --workers 16 --operations 1000`,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = logger.Sync() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "ledger snapshot file (.json, .yaml); empty uses the embedded seed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	// Set version template
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig binds the running command's flags, reads the config file and
// environment, and builds the logger.
func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	config.SetDefaults(v)

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, cfg.Verbose)
	if err != nil {
		return err
	}

	appCfg = cfg
	logger = log
	logger.Debug("config loaded",
		zap.String("db_path", cfg.Ledger.DBPath),
		zap.String("config_file", v.ConfigFileUsed()))
	return nil
}

// newUI returns a terminal UI for cmd's output. Output that is not the
// process's stdout is always plain.
func newUI(cmd *cobra.Command) *ui.UI {
	out := cmd.OutOrStdout()
	if out != os.Stdout {
		return ui.NewPlain(out)
	}
	u := ui.New()
	u.SetNoColor(appCfg != nil && appCfg.NoColor)
	return u
}
