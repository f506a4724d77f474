package pizzastore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
	dbConfig db.Config
)

var pkgCtx = logging.PackageCtx("cmd")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pizzastore",
	Short: "Order pizza from the command line",
	Long: `Pizzastore is a menu driven client for the pizza store database.
Customers browse the menu and place orders, drivers and managers keep orders,
the menu and user accounts up to date.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pizzastore.toml)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&dbConfig.Driver, "driver", db.DriverSQLite, "Database driver: sqlite3, pgx or mysql")
	flags.StringVar(&dbConfig.DSN, "dsn", "", "Data source name, overrides the connection parts below")
	flags.StringVar(&dbConfig.DBName, "dbname", "", "Database name, or file path for sqlite3")
	flags.StringVar(&dbConfig.Host, "host", "", "Database host")
	flags.IntVar(&dbConfig.Port, "port", 0, "Database port")
	flags.StringVar(&dbConfig.User, "user", "", "Database user")
	flags.StringVar(&dbConfig.Password, "password", "", "Database password")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pizzastore" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".pizzastore")
	}

	viper.SetEnvPrefix("pizzastore")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}
}

// setup applies the config to the flags and installs the logger at the configured level.
func setup(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd.Flags(), viper.GetViper()); err != nil {
		return err
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, level)))
	slog.DebugContext(pkgCtx, "config loaded", "file", viper.ConfigFileUsed(), "driver", dbConfig.Driver)

	return nil
}

// bindFlags sets values to the flag variables from config, if they are set. Priority is
// still given to explicitly provided CLI flags.
func bindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	var err error

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || err != nil {
			return
		}

		// Viper compares case-insensitively, so "log-level" matches logLevel and loglevel.
		for _, name := range []string{f.Name, strings.ReplaceAll(f.Name, "-", "")} {
			if !v.IsSet(name) {
				continue
			}

			if setErr := flags.Set(f.Name, fmt.Sprintf("%v", v.Get(name))); setErr != nil {
				err = fmt.Errorf("could not apply config value to %s: %w", f.Name, setErr)
			}

			return
		}
	})

	return err
}

// openStorage connects using the flags and makes sure the schema exists.
func openStorage(cfg db.Config) (*db.SQLStorage, error) {
	dsn, err := db.BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	storage, err := db.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.InitStorage(storage, cfg.Driver); err != nil {
		_ = storage.Close()

		return nil, err
	}

	return storage, nil
}
