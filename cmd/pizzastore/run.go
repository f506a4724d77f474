package pizzastore

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dasdy/pizzastore/console"
	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/shop"
	"github.com/spf13/cobra"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run [dbname [port [user]]]",
	Short: "Start an interactive session",
	Long: `Connect to the database and show the main menu on the terminal.
The positional arguments override the dbname, port and user flags.`,
	Args: cobra.MaximumNArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := applyArgs(&dbConfig, args); err != nil {
			return err
		}

		storage, err := openStorage(dbConfig)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}

		app := shop.New(storage, console.NewInput(os.Stdin), console.NewOutput(os.Stdout))
		runErr := app.Run()

		fmt.Print("Disconnecting from database...")

		if err := storage.Close(); err != nil {
			fmt.Println()

			return fmt.Errorf("could not close database: %w", err)
		}

		fmt.Println("Done")
		fmt.Println()
		fmt.Println("Bye !")

		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// applyArgs copies the positional dbname, port and user into cfg.
func applyArgs(cfg *db.Config, args []string) error {
	if len(args) > 0 {
		cfg.DBName = args[0]
	}

	if len(args) > 1 {
		port, err := strconv.Atoi(args[1])
		if err != nil || port <= 0 {
			return fmt.Errorf("port must be a positive number, got %q", args[1])
		}

		cfg.Port = port
	}

	if len(args) > 2 {
		cfg.User = args[2]
	}

	return nil
}
