package pizzastore

import (
	"fmt"
	"io"
	"os"

	"github.com/dasdy/pizzastore/db"
	"github.com/spf13/cobra"
)

var seedFile string

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, stores and items from a YAML file",
	Long: `Insert the users, stores and items listed in a YAML seed file.
Everything is inserted in one transaction, so a duplicate row leaves the database untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("could not open seed file: %w", err)
		}
		defer f.Close()

		storage, err := openStorage(dbConfig)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer storage.Close()

		n, err := seed(storage, f, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nSeeded %d rows.\n", n)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(
		&seedFile,
		"file",
		"f",
		"./seed.yaml",
		"Path to the seed file")
}

func seed(database db.Database, r io.Reader, progress io.Writer) (int, error) {
	s, err := db.LoadSeed(r)
	if err != nil {
		return 0, err
	}

	if err := db.ApplySeed(database, s, progress); err != nil {
		return 0, err
	}

	return s.Len(), nil
}
