package pizzastore

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables",
	Long:  `Create every table the store needs. Existing tables and their rows are kept.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		storage, err := openStorage(dbConfig)
		if err != nil {
			return fmt.Errorf("could not initialize database: %w", err)
		}
		defer storage.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Schema ready.")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
