package pizzastore

import (
	"fmt"
	"io"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/shop"
	"github.com/dasdy/pizzastore/table"
	"github.com/spf13/cobra"
)

var (
	itemType   string
	maxPrice   float64
	descending bool
)

// menuCmd represents the menu command.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu",
	Long:  `Print the items on the menu sorted by price, without logging in.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		storage, err := openStorage(dbConfig)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer storage.Close()

		f := shop.ItemFilter{Type: itemType, Descending: descending}
		if cmd.Flags().Changed("max-price") {
			f.MaxPrice = &maxPrice
		}

		return printMenu(cmd.OutOrStdout(), storage, f)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)

	menuCmd.Flags().StringVar(&itemType, "type", "", "Only show items of this type")
	menuCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Only show items up to this price")
	menuCmd.Flags().BoolVar(&descending, "desc", false, "Most expensive items first")
}

func printMenu(w io.Writer, e db.Executor, f shop.ItemFilter) error {
	rows, err := shop.ListItems(e, f)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, table.Render(shop.ItemHeaders, rows))

	return err
}
