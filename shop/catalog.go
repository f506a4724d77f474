package shop

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/menu"
)

var (
	ItemHeaders  = []string{"itemname:", "ingredients:", "typeofitem:", "price:", "description?:"}
	StoreHeaders = []string{"StoreID:", "Address:", "City:", "State:", "Open?:", "Review Score:"}
)

// itemColumns maps the field names a manager may type onto Items columns.
var itemColumns = map[string]string{
	"name":        "itemName",
	"ingredients": "ingredients",
	"type":        "typeOfItem",
	"price":       "price",
	"description": "description",
}

// ItemFilter narrows ListItems. Zero value lists everything cheapest first.
type ItemFilter struct {
	MaxPrice   *float64
	Type       string
	Descending bool
}

// ListItems returns menu rows in ItemHeaders order, sorted by price.
func ListItems(e db.Executor, f ItemFilter) ([][]string, error) {
	var (
		where []string
		args  []any
	)

	if f.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *f.MaxPrice)
	}

	if f.Type != "" {
		where = append(where, "lower(trim(typeOfItem)) = lower(?)")
		args = append(args, strings.TrimSpace(f.Type))
	}

	stmt := `select itemName, ingredients, typeOfItem, price, description from Items`
	if len(where) > 0 {
		stmt += " where " + strings.Join(where, " and ")
	}

	if f.Descending {
		stmt += " order by price desc, itemName"
	} else {
		stmt += " order by price asc, itemName"
	}

	rows, err := e.ExecuteQuery(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list items: %w", err)
	}

	return rows, nil
}

// ViewMenu browses the menu until the user stops. Flipping the order applies to every
// following listing.
func (a *App) ViewMenu() error {
	descending := false

	list := func(f ItemFilter) error {
		f.Descending = descending

		rows, err := ListItems(a.db, f)
		if err != nil {
			return err
		}

		a.printTable(ItemHeaders, rows)

		return nil
	}

	a.session.Run([]menu.Choice{
		{Key: 1, Label: "View full Menu", Handler: a.handle(func() error {
			return list(ItemFilter{})
		})},
		{Key: 2, Label: "Filter Price", Handler: a.handle(func() error {
			price, err := a.askFloat("Enter price: ", "price")
			if err != nil {
				return err
			}

			return list(ItemFilter{MaxPrice: &price})
		})},
		{Key: 3, Label: "Filter type", Handler: a.handle(func() error {
			itemType, err := a.askNonEmpty("Enter item type: ", "item type")
			if err != nil {
				return err
			}

			return list(ItemFilter{Type: itemType})
		})},
		{Key: 4, Label: "Flip order", Handler: func() {
			descending = !descending
			if descending {
				a.out.WriteLine("Sorting by price, most expensive first.")
			} else {
				a.out.WriteLine("Sorting by price, cheapest first.")
			}
		}},
		{Key: 5, Label: "Stop viewing"},
	}, menu.DefaultPrompt, 5)

	return nil
}

// ViewStores lists every store by id.
func (a *App) ViewStores() error {
	rows, err := a.db.ExecuteQuery(
		`select storeID, address, city, state, isOpen, reviewScore from Store order by storeID`)
	if err != nil {
		return fmt.Errorf("could not list stores: %w", err)
	}

	a.printTable(StoreHeaders, rows)

	return nil
}

// UpdateMenu lets a manager create, remove or modify an item.
func (a *App) UpdateMenu() error {
	if err := a.requireManager(); err != nil {
		return err
	}

	return a.session.RunOnce([]menu.Choice{
		{Key: 1, Label: "Create new item", Handler: a.handle(a.createItem)},
		{Key: 2, Label: "Remove an item", Handler: a.handle(a.removeItem)},
		{Key: 3, Label: "Modify existing item", Handler: a.handle(a.modifyItem)},
	}, menu.DefaultPrompt)
}

func (a *App) createItem() error {
	name, err := a.askNonEmpty("Enter item name: ", "item name")
	if err != nil {
		return err
	}

	ingredients, err := a.askNonEmpty("Enter list of ingredients, separated by comma: ", "ingredients")
	if err != nil {
		return err
	}

	itemType, err := a.askNonEmpty("Enter item type: ", "item type")
	if err != nil {
		return err
	}

	price, err := a.askPrice("Enter item price: ")
	if err != nil {
		return err
	}

	description, err := a.ask("Enter item description: ")
	if err != nil {
		return err
	}

	_, err = a.db.ExecuteUpdate(
		`insert into Items(itemName, ingredients, typeOfItem, price, description) values(?, ?, ?, ?, ?)`,
		name, ingredients, itemType, price, strings.TrimSpace(description))
	if err != nil {
		return fmt.Errorf("could not create item %s: %w", name, err)
	}

	a.out.WriteLine("Item " + name + " created.")

	return nil
}

func (a *App) removeItem() error {
	name, err := a.askNonEmpty("Enter item name: ", "item name")
	if err != nil {
		return err
	}

	n, err := a.db.ExecuteUpdate(`delete from Items where itemName = ?`, name)
	if err != nil {
		return fmt.Errorf("could not remove item %s: %w", name, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: item %s", ErrNotFound, name)
	}

	a.out.WriteLine("Item " + name + " removed.")

	return nil
}

func (a *App) modifyItem() error {
	name, err := a.askNonEmpty("Enter item name: ", "item name")
	if err != nil {
		return err
	}

	field, err := a.ask("Enter field to change (name, ingredients, type, price, description): ")
	if err != nil {
		return err
	}

	column, ok := itemColumns[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}

	var value any

	if column == "price" {
		value, err = a.askPrice("Enter new value: ")
	} else {
		value, err = a.askNonEmpty("Enter new value: ", "new value")
	}

	if err != nil {
		return err
	}

	n, err := a.db.ExecuteUpdate(`update Items set `+column+` = ? where itemName = ?`, value, name)
	if err != nil {
		return fmt.Errorf("could not modify item %s: %w", name, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: item %s", ErrNotFound, name)
	}

	a.out.WriteLine("Item " + name + " updated.")

	return nil
}

func (a *App) askPrice(prompt string) (float64, error) {
	price, err := a.askFloat(prompt, "price")
	if err != nil {
		return 0, err
	}

	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return price, nil
}

// FormatPrice prints a price the way the order summary shows it.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
