package shop

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/model"
)

const recentOrderCount = 5

var (
	OrderHeaders     = []string{"OrderID:", "placed by:", "storeID:", "totalPrice:", "orderTimestamp:", "orderStatus:"}
	OrderItemHeaders = []string{"itemName:", "quantity:"}
)

const orderColumns = `orderID, login, storeID, totalPrice, orderTimestamp, orderStatus`

// PlaceOrder collects item lines for one store and stores the order. The order id is
// picked inside the same transaction as the inserts; two clients racing for the same id
// make one insert fail on the primary key instead of sharing an order.
func (a *App) PlaceOrder() error {
	storeID, err := a.askInt("Enter store ID: ", "store ID")
	if err != nil {
		return err
	}

	if _, err := db.QueryValue(a.db, `select storeID from Store where storeID = ?`, storeID); err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: store %d", ErrNotFound, storeID)
		}

		return fmt.Errorf("could not look up store: %w", err)
	}

	order := model.Order{Login: a.state.Login, StoreID: storeID, Status: model.OrderStatusIncomplete}

	for {
		name, err := a.ask("Enter item name or enter 1 to stop ordering: ")
		if err != nil {
			return err
		}

		name = strings.TrimSpace(name)
		if name == "1" {
			break
		}

		quantity, err := a.askInt("Enter quantity: ", "quantity")
		if err != nil {
			return err
		}

		if name == "" || quantity <= 0 {
			return fmt.Errorf("%w: item name must be given and quantity must be positive", ErrInvalidInput)
		}

		order.Lines = addLine(order.Lines, name, quantity)
	}

	if len(order.Lines) == 0 {
		a.out.WriteLine("No items ordered.")

		return nil
	}

	err = a.db.WithTx(func(e db.Executor) error {
		priced := make([]model.OrderLine, 0, len(order.Lines))

		for _, l := range order.Lines {
			price, err := db.QueryValue(e, `select price from Items where itemName = ?`, l.ItemName)
			if isNoRows(err) {
				a.out.WriteLine(l.ItemName + " not found, skipping item.")

				continue
			}

			if err != nil {
				return fmt.Errorf("could not price %s: %w", l.ItemName, err)
			}

			l.Price, err = strconv.ParseFloat(price, 64)
			if err != nil {
				return fmt.Errorf("bad price %q for %s: %w", price, l.ItemName, err)
			}

			priced = append(priced, l)
		}

		if len(priced) == 0 {
			return fmt.Errorf("%w: none of the items are on the menu", ErrInvalidInput)
		}

		order.Lines = priced
		order.TotalPrice = order.Total()
		order.Timestamp = time.Now().UTC()

		next, err := db.QueryValue(e, `select coalesce(max(orderID), 0) + 1 from FoodOrder`)
		if err != nil {
			return fmt.Errorf("could not pick order id: %w", err)
		}

		order.ID, err = strconv.Atoi(next)
		if err != nil {
			return fmt.Errorf("bad order id %q: %w", next, err)
		}

		_, err = e.ExecuteUpdate(
			`insert into FoodOrder(`+orderColumns+`) values(?, ?, ?, ?, ?, ?)`,
			order.ID, order.Login, order.StoreID, order.TotalPrice, order.Timestamp, order.Status)
		if err != nil {
			return fmt.Errorf("could not store order: %w", err)
		}

		for _, l := range order.Lines {
			_, err := e.ExecuteUpdate(
				`insert into ItemsInOrder(orderID, itemName, quantity) values(?, ?, ?)`,
				order.ID, l.ItemName, l.Quantity)
			if err != nil {
				return fmt.Errorf("could not store item %s: %w", l.ItemName, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(pkgCtx, "order placed", "order", order.ID, "login", order.Login, "total", order.TotalPrice)
	a.out.WriteLine("Order placed successfully! Your Order ID is: " + strconv.Itoa(order.ID))
	a.out.WriteLine("Total price: " + FormatPrice(order.TotalPrice))

	return nil
}

// addLine merges repeated items into one line.
func addLine(lines []model.OrderLine, name string, quantity int) []model.OrderLine {
	for i := range lines {
		if lines[i].ItemName == name {
			lines[i].Quantity += quantity

			return lines
		}
	}

	return append(lines, model.OrderLine{ItemName: name, Quantity: quantity})
}

// ViewAllOrders lists orders newest first. Staff see every order.
func (a *App) ViewAllOrders() error {
	return a.listOrders(0)
}

// ViewRecentOrders is ViewAllOrders limited to the latest five.
func (a *App) ViewRecentOrders() error {
	return a.listOrders(recentOrderCount)
}

func (a *App) listOrders(limit int) error {
	role, err := a.currentRole()
	if err != nil {
		return err
	}

	stmt := `select ` + orderColumns + ` from FoodOrder`
	args := []any{}

	if !role.IsStaff() {
		stmt += ` where login = ?`
		args = append(args, a.state.Login)
	}

	stmt += ` order by orderTimestamp desc, orderID desc`

	if limit > 0 {
		stmt += ` limit ` + strconv.Itoa(limit)
	}

	rows, err := a.db.ExecuteQuery(stmt, args...)
	if err != nil {
		return fmt.Errorf("could not list orders: %w", err)
	}

	a.printTable(OrderHeaders, rows)

	return nil
}

// ViewOrderInfo shows one order and its items. Customers may only look at their own.
func (a *App) ViewOrderInfo() error {
	id, err := a.askInt("Enter Order ID: ", "order ID")
	if err != nil {
		return err
	}

	role, err := a.currentRole()
	if err != nil {
		return err
	}

	rows, err := a.db.ExecuteQuery(`select `+orderColumns+` from FoodOrder where orderID = ?`, id)
	if err != nil {
		return fmt.Errorf("could not load order: %w", err)
	}

	if len(rows) == 0 {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}

	if !role.IsStaff() && rows[0][1] != a.state.Login {
		return fmt.Errorf("%w: please only look up your own orders", ErrNotPermitted)
	}

	items, err := a.db.ExecuteQuery(
		`select itemName, quantity from ItemsInOrder where orderID = ? order by itemName`, id)
	if err != nil {
		return fmt.Errorf("could not load order items: %w", err)
	}

	a.printTable(OrderHeaders, rows)
	a.out.WriteLine("")
	a.printTable(OrderItemHeaders, items)

	return nil
}

// UpdateOrderStatus lets drivers and managers set the status of an order.
func (a *App) UpdateOrderStatus() error {
	if err := a.requireStaff(); err != nil {
		return err
	}

	id, err := a.askInt("Enter Order ID: ", "order ID")
	if err != nil {
		return err
	}

	status, err := a.askNonEmpty("Enter new Order Status:", "order status")
	if err != nil {
		return err
	}

	n, err := a.db.ExecuteUpdate(`update FoodOrder set orderStatus = ? where orderID = ?`, status, id)
	if err != nil {
		return fmt.Errorf("could not update order: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}

	a.out.WriteLine(fmt.Sprintf("Order %d status set to %s.", id, status))

	return nil
}
