package shop

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/menu"
	"github.com/dasdy/pizzastore/model"
)

var profileHeaders = []string{"login:", "password:", "role:", "favoriteitems:", "phonenum:"}

// CreateUser registers a new customer account.
func (a *App) CreateUser() error {
	login, err := a.askNonEmpty("Enter login: ", "login")
	if err != nil {
		return err
	}

	password, err := a.askSecret("Enter Password: ")
	if err != nil {
		return err
	}

	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	phone, err := a.askPhone("Enter Phonenum: ")
	if err != nil {
		return err
	}

	_, err = a.db.ExecuteUpdate(
		`insert into Users(login, password, role, favoriteItems, phoneNum) values(?, ?, ?, ?, ?)`,
		login, password, string(model.RoleCustomer), "", phone)
	if err != nil {
		return fmt.Errorf("could not create user %s: %w", login, err)
	}

	a.out.WriteLine("User " + login + " created.")

	return nil
}

// LogIn checks the credentials and runs the user menu until logout.
func (a *App) LogIn() error {
	login, err := a.askNonEmpty("Enter login: ", "login")
	if err != nil {
		return err
	}

	password, err := a.askSecret("Enter Password: ")
	if err != nil {
		return err
	}

	rows, err := a.db.ExecuteQuery(
		`select login, role from Users where login = ? and password = ?`, login, password)
	if err != nil {
		return fmt.Errorf("could not log in: %w", err)
	}

	if len(rows) == 0 {
		a.out.WriteLine("Invalid login or password.")

		return nil
	}

	a.state = State{Login: rows[0][0], Role: model.ParseRole(rows[0][1])}
	slog.InfoContext(pkgCtx, "logged in", "login", a.state.Login, "role", a.state.Role)
	a.out.WriteLine("Welcome, " + a.state.Login + "!")

	reason := a.session.RunMenu(a.UserMenu(), menu.DefaultPrompt)

	slog.InfoContext(pkgCtx, "logged out", "login", a.state.Login, "reason", reason)
	a.state = State{}

	if reason == menu.ExitChosen {
		a.out.WriteLine("Logged out.")
	}

	return nil
}

// ViewProfile shows the logged in user's row with the password masked.
func (a *App) ViewProfile() error {
	rows, err := a.db.ExecuteQuery(
		`select login, password, role, favoriteItems, phoneNum from Users where login = ?`, a.state.Login)
	if err != nil {
		return fmt.Errorf("could not load profile: %w", err)
	}

	for _, r := range rows {
		r[1] = strings.Repeat("*", utf8.RuneCountInString(r[1]))
	}

	a.printTable(profileHeaders, rows)

	return nil
}

// UpdateProfile changes one of phone number, password or favourite item.
func (a *App) UpdateProfile() error {
	return a.session.RunOnce([]menu.Choice{
		{Key: 1, Label: "Update phone num", Handler: a.handle(a.updatePhone)},
		{Key: 2, Label: "Update password", Handler: a.handle(a.updatePassword)},
		{Key: 3, Label: "Update favorite item", Handler: a.handle(a.updateFavoriteItem)},
	}, menu.DefaultPrompt)
}

func (a *App) updatePhone() error {
	phone, err := a.askPhone("Enter new phone number: ")
	if err != nil {
		return err
	}

	return a.updateOwnProfile("phoneNum", phone)
}

func (a *App) updatePassword() error {
	password, err := a.askSecret("Enter new password: ")
	if err != nil {
		return err
	}

	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	return a.updateOwnProfile("password", password)
}

func (a *App) updateFavoriteItem() error {
	item, err := a.ask("Enter new favorite item: ")
	if err != nil {
		return err
	}

	return a.updateOwnProfile("favoriteItems", strings.TrimSpace(item))
}

// updateOwnProfile sets column, which is one of the fixed names above, for the current user.
func (a *App) updateOwnProfile(column, value string) error {
	_, err := a.db.ExecuteUpdate(`update Users set `+column+` = ? where login = ?`, value, a.state.Login)
	if err != nil {
		return fmt.Errorf("could not update profile: %w", err)
	}

	a.out.WriteLine("Profile updated successfully.")

	return nil
}

func (a *App) askPhone(prompt string) (string, error) {
	phone, err := a.askNonEmpty(prompt, "phone number")
	if err != nil {
		return "", err
	}

	if _, err := strconv.ParseUint(phone, 10, 64); err != nil {
		return "", fmt.Errorf("%w: phone number must contain digits only", ErrInvalidInput)
	}

	return phone, nil
}

// UpdateUser lets a manager rename an account or change its role. Renames carry the
// order history over to the new login.
func (a *App) UpdateUser() error {
	if err := a.requireManager(); err != nil {
		return err
	}

	target, err := a.askNonEmpty("Enter login to edit user:", "login")
	if err != nil {
		return err
	}

	field, err := a.ask("Edit role or login?: ")
	if err != nil {
		return err
	}

	field = strings.ToLower(strings.TrimSpace(field))
	if field != "login" && field != "role" {
		return fmt.Errorf("%w: can only edit role or login, not %q", ErrInvalidInput, field)
	}

	value, err := a.askNonEmpty("Enter new login/role: ", "new value")
	if err != nil {
		return err
	}

	switch field {
	case "role":
		role := model.ParseRole(value)
		if role != model.RoleCustomer && role != model.RoleDriver && role != model.RoleManager {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, value)
		}

		n, err := a.db.ExecuteUpdate(`update Users set role = ? where login = ?`, string(role), target)
		if err != nil {
			return fmt.Errorf("could not update role: %w", err)
		}

		if n == 0 {
			return fmt.Errorf("%w: user %s", ErrNotFound, target)
		}
	case "login":
		err := a.db.WithTx(func(e db.Executor) error {
			n, err := e.ExecuteUpdate(`update Users set login = ? where login = ?`, value, target)
			if err != nil {
				return fmt.Errorf("could not rename user: %w", err)
			}

			if n == 0 {
				return fmt.Errorf("%w: user %s", ErrNotFound, target)
			}

			if _, err := e.ExecuteUpdate(`update FoodOrder set login = ? where login = ?`, value, target); err != nil {
				return fmt.Errorf("could not move orders: %w", err)
			}

			return nil
		})
		if err != nil {
			return err
		}

		if target == a.state.Login {
			a.state.Login = value
		}
	}

	a.out.WriteLine("User " + target + " updated.")

	return nil
}

// isNoRows reports a lookup that matched nothing.
func isNoRows(err error) bool {
	return errors.Is(err, db.ErrNoRows)
}
