// Package shop holds the pizza store operations. Every operation is a menu handler that
// talks to the database through db.Database, reports its own failures on the output and
// never lets them escape the menu loop.
package shop

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/logging"
	"github.com/dasdy/pizzastore/menu"
	"github.com/dasdy/pizzastore/model"
	"github.com/dasdy/pizzastore/table"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotPermitted = errors.New("not permitted")
	ErrNotFound     = errors.New("not found")
	// ErrConnectionLost is returned by Run when the database stopped answering.
	ErrConnectionLost = errors.New("database connection lost")
)

var pkgCtx = logging.PackageCtx("shop")

// SecretReader is implemented by inputs that can read a line without echoing it.
type SecretReader interface {
	ReadSecret() (string, error)
}

// State is who is logged in. It is empty between sessions.
type State struct {
	Login string
	Role  model.Role
}

func (s State) LoggedIn() bool {
	return s.Login != ""
}

// App is one interactive run of the store client.
type App struct {
	db      db.Database
	in      menu.Input
	out     menu.Output
	session *menu.Session
	state   State
	fatal   error
}

func New(database db.Database, in menu.Input, out menu.Output) *App {
	return &App{
		db:      database,
		in:      in,
		out:     out,
		session: menu.NewSession(in, out),
	}
}

// State returns the current login state.
func (a *App) State() State {
	return a.state
}

// Run checks both menus, greets the user and runs the main menu until exit, end of
// input, or a lost database connection. Only a broken menu or the lost connection is
// returned as an error.
func (a *App) Run() error {
	for _, m := range []menu.Menu{a.MainMenu(), a.UserMenu()} {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("could not build menus: %w", err)
		}
	}

	a.out.WriteLine("")
	a.out.WriteLine("*******************************************************")
	a.out.WriteLine("              User Interface")
	a.out.WriteLine("*******************************************************")
	a.out.WriteLine("")

	reason := a.session.RunMenu(a.MainMenu(), menu.DefaultPrompt)
	slog.InfoContext(pkgCtx, "session finished", "reason", reason)

	if a.fatal != nil {
		return fmt.Errorf("%w: %w", ErrConnectionLost, a.fatal)
	}

	return nil
}

// report writes exactly one line for err. When the failure came from the database and a
// ping fails too, the whole session is closed.
func (a *App) report(err error) {
	a.out.WriteLine("Error: " + err.Error())

	if errors.Is(err, menu.ErrInputExhausted) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotPermitted) || errors.Is(err, ErrNotFound) {
		return
	}

	slog.WarnContext(pkgCtx, "database operation failed", "error", err)

	if pingErr := a.db.Ping(); pingErr != nil {
		slog.ErrorContext(pkgCtx, "database unreachable, closing session", "error", pingErr)

		a.fatal = err
		a.session.Close()
	}
}

// ask prints prompt and reads one line.
func (a *App) ask(prompt string) (string, error) {
	a.out.WriteLine(prompt)

	line, err := a.in.ReadLine()
	if err != nil {
		return "", fmt.Errorf("%w: %w", menu.ErrInputExhausted, err)
	}

	return line, nil
}

func (a *App) askSecret(prompt string) (string, error) {
	sr, ok := a.in.(SecretReader)
	if !ok {
		return a.ask(prompt)
	}

	a.out.WriteLine(prompt)

	line, err := sr.ReadSecret()
	if err != nil {
		return "", fmt.Errorf("%w: %w", menu.ErrInputExhausted, err)
	}

	return line, nil
}

func (a *App) askInt(prompt, what string) (int, error) {
	line, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, what)
	}

	return n, nil
}

func (a *App) askFloat(prompt, what string) (float64, error) {
	line, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, what)
	}

	return f, nil
}

func (a *App) askNonEmpty(prompt, what string) (string, error) {
	line, err := a.ask(prompt)
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, what)
	}

	return line, nil
}

func (a *App) printTable(headers []string, rows [][]string) {
	for _, line := range table.Lines(headers, rows) {
		a.out.WriteLine(line)
	}
}

// handle turns an error returning operation into a menu handler.
func (a *App) handle(op func() error) func() {
	return func() {
		if err := op(); err != nil {
			a.report(err)
		}
	}
}

// currentRole re-reads the role of the logged in user, so that role changes made by a
// manager apply without logging in again.
func (a *App) currentRole() (model.Role, error) {
	role, err := db.QueryValue(a.db, `select role from Users where login = ?`, a.state.Login)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return "", fmt.Errorf("%w: user %s no longer exists", ErrNotFound, a.state.Login)
		}

		return "", err
	}

	a.state.Role = model.ParseRole(role)

	return a.state.Role, nil
}

func (a *App) requireStaff() error {
	role, err := a.currentRole()
	if err != nil {
		return err
	}

	if !role.IsStaff() {
		return fmt.Errorf("%w: must be manager or driver", ErrNotPermitted)
	}

	return nil
}

func (a *App) requireManager() error {
	role, err := a.currentRole()
	if err != nil {
		return err
	}

	if role != model.RoleManager {
		return fmt.Errorf("%w: must be manager", ErrNotPermitted)
	}

	return nil
}
