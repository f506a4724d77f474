// Package menu runs numbered text menus: it prints the choice labels, reads an integer
// selection and dispatches to the handler bound to it until the exit choice is picked or
// the input runs out.
//
// A Session is single threaded. Handlers run to completion on the caller's goroutine and
// the only suspension point is the blocking read of the next input line.
package menu

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dasdy/pizzastore/logging"
)

const (
	DefaultPrompt       = "Please make your choice: "
	InvalidInputMessage = "Your input is invalid!"
	UnrecognizedMessage = "Unrecognized choice!"
)

// ErrInputExhausted is returned when the input source reaches end of stream.
var ErrInputExhausted = errors.New("input exhausted")

var pkgCtx = logging.PackageCtx("menu")

// Input is a line oriented input source. ReadLine returns io.EOF once there is nothing
// left to read; any other error is treated the same way by Session.
type Input interface {
	ReadLine() (string, error)
}

// Output receives whole lines in call order.
type Output interface {
	WriteLine(line string)
}

// Choice is one numbered entry of a menu. The exit choice may have a nil Handler.
type Choice struct {
	Key     int
	Label   string
	Handler func()
}

// Menu groups choices under a title. ExitKey must match exactly one choice.
type Menu struct {
	Title   string
	Choices []Choice
	ExitKey int
}

// Validate checks that keys are unique and that the exit key names one of the choices.
func (m Menu) Validate() error {
	seen := make(map[int]bool, len(m.Choices))
	exitFound := false

	for _, c := range m.Choices {
		if seen[c.Key] {
			return fmt.Errorf("menu %q: duplicate key %d", m.Title, c.Key)
		}

		seen[c.Key] = true

		if c.Key == m.ExitKey {
			exitFound = true
		} else if c.Handler == nil {
			return fmt.Errorf("menu %q: choice %d has no handler", m.Title, c.Key)
		}
	}

	if !exitFound {
		return fmt.Errorf("menu %q: exit key %d is not one of the choices", m.Title, m.ExitKey)
	}

	return nil
}

// ExitReason tells why Run returned.
type ExitReason int

const (
	// ExitChosen means the exit key was read.
	ExitChosen ExitReason = iota
	// ExitInputExhausted means the input source hit end of stream.
	ExitInputExhausted
	// ExitClosed means Close was called from a handler.
	ExitClosed
	// ExitInvalidMenu means RunMenu refused a menu that failed Validate.
	ExitInvalidMenu
)

func (r ExitReason) String() string {
	switch r {
	case ExitChosen:
		return "exit chosen"
	case ExitInputExhausted:
		return "input exhausted"
	case ExitClosed:
		return "closed"
	case ExitInvalidMenu:
		return "invalid menu"
	default:
		return "unknown"
	}
}

// Session reads choices from In and writes prompts and messages to Out.
type Session struct {
	In  Input
	Out Output

	closed bool
}

func NewSession(in Input, out Output) *Session {
	return &Session{In: in, Out: out}
}

// Close makes every Run on this session return once the running handler finishes.
// It is meant for unrecoverable collaborator failures.
func (s *Session) Close() {
	s.closed = true
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}

// ReadChoice prompts until a line parses as an integer. Malformed lines are reported with
// InvalidInputMessage and retried without limit. A failing input source counts as end of
// input, so the only error returned wraps ErrInputExhausted.
func (s *Session) ReadChoice(prompt string) (int, error) {
	for {
		s.Out.WriteLine(prompt)

		line, err := s.In.ReadLine()
		if err != nil {
			return 0, endOfInput(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.Out.WriteLine(InvalidInputMessage)

			continue
		}

		return choice, nil
	}
}

// Run loops over choices until exitKey is read, the input is exhausted or the session is
// closed. Unknown keys print UnrecognizedMessage and invoke nothing.
func (s *Session) Run(choices []Choice, prompt string, exitKey int) ExitReason {
	return s.run("", choices, prompt, exitKey)
}

// RunMenu is Run with the menu title printed above the labels on every iteration.
// A menu that fails Validate is not shown at all.
func (s *Session) RunMenu(m Menu, prompt string) ExitReason {
	if err := m.Validate(); err != nil {
		slog.ErrorContext(pkgCtx, "refusing to run menu", "error", err)

		return ExitInvalidMenu
	}

	return s.run(m.Title, m.Choices, prompt, m.ExitKey)
}

// RunOnce prints the labels, reads one choice and invokes its handler. It is used for
// sub-menus that do a single thing and return to the caller.
func (s *Session) RunOnce(choices []Choice, prompt string) error {
	for _, c := range choices {
		s.Out.WriteLine(fmt.Sprintf("%d. %s", c.Key, c.Label))
	}

	key, err := s.ReadChoice(prompt)
	if err != nil {
		return err
	}

	handler, ok := lookup(choices, key)
	if !ok {
		s.Out.WriteLine(UnrecognizedMessage)

		return nil
	}

	handler()

	return nil
}

func (s *Session) run(title string, choices []Choice, prompt string, exitKey int) ExitReason {
	for {
		if s.closed {
			return ExitClosed
		}

		if title != "" {
			s.Out.WriteLine(title)
			s.Out.WriteLine(strings.Repeat("-", len(title)))
		}

		for _, c := range choices {
			s.Out.WriteLine(fmt.Sprintf("%d. %s", c.Key, c.Label))
		}

		key, err := s.ReadChoice(prompt)
		if err != nil {
			slog.DebugContext(pkgCtx, "menu terminated", "title", title, "reason", err)

			return ExitInputExhausted
		}

		if key == exitKey {
			return ExitChosen
		}

		handler, ok := lookup(choices, key)
		if !ok {
			s.Out.WriteLine(UnrecognizedMessage)

			continue
		}

		slog.DebugContext(pkgCtx, "dispatching choice", "title", title, "key", key)
		handler()
	}
}

func endOfInput(err error) error {
	if errors.Is(err, ErrInputExhausted) {
		return err
	}

	if errors.Is(err, io.EOF) {
		return ErrInputExhausted
	}

	return fmt.Errorf("%w: %w", ErrInputExhausted, err)
}

func lookup(choices []Choice, key int) (func(), bool) {
	for _, c := range choices {
		if c.Key == key && c.Handler != nil {
			return c.Handler, true
		}
	}

	return nil, false
}
