package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/pizzastore/logging"
)

// ErrNoRows is returned by QueryValue when the query matched nothing.
var ErrNoRows = errors.New("no rows")

var pkgCtx = logging.PackageCtx("db")

// runner is the part of *sql.DB and *sql.Tx that executor needs.
type runner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}

type executor struct {
	runner runner
	driver string
}

func (e executor) ExecuteUpdate(stmt string, args ...any) (int64, error) {
	stmt = Rebind(e.driver, stmt)
	slog.DebugContext(pkgCtx, "executing update", "stmt", stmt, "args", len(args))

	res, err := e.runner.Exec(stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("could not execute update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not count affected rows: %w", err)
	}

	return n, nil
}

func (e executor) ExecuteQuery(stmt string, args ...any) ([][]string, error) {
	stmt = Rebind(e.driver, stmt)
	slog.DebugContext(pkgCtx, "executing query", "stmt", stmt, "args", len(args))

	rows, err := e.runner.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("could not execute query: %w", err)
	}

	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("could not read columns: %w", err)
	}

	result := make([][]string, 0)
	cells := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))

	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}

		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = c.String
		}

		result = append(result, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate rows: %w", err)
	}

	return result, nil
}

// SQLStorage is a Database backed by database/sql.
type SQLStorage struct {
	executor

	db *sql.DB
}

// NewStorageFromConnection wraps an already opened connection. driver selects the
// placeholder dialect.
func NewStorageFromConnection(conn *sql.DB, driver string) *SQLStorage {
	return &SQLStorage{executor: executor{runner: conn, driver: driver}, db: conn}
}

func (s *SQLStorage) WithTx(fn func(Executor) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(executor{runner: tx, driver: s.driver}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(pkgCtx, "rollback failed", "error", rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

func (s *SQLStorage) Ping() error {
	return s.db.Ping()
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// Driver returns the database/sql driver name the storage was opened with.
func (s *SQLStorage) Driver() string {
	return s.driver
}

// QueryValue returns the first cell of the first row.
func QueryValue(e Executor, stmt string, args ...any) (string, error) {
	rows, err := e.ExecuteQuery(stmt, args...)
	if err != nil {
		return "", err
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", ErrNoRows
	}

	return rows[0][0], nil
}
