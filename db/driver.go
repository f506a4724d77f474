package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"

	DefaultSQLitePath = "./pizzastore.sqlite"
	defaultHost       = "localhost"
	defaultPgPort     = 5432
	defaultMySQLPort  = 3306
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Config describes how to reach the database. DSN wins over the individual parts.
type Config struct {
	Driver   string
	DSN      string
	DBName   string
	Host     string
	Port     int
	User     string
	Password string
}

// BuildDSN returns a data source name for cfg.Driver, validating it where the driver
// offers a parser.
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN != "" {
			return cfg.DSN, nil
		}

		if cfg.DBName != "" {
			return cfg.DBName, nil
		}

		return DefaultSQLitePath, nil
	case DriverPostgres:
		dsn := cfg.DSN
		if dsn == "" {
			u := url.URL{
				Scheme: "postgres",
				Host:   net.JoinHostPort(withDefault(cfg.Host, defaultHost), strconv.Itoa(portOrDefault(cfg.Port, defaultPgPort))),
				Path:   "/" + cfg.DBName,
			}

			if cfg.User != "" {
				u.User = url.UserPassword(cfg.User, cfg.Password)
				if cfg.Password == "" {
					u.User = url.User(cfg.User)
				}
			}

			dsn = u.String()
		}

		if _, err := pgx.ParseConfig(dsn); err != nil {
			return "", fmt.Errorf("invalid postgres dsn: %w", err)
		}

		return dsn, nil
	case DriverMySQL:
		if cfg.DSN != "" {
			if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
				return "", fmt.Errorf("invalid mysql dsn: %w", err)
			}

			return cfg.DSN, nil
		}

		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(withDefault(cfg.Host, defaultHost), strconv.Itoa(portOrDefault(cfg.Port, defaultMySQLPort)))
		mc.DBName = cfg.DBName
		mc.ParseTime = true

		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Open connects to the database and checks the connection.
func Open(driver, dsn string) (*SQLStorage, error) {
	if driver != DriverSQLite && driver != DriverPostgres && driver != DriverMySQL {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// Every connection to ":memory:" is a separate database.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()

		return nil, fmt.Errorf("could not connect to %s database: %w", driver, err)
	}

	slog.InfoContext(pkgCtx, "connected", "driver", driver)

	return NewStorageFromConnection(conn, driver), nil
}

// Rebind rewrites '?' placeholders to the numbered form postgres expects. Question marks
// inside single quoted literals are left alone.
func Rebind(driver, query string) string {
	if driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	var sb strings.Builder

	n := 0
	quoted := false

	for _, r := range query {
		switch {
		case r == '\'':
			quoted = !quoted
			sb.WriteRune(r)
		case r == '?' && !quoted:
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func withDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func portOrDefault(p, fallback int) int {
	if p <= 0 {
		return fallback
	}

	return p
}
