package db

// Executor runs statements written with '?' placeholders.
type Executor interface {
	// ExecuteUpdate runs INSERT, UPDATE, DELETE or DDL and returns the affected row count.
	ExecuteUpdate(stmt string, args ...any) (int64, error)
	// ExecuteQuery returns every row as strings. NULL becomes "".
	ExecuteQuery(stmt string, args ...any) ([][]string, error)
}

// Database is the relational collaborator used by the shop handlers.
type Database interface {
	Executor
	// WithTx runs fn inside one transaction, committing when it returns nil.
	WithTx(fn func(Executor) error) error
	Ping() error
	Close() error
}
