package shop_test

import (
	"errors"

	"github.com/dasdy/pizzastore/db"
)

var errConnectionReset = errors.New("connection reset by peer")

// FailingDatabase fails every statement. PingErr decides whether the failure looks fatal.
type FailingDatabase struct {
	PingErr   error
	Statement int
	Pings     int
}

func (f *FailingDatabase) ExecuteUpdate(_ string, _ ...any) (int64, error) {
	f.Statement++
	return 0, errConnectionReset
}

func (f *FailingDatabase) ExecuteQuery(_ string, _ ...any) ([][]string, error) {
	f.Statement++
	return nil, errConnectionReset
}

func (f *FailingDatabase) WithTx(fn func(db.Executor) error) error {
	return fn(f)
}

func (f *FailingDatabase) Ping() error {
	f.Pings++
	return f.PingErr
}

func (f *FailingDatabase) Close() error {
	return nil
}
