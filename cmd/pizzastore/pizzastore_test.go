package pizzastore

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/dasdy/pizzastore/db"
	"github.com/dasdy/pizzastore/shop"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
users:
  - login: mia
    password: mpw
    role: manager
items:
  - name: Soda
    ingredients: water,sugar
    type: drinks
    price: 1
  - name: Pepperoni
    ingredients: tomato,pepperoni
    type: entree
    price: 11
`

func TestApplyArgs(t *testing.T) {
	t.Run("no args keep the flags", func(t *testing.T) {
		cfg := db.Config{DBName: "pizza", Port: 5432, User: "alice"}

		require.NoError(t, applyArgs(&cfg, nil))
		assert.Equal(t, db.Config{DBName: "pizza", Port: 5432, User: "alice"}, cfg)
	})

	t.Run("all args override", func(t *testing.T) {
		cfg := db.Config{DBName: "pizza", Port: 5432, User: "alice"}

		require.NoError(t, applyArgs(&cfg, []string{"store", "6543", "bob"}))
		assert.Equal(t, db.Config{DBName: "store", Port: 6543, User: "bob"}, cfg)
	})

	t.Run("port must be numeric", func(t *testing.T) {
		cfg := db.Config{}

		err := applyArgs(&cfg, []string{"store", "http"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"http"`)
	})
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	var driver, level, host string

	flags.StringVar(&driver, "driver", db.DriverSQLite, "")
	flags.StringVar(&level, "log-level", "warn", "")
	flags.StringVar(&host, "host", "", "")
	require.NoError(t, flags.Parse([]string{"--host", "db.local"}))

	v := viper.New()
	v.Set("driver", db.DriverPostgres)
	v.Set("loglevel", "debug")
	v.Set("host", "ignored.local")

	require.NoError(t, bindFlags(flags, v))

	assert.Equal(t, db.DriverPostgres, driver)
	assert.Equal(t, "debug", level)
	assert.Equal(t, "db.local", host, "explicit flags win over config")
}

func TestOpenStorage(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := openStorage(db.Config{Driver: "oracle"})

		require.ErrorIs(t, err, db.ErrUnknownDriver)
	})

	t.Run("seed and print the menu", func(t *testing.T) {
		storage, err := openStorage(db.Config{Driver: db.DriverSQLite, DSN: ":memory:"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = storage.Close() })

		n, err := seed(storage, strings.NewReader(seedYAML), io.Discard)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		var out bytes.Buffer

		require.NoError(t, printMenu(&out, storage, shop.ItemFilter{Descending: true}))

		lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "itemname:"))
		assert.True(t, strings.HasPrefix(lines[1], "Pepperoni"))
		assert.True(t, strings.HasPrefix(lines[2], "Soda"))
	})

	t.Run("bad seed leaves the database empty", func(t *testing.T) {
		storage, err := openStorage(db.Config{Driver: db.DriverSQLite, DSN: ":memory:"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = storage.Close() })

		_, err = seed(storage, strings.NewReader("users:\n  - login: a\n  - login: a\n"), io.Discard)
		require.Error(t, err)

		rows, err := storage.ExecuteQuery(`select login from Users`)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
