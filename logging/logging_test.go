package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/dasdy/pizzastore/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler(t *testing.T) {
	t.Run("adds package attribute from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(logging.NewHandler(&buf, slog.LevelDebug))

		logger.InfoContext(logging.PackageCtx("db"), "opened", "driver", "sqlite3")

		assert.Contains(t, buf.String(), "package=db")
		assert.Contains(t, buf.String(), "driver=sqlite3")
	})

	t.Run("keeps context attributes after With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(logging.NewHandler(&buf, slog.LevelDebug)).With("session", 1)

		logger.InfoContext(logging.PackageCtx("shop"), "login")

		assert.Contains(t, buf.String(), "package=shop")
		assert.Contains(t, buf.String(), "session=1")
	})

	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(logging.NewHandler(&buf, slog.LevelWarn))

		logger.DebugContext(context.Background(), "hidden")

		assert.Empty(t, buf.String())
	})

	t.Run("appending does not leak into sibling contexts", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(logging.NewHandler(&buf, slog.LevelDebug))

		base := logging.PackageCtx("menu")
		first := logging.AppendCtx(base, slog.String("a", "1"))
		_ = logging.AppendCtx(base, slog.String("b", "2"))

		logger.InfoContext(first, "x")

		assert.Contains(t, buf.String(), "a=1")
		assert.NotContains(t, buf.String(), "b=2")
	})
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" error ", slog.LevelError},
	}

	for _, v := range testCases {
		t.Run(v.in, func(t *testing.T) {
			level, err := logging.ParseLevel(v.in)
			require.NoError(t, err)
			assert.Equal(t, v.expected, level)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := logging.ParseLevel("loud")
		assert.Error(t, err)
	})
}
