package main

import (
	"log/slog"
	"os"

	"github.com/dasdy/pizzastore/cmd/pizzastore"
	"github.com/dasdy/pizzastore/logging"
)

func main() {
	// Replaced once the config is read and log-level is known.
	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, slog.LevelWarn)))

	pizzastore.Execute()
}
