package main

import (
	"log/slog"
	"os"

	"eventify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("eventify exited", "error", err)
		os.Exit(1)
	}
}
