package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rustyeddy/fintrack/cmd/fintrack/cmd"
	"github.com/rustyeddy/fintrack/logger"
)

func main() {
	// .env is optional; FINTRACK_* variables override the config file.
	_ = godotenv.Load()

	defer logger.Sync()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
