package main

import (
	"os"

	"github.com/iwvelando/cdi-simulator/internal/commands"
	"github.com/joho/godotenv"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is fine; CDISIM_ variables may come from the shell.
	_ = godotenv.Load()

	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
