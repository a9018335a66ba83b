// Package main implements the pgboot command-line tool.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/pgboot/pgboot/pgbootcli"
)

func main() {
	// A local .env file fills in anything the real environment does not
	// already set.
	_ = godotenv.Load()

	os.Exit(pgbootcli.Execute())
}
