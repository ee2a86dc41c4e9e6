package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/braian-rent/braian-api/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd(cli.PostgresOpener()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
