package main

import (
	"context"
	"fmt"
	"os"
	"snowreport/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
