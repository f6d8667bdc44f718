package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/octocat-supply/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	logg := logger.New(logger.Options{ServiceName: "migrate", Output: os.Stderr})
	if err := newRootCommand(logg).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
