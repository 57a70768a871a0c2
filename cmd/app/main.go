// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/server"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "jobportal",
		Usage:   "Job portal web application",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  server.Run,
		Commands: []*cli.Command{
			migrateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
