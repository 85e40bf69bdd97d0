package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gasline/gasline-backend/pkg/config"
	"github.com/gasline/gasline-backend/pkg/db"
	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/migrate"
)

const usage = `usage: migrate [-dir <path>] <command> [args]

Commands:
  up                   apply all pending migrations
  up-by-one            apply the next pending migration
  down                 roll back the latest migration
  status               print migration status
  version              print the current DB version
  up-to <version>      migrate to a specific version
  create <name>        create a new SQL migration file
  validate             check migration files without a database
`

func main() {
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, commandArgs := args[0], args[1:]

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	ctx := context.Background()

	// create and validate work without a database.
	switch command {
	case "create":
		if len(commandArgs) != 1 {
			fmt.Fprintln(os.Stderr, "create requires a migration name")
			os.Exit(2)
		}
		path, err := migrate.CreateSQLMigration(*dir, commandArgs[0])
		if err != nil {
			logg.Error(ctx, "failed to create migration", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			logg.Error(ctx, "migration validation failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "migrations valid")
		return
	}

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(ctx, "failed to unwrap sql connection", err)
		os.Exit(1)
	}

	switch command {
	case "up", "up-by-one", "down", "status", "version":
		err = migrate.Run(ctx, sqlDB, *dir, command, commandArgs...)
	case "up-to":
		if len(commandArgs) != 1 {
			fmt.Fprintln(os.Stderr, "up-to requires a version")
			os.Exit(2)
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, *dir, commandArgs[0])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logg.Error(ctx, "migration command failed", err)
		os.Exit(1)
	}
}
