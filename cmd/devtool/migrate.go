package main

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply embedded database migrations"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) > 0 && args[0] != "up" {
		return fmt.Errorf("unsupported subcommand %q: only up is available", args[0])
	}

	PrintHeader("Applying migrations")
	if err := database.Migrate(context.Background(), dbConnString()); err != nil {
		return err
	}
	PrintSuccess("Migrations applied")
	return nil
}
