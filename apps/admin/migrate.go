package main

import (
	"errors"

	"github.com/trezcool/campuslink/storage/database"
)

var errNoDatabase = errors.New("migrate needs the postgres store (set STORE=postgres)")

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	return database.Migrate(cli.db, args[0], args[1:]...)
}
