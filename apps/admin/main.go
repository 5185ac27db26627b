package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
	"github.com/trezcool/campuslink/services/email"
	"github.com/trezcool/campuslink/services/logger"
	"github.com/trezcool/campuslink/storage/database"
	"github.com/trezcool/campuslink/storage/database/kvstore"
	"github.com/trezcool/campuslink/storage/memory"
	"github.com/trezcool/campuslink/storage/sample"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	logger = logsvc.New(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	cli := commandLine{
		attendance: sample.NewProvider(),
		mailSvc:    emailsvc.New(conf, logger),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}

	// set up the store
	var store core.KVStore = memorystore.Open()
	if conf.Store == core.StorePostgres {
		errAndDie(database.CreateIfNotExist(conf))
		db, err := database.Connect(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()

		cli.db = db
		store = kvstore.New(db)
	}
	cli.usrSvc = user.NewService(user.NewKVRepository(store))

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
