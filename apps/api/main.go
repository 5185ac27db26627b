package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/trezcool/campuslink/apps/api/echo"
	"github.com/trezcool/campuslink/core"
	"github.com/trezcool/campuslink/core/user"
	"github.com/trezcool/campuslink/services/logger"
	"github.com/trezcool/campuslink/storage/database"
	"github.com/trezcool/campuslink/storage/database/kvstore"
	"github.com/trezcool/campuslink/storage/memory"
	"github.com/trezcool/campuslink/storage/sample"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.New(log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up the key-value store
	store, closeStore, err := setUpStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			logger.Error("Failed to close store", err)
		}
	}()

	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)

	// accounts created by the admin CLI log in for real; the mock accepts anyone
	var provider user.Provider = user.NewMockProvider(conf.MockLoginDelay)
	if conf.Store == core.StorePostgres {
		provider = user.NewAccountProvider(user.NewKVRepository(store))
	}
	data := sample.NewProvider()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	if conf.Server.DebugHost != "" {
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Store:      store,
		Provider:   provider,
		Attendance: data,
		Academics:  data,
		Validate:   validate,
		Translator: translator,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpStore(conf *core.Config) (core.KVStore, func() error, error) {
	switch conf.Store {
	case core.StoreMemory:
		return memorystore.Open(), func() error { return nil }, nil
	case core.StorePostgres:
		db, err := setUpDB(conf)
		if err != nil {
			return nil, nil, err
		}
		return kvstore.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", conf.Store)
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Connect(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
