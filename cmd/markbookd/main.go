// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command markbookd is the mark-calculation and mark-summary engine's
// process entrypoint: it loads process configuration, runs pending
// migrations, opens the workspace store, and serves the line-delimited
// request channel on stdin/stdout plus a debug HTTP surface, per
// SPEC_FULL.md's REQUEST ROUTER and MIGRATION LAYER sections.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/markbookdev/markbookd/internal/ccconfig"
	cclog "github.com/markbookdev/markbookd/internal/cclog"
	"github.com/markbookdev/markbookd/internal/migrate"
	"github.com/markbookdev/markbookd/internal/procsetup"
	"github.com/markbookdev/markbookd/internal/router"
	"github.com/markbookdev/markbookd/internal/store"
)

func main() {
	configPath := flag.String("config", "./config.json", "path to the process configuration file")
	flag.Parse()

	ccconfig.Init(*configPath)
	cfg := ccconfig.Load()

	if cfg.EnvFile != "" {
		if err := procsetup.LoadEnv(cfg.EnvFile); err != nil && !os.IsNotExist(err) {
			cclog.Fatalf("loading env-file %s: %v", cfg.EnvFile, err)
		}
	}

	cclog.Init(cfg.LogLevel, cfg.LogDate)
	cclog.ComponentInfo("Startup", "loaded configuration from", *configPath)

	if watcher, err := ccconfig.WatchLogLevel(*configPath); err != nil {
		cclog.ComponentWarn("Startup", "config hot-reload disabled:", err.Error())
	} else {
		defer watcher.Close()
	}

	if err := migrate.Up(cfg.SqliteDSN); err != nil {
		cclog.Fatalf("running migrations: %v", err)
	}
	cclog.ComponentInfo("Startup", "schema up to date")

	db, err := store.Open(cfg.SqliteDSN)
	if err != nil {
		cclog.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	reader := store.NewCachedReader(db, cfg.ConfigCacheEntries)
	reg := router.NewRegistry(reader, db)

	go func() {
		cclog.ComponentInfo("Startup", "debug HTTP surface listening on", cfg.DebugHTTPAddr)
		if err := http.ListenAndServe(cfg.DebugHTTPAddr, router.NewDebugHTTPHandler()); err != nil {
			cclog.ComponentError("Startup", "debug HTTP surface stopped:", err.Error())
		}
	}()

	if cfg.DropUser != "" || cfg.DropGroup != "" {
		if err := procsetup.DropPrivileges(cfg.DropUser, cfg.DropGroup); err != nil {
			cclog.Fatalf("dropping privileges: %v", err)
		}
		cclog.ComponentInfo("Startup", "dropped privileges to", cfg.DropUser, cfg.DropGroup)
	}

	procsetup.SystemdNotify(true, "serving requests on stdin/stdout")
	cclog.ComponentInfo("Startup", "serving requests on stdin/stdout")
	router.Serve(os.Stdin, os.Stdout, reg)
}
