// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package migrate runs the embedded, numbered, forward-only schema
// migrations backing the data model from spec §3, via
// golang-migrate/migrate/v4. It is schema evolution only: the calc engine
// never imports this package, per spec §1's framing of the migration
// layer as an external collaborator.
package migrate

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Up applies every pending migration against the sqlite file at path. It
// is a no-op if the schema is already current. Deliberately one-way: there
// is no Down, matching the forward-only model named in SPEC_FULL.md's
// migration-layer section.
func Up(sqlitePath string) error {
	src, err := iofs.New(schemaFS, "schema")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+sqlitePath)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
