package main

import (
	"booker/config"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

// openDB loads the config and opens a plain connection for one-shot CLI
// work. No pool monitor or lifecycle hooks; the process exits right after.
func openDB() (*config.Config, *gorm.DB, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})

	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
