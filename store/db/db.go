// Package db provides the sqlite-backed note store. It mirrors the contract
// of the in-memory store; ids come from an AUTOINCREMENT column so a deleted
// id is never reassigned.
package db

import (
	"context"
	"database/sql"

	"github.com/memoflow/noted/common"
	"github.com/memoflow/noted/server/profile"

	// sqlite driver.
	_ "modernc.org/sqlite"
)

const migration = `
CREATE TABLE IF NOT EXISTS note (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	created_ts BIGINT NOT NULL
);
`

type DB struct {
	DBInstance *sql.DB
	profile    *profile.Profile
}

func NewDB(profile *profile.Profile) *DB {
	return &DB{
		profile: profile,
	}
}

// Open connects to the database and applies the schema.
func (db *DB) Open(ctx context.Context) error {
	sqliteDB, err := sql.Open("sqlite", db.profile.DSN())
	if err != nil {
		return common.FormatError(err)
	}
	if err := sqliteDB.PingContext(ctx); err != nil {
		return common.FormatError(err)
	}
	if _, err := sqliteDB.ExecContext(ctx, migration); err != nil {
		return common.FormatError(err)
	}
	db.DBInstance = sqliteDB
	return nil
}

func (db *DB) Close() error {
	if db.DBInstance == nil {
		return nil
	}
	return db.DBInstance.Close()
}
