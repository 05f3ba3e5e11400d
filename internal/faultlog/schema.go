package faultlog

import (
	"database/sql"

	"codeberg.org/mutker/sqlfault/internal/errors"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS occurrences (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp INTEGER NOT NULL,
            sqlstate TEXT NOT NULL,
            message TEXT NOT NULL,
            cause TEXT
        );
        CREATE INDEX IF NOT EXISTS idx_occurrences_timestamp
            ON occurrences (timestamp)
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInitFailed, err)
	}

	return nil
}
