package faultlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/mutker/sqlfault/internal/errors"
	"codeberg.org/mutker/sqlfault/internal/logger"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing fault log repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Record(ctx context.Context, occ *Occurrence) error {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO occurrences (timestamp, sqlstate, message, cause)
        VALUES (?, ?, ?, ?)
    `,
		occ.Timestamp.Unix(),
		string(occ.State),
		occ.Message,
		occ.Cause,
	)
	if err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (r *sqliteRepository) Recent(ctx context.Context, limit int) ([]Occurrence, error) {
	errFactory := errors.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx, `
        SELECT timestamp, sqlstate, message, cause
        FROM occurrences
        ORDER BY timestamp DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []Occurrence
	for rows.Next() {
		var occ Occurrence
		var unix int64
		var state string
		if err := rows.Scan(&unix, &state, &occ.Message, &occ.Cause); err != nil {
			return nil, errFactory.Wrap(ErrQueryFailed, err)
		}
		occ.Timestamp = timeFromUnix(unix)
		occ.State = sqlstate.Code(state)
		out = append(out, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}

	return out, nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
