package faultlog

import (
	"context"
	"time"

	"codeberg.org/mutker/sqlfault/internal/sqlstate"
)

// Recorder defines the core domain interface
type Recorder interface {
	Record(ctx context.Context, occ *Occurrence) error
	Recent(ctx context.Context, limit int) ([]Occurrence, error)
	Close() error
}

// Occurrence is one recorded classified failure.
type Occurrence struct {
	Timestamp time.Time
	State     sqlstate.Code
	Message   string
	Cause     string
}
