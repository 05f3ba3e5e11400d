// Package faultlog records classified fault occurrences in a local
// sqlite database for later inspection.
package faultlog

import (
	"context"
	"time"

	"codeberg.org/mutker/sqlfault/internal/errors"
	"codeberg.org/mutker/sqlfault/internal/fault"
)

type service struct {
	repo Recorder
	cfg  Config
}

func NewService(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err // Already wrapped with appropriate error
	}

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, occ *Occurrence) error {
	errFactory := errors.New()

	if occ == nil {
		return errFactory.New(ErrInvalidOccurrence)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		return s.repo.Record(ctx, occ)
	}
}

func (s *service) Recent(ctx context.Context, limit int) ([]Occurrence, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *service) Close() error {
	return s.repo.Close()
}

// FromFault builds an occurrence from a classified fault, stamping it
// with the current time.
func FromFault(f fault.Fault) *Occurrence {
	occ := &Occurrence{
		Timestamp: time.Now().UTC(),
		State:     f.SQLState(),
		Message:   f.Message(),
	}
	if cause := f.Unwrap(); cause != nil {
		occ.Cause = cause.Error()
	}

	return occ
}

func timeFromUnix(unix int64) time.Time {
	return time.Unix(unix, 0).UTC()
}
