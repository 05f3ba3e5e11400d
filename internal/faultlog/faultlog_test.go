package faultlog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/sqlfault/internal/fault"
	"codeberg.org/mutker/sqlfault/internal/faultlog"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) faultlog.Recorder {
	t.Helper()

	svc, err := faultlog.NewService(faultlog.Config{
		DBPath: filepath.Join(t.TempDir(), "faultlog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return svc
}

func TestRecordAndRecent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := &faultlog.Occurrence{
		Timestamp: time.Unix(1700000000, 0).UTC(),
		State:     sqlstate.NullValue,
		Message:   "null value not allowed",
		Cause:     "insert failed",
	}
	second := &faultlog.Occurrence{
		Timestamp: time.Unix(1700000100, 0).UTC(),
		State:     sqlstate.DivisionByZero,
		Message:   "division by zero",
	}

	require.NoError(t, svc.Record(ctx, first))
	require.NoError(t, svc.Record(ctx, second))

	got, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, *second, got[0])
	assert.Equal(t, *first, got[1])

	got, err = svc.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sqlstate.DivisionByZero, got[0].State)
}

func TestRecordNil(t *testing.T) {
	svc := newTestService(t)

	err := svc.Record(context.Background(), nil)
	require.Error(t, err)
}

func TestRecordCancelledContext(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Record(ctx, &faultlog.Occurrence{
		Timestamp: time.Now(),
		State:     sqlstate.CursorState,
		Message:   "late",
	})
	require.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	_, err := faultlog.NewService(faultlog.Config{})
	require.Error(t, err)
}

func TestFromFault(t *testing.T) {
	cause := errors.New("driver failure")
	f := fault.NullValueWrap("NULL in column age", cause)

	occ := faultlog.FromFault(f)
	assert.Equal(t, sqlstate.NullValue, occ.State)
	assert.Equal(t, "NULL in column age", occ.Message)
	assert.Equal(t, "driver failure", occ.Cause)
	assert.False(t, occ.Timestamp.IsZero())
}
