package rowdesc_test

import (
	"database/sql"
	"testing"

	"codeberg.org/mutker/sqlfault/internal/errors"
	"codeberg.org/mutker/sqlfault/internal/rowdesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE samples (id INTEGER, name TEXT, score REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO samples VALUES (1, 'alice', 9.5), (2, NULL, 3.0)`)
	require.NoError(t, err)

	return db
}

func TestDescribe(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT id, name, score FROM samples ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	desc, err := rowdesc.Describe(rows)
	require.NoError(t, err)
	assert.Equal(t, "(id=1, name=alice, score=9.5)", desc)

	require.True(t, rows.Next())
	desc, err = rowdesc.Describe(rows)
	require.NoError(t, err)
	assert.Equal(t, "(id=2, name=NULL, score=3)", desc)
}

func TestDescribeNilCursor(t *testing.T) {
	_, err := rowdesc.Describe(nil)
	require.Error(t, err)

	var derr errors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, rowdesc.ErrNoCursor, derr.Code())
}

func TestDescribeUnpositionedCursor(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT id FROM samples`)
	require.NoError(t, err)
	defer rows.Close()

	// Scan before Next fails; that failure propagates, not a fault.
	_, err = rowdesc.Describe(rows)
	require.Error(t, err)

	var derr errors.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, rowdesc.ErrScanFailed, derr.Code())
}
