package rowfunc_test

import (
	"database/sql"
	"testing"

	"codeberg.org/mutker/sqlfault/internal/fault"
	"codeberg.org/mutker/sqlfault/internal/rowfunc"
	"codeberg.org/mutker/sqlfault/internal/sqlstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE words (id INTEGER, word TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO words VALUES (1, 'uno'), (2, 'dos'), (3, 'tres')`)
	require.NoError(t, err)

	return db
}

func mapWord(rows *sql.Rows) (string, error) {
	var word string
	err := rows.Scan(&word)
	return word, err
}

func TestCollect(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT word FROM words ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	words, err := rowfunc.Collect(rows, mapWord)
	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "dos", "tres"}, words)
}

func TestForEach(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT word FROM words`)
	require.NoError(t, err)
	defer rows.Close()

	count := 0
	err = rowfunc.ForEach(rows, func(rows *sql.Rows) error {
		count++
		var word string
		return rows.Scan(&word)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOne(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT word FROM words WHERE id = 2`)
	require.NoError(t, err)
	defer rows.Close()

	word, err := rowfunc.One(rows, mapWord)
	require.NoError(t, err)
	assert.Equal(t, "dos", word)
}

func TestOneEmpty(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT word FROM words WHERE id = 99`)
	require.NoError(t, err)
	defer rows.Close()

	_, err = rowfunc.One(rows, mapWord)
	require.Error(t, err)

	code, ok := fault.StateOf(err)
	require.True(t, ok)
	assert.Equal(t, sqlstate.CursorState, code)
}

func TestOneExtraRows(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT word FROM words`)
	require.NoError(t, err)
	defer rows.Close()

	_, err = rowfunc.One(rows, mapWord)
	require.Error(t, err)
	assert.IsType(t, &fault.CursorState{}, err)
}
