package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "sessions", "session_records"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_EnforcesRecordConstraints(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (id, name, player_number) VALUES ('p1', 'Alice', '101')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sessions (id, name, date) VALUES ('s1', 'Monday', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO session_records (player_id, session_id, wins, games, date) VALUES ('p1', 's1', 5, 3, 0)`)
	assert.Error(t, err, "wins above games should violate the check constraint")

	_, err = db.Exec(`INSERT INTO players (id, name, player_number) VALUES ('p2', 'Bob', '101')`)
	assert.Error(t, err, "player numbers must be unique")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	require.NoError(t, migrate(db), "re-running migrations should be a no-op")
}
