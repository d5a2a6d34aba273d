package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func tableColumns(t *testing.T, conn *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := conn.Query("PRAGMA table_info(" + table + ")")
	require.NoError(t, err)
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		require.NoError(t, rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk))
		cols[colName] = true
	}
	require.NoError(t, rows.Err())
	return cols
}

// TestInitDBCreatesSchema verifies InitDB creates every content table with
// the columns the exporter reads.
func TestInitDBCreatesSchema(t *testing.T) {
	dbConn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer dbConn.Close()
	dbConn.SetMaxOpenConns(1)

	require.NoError(t, InitDB(dbConn))
	// Migrations are idempotent.
	require.NoError(t, InitDB(dbConn))

	for _, table := range []string{"courses", "modules", "skills", "learn_words", "learn_sentences", "dictionary_items"} {
		var name string
		err := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}

	words := tableColumns(t, dbConn, "learn_words")
	require.True(t, words["form_in_target_language2"])
	require.True(t, words["meaning_in_source_language2"])

	dict := tableColumns(t, dbConn, "dictionary_items")
	require.True(t, dict["reverse"])
	require.True(t, dict["definition"])
}
