package dictionary

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iasonasma/LibreLingo/pkg/db"
	"github.com/iasonasma/LibreLingo/pkg/images"
)

func setupTestDB(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	courseID, err := db.CreateCourse(context.Background(), conn, db.NewValidator(images.New()), db.Course{
		LanguageName:       "Finnish",
		SourceLanguageName: "English",
		TargetLanguageCode: "fi",
	})
	require.NoError(t, err)
	return conn, courseID
}
