package dictionary

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iasonasma/LibreLingo/pkg/db"
)

// Importer writes dictionary entries for one course into the content store.
type Importer struct {
	conn      *sql.DB
	BatchSize int
	Logger    *slog.Logger
}

// NewImporter creates an Importer over conn.
func NewImporter(conn *sql.DB) *Importer {
	return &Importer{
		conn:      conn,
		BatchSize: 100,
		Logger:    slog.Default(),
	}
}

// Import upserts entries for courseID and returns how many were written.
// Entries with a blank word are skipped. Later entries for the same
// (word, reverse) overwrite earlier ones.
func (im *Importer) Import(ctx context.Context, courseID int64, entries []Entry) (int, error) {
	if _, err := db.GetCourse(ctx, im.conn, courseID); err != nil {
		return 0, fmt.Errorf("course %d: %w", courseID, err)
	}

	bw := NewBatchWriter(im.conn, im.BatchSize)
	skipped := 0
	for _, e := range entries {
		if strings.TrimSpace(e.Word) == "" {
			skipped++
			continue
		}
		item := db.DictionaryItem{
			CourseID:   courseID,
			Reverse:    e.Reverse,
			Word:       e.Word,
			Definition: e.Definition,
		}
		err := bw.Submit(ctx, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := db.UpsertDictionaryItem(ctx, tx, item); err != nil {
				return fmt.Errorf("failed to persist %q: %w", item.Word, err)
			}
			return nil
		})
		if err != nil {
			return bw.Committed, err
		}
	}
	if err := bw.Close(ctx); err != nil {
		return bw.Committed, err
	}

	if im.Logger != nil {
		im.Logger.Info("dictionary imported", "course_id", courseID, "written", bw.Committed, "skipped", skipped)
	}
	return bw.Committed, nil
}
