package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteFunc performs database writes inside a transaction.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// ErrBatchWriterClosed is returned by Submit after Close.
var ErrBatchWriterClosed = errors.New("batch writer closed")

// BatchWriter buffers writes and commits them in one transaction per batch.
// It is not safe for concurrent use.
type BatchWriter struct {
	db     *sql.DB
	buf    []WriteFunc
	cap    int
	closed bool

	// Committed counts write funcs whose batch has committed.
	Committed int
}

// NewBatchWriter creates a BatchWriter that flushes every bufferSize writes.
func NewBatchWriter(db *sql.DB, bufferSize int) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	return &BatchWriter{
		db:  db,
		buf: make([]WriteFunc, 0, bufferSize),
		cap: bufferSize,
	}
}

// Submit enqueues w, flushing when the buffer is full.
func (bw *BatchWriter) Submit(ctx context.Context, w WriteFunc) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.cap {
		return bw.Flush(ctx)
	}
	return nil
}

// Flush commits the buffered writes. On error the whole batch is rolled back
// and dropped.
func (bw *BatchWriter) Flush(ctx context.Context) error {
	if len(bw.buf) == 0 {
		return nil
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.cap)

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch (%d items): %w", len(batch), err)
	}
	bw.Committed += len(batch)
	return nil
}

// Close flushes pending writes and rejects further submissions.
func (bw *BatchWriter) Close(ctx context.Context) error {
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.closed = true
	return bw.Flush(ctx)
}
