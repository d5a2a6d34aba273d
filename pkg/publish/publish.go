// Package publish uploads exported bundles to object storage.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Publisher uploads a course directory and the shared audio manifest.
type Publisher struct {
	Store ObjectStore
	// Prefix is prepended to every object key.
	Prefix  string
	Workers int
	Logger  *slog.Logger
}

// NewPublisher returns a Publisher uploading to store with four workers.
func NewPublisher(store ObjectStore, prefix string) *Publisher {
	return &Publisher{Store: store, Prefix: prefix, Workers: 4, Logger: slog.Default()}
}

// Key returns the object key for a path relative to the bundle root.
func (p *Publisher) Key(rel string) string {
	rel = strings.TrimLeft(filepath.ToSlash(rel), "/")
	prefix := strings.Trim(p.Prefix, "/")
	if prefix == "" {
		return rel
	}
	return prefix + "/" + rel
}

// PublishCourse uploads every file under dir as courses/<courseID>/... and
// the manifest as audios_to_fetch.csv. It returns the uploaded keys.
func (p *Publisher) PublishCourse(ctx context.Context, courseID, dir, manifestPath string) ([]string, error) {
	type upload struct{ src, key string }
	var uploads []upload
	err := filepath.WalkDir(dir, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, src)
		if err != nil {
			return err
		}
		uploads = append(uploads, upload{src, p.Key(path.Join("courses", courseID, filepath.ToSlash(rel)))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	if manifestPath != "" {
		uploads = append(uploads, upload{manifestPath, p.Key(filepath.Base(manifestPath))})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool := NewWorkerPool(p.Workers, len(uploads))
	pool.Start(ctx)
	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		u := u
		if err := pool.Submit(ctx, func(ctx context.Context) error {
			return p.putFile(ctx, u.src, u.key)
		}); err != nil {
			break
		}
		keys = append(keys, u.key)
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if p.Logger != nil {
		p.Logger.Info("bundle published", "course", courseID, "objects", len(keys))
	}
	return keys, nil
}

func (p *Publisher) putFile(ctx context.Context, src, key string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	return p.Store.Put(ctx, key, f, info.Size(), contentType(src))
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}
