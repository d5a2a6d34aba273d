package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failKey string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	if key == m.failKey {
		return errors.New("boom")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func writeBundle(t *testing.T) (dir, manifest string) {
	t.Helper()
	root := t.TempDir()
	dir = filepath.Join(root, "courses", "spanish-from-english")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "challenges"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courseData.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "challenges", "animals.json"), []byte(`[]`), 0o644))
	manifest = filepath.Join(root, "audios_to_fetch.csv")
	require.NoError(t, os.WriteFile(manifest, []byte("spanish|abc|perro"), 0o644))
	return dir, manifest
}

func TestPublishCourse(t *testing.T) {
	dir, manifest := writeBundle(t)
	store := newMemStore()
	p := NewPublisher(store, "/bundles/")
	p.Logger = nil

	keys, err := p.PublishCourse(context.Background(), "spanish-from-english", dir, manifest)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{
		"bundles/audios_to_fetch.csv",
		"bundles/courses/spanish-from-english/challenges/animals.json",
		"bundles/courses/spanish-from-english/courseData.json",
	}, keys)
	assert.Equal(t, "[]", string(store.objects["bundles/courses/spanish-from-english/challenges/animals.json"]))
	assert.Equal(t, "spanish|abc|perro", string(store.objects["bundles/audios_to_fetch.csv"]))
	assert.Equal(t, "text/csv; charset=utf-8", store.types["bundles/audios_to_fetch.csv"])
	assert.Equal(t, "application/json; charset=utf-8", store.types["bundles/courses/spanish-from-english/courseData.json"])
}

func TestPublishCourseStoreError(t *testing.T) {
	dir, manifest := writeBundle(t)
	store := newMemStore()
	store.failKey = "courses/spanish-from-english/courseData.json"
	p := NewPublisher(store, "")
	p.Logger = nil

	_, err := p.PublishCourse(context.Background(), "spanish-from-english", dir, manifest)
	assert.EqualError(t, err, "boom")
}

func TestPublishCourseMissingDir(t *testing.T) {
	p := NewPublisher(newMemStore(), "")
	_, err := p.PublishCourse(context.Background(), "x", filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a/b.json", (&Publisher{}).Key("a/b.json"))
	assert.Equal(t, "p/a/b.json", (&Publisher{Prefix: "p/"}).Key("/a/b.json"))
}

func TestNewS3StoreValidation(t *testing.T) {
	_, err := NewS3Store(S3Config{})
	assert.ErrorContains(t, err, "endpoint")
	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", Bucket: "b"})
	assert.ErrorContains(t, err, "access key")
	_, err = NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket")
	s, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", s.region)
}
