package dictionary

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDictionary = `
{
  "items": [
    {"word": "kissa", "definition": "cat"},
    {"word": "on", "definition": "is"},
    {"word": "cat", "definition": "kissa", "reverse": true}
  ]
}
`

func TestParseWrapped(t *testing.T) {
	entries, err := Parse([]byte(sampleDictionary))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Word: "cat", Definition: "kissa", Reverse: true}, entries[2])
}

func TestParseArray(t *testing.T) {
	entries, err := Parse([]byte(`[{"word": "koira", "definition": "dog"}]`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Word: "koira", Definition: "dog"}}, entries)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`"nope"`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDictionary), 0o644))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/dict.json"))
	assert.True(t, IsRemote("http://example.com/dict.json"))
	assert.False(t, IsRemote("dict.json"))
	assert.False(t, IsRemote("/tmp/dict.json"))
}

func TestDownload(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(sampleDictionary))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dict.json":
			w.Write([]byte(sampleDictionary))
		case "/dict.json.gz":
			w.Write(gz.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"dict.json", "dict.json.gz"} {
		dest := filepath.Join(dir, name+".out")
		require.NoError(t, Download(ctx, srv.Client(), srv.URL+"/"+name, dest))
		entries, err := LoadFile(dest)
		require.NoError(t, err)
		assert.Len(t, entries, 3, name)
	}

	dest := filepath.Join(dir, "missing.out")
	err = Download(ctx, srv.Client(), srv.URL+"/missing", dest)
	assert.ErrorContains(t, err, "404")
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
