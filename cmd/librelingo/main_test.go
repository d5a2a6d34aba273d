package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iasonasma/LibreLingo/pkg/db"
	"github.com/iasonasma/LibreLingo/pkg/images"
)

type env struct {
	dir      string
	dbPath   string
	images   string
	courseID int64
}

// newEnv seeds an on-disk database with "Spanish from English".
func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	e := &env{
		dir:    dir,
		dbPath: filepath.Join(dir, "librelingo.db"),
		images: filepath.Join(dir, "image_attributions.csv"),
	}
	require.NoError(t, os.WriteFile(e.images, []byte("image_name,author\ndog1,a\ndog2,b\ndog3,c\n"), 0o644))

	ctx := context.Background()
	conn, err := db.Open(e.dbPath)
	require.NoError(t, err)
	defer conn.Close()
	v := db.NewValidator(images.New("dog1", "dog2", "dog3"))
	e.courseID, err = db.CreateCourse(ctx, conn, v, db.Course{LanguageName: "Spanish", SourceLanguageName: "English", TargetLanguageCode: "es"})
	require.NoError(t, err)
	moduleID, err := db.CreateModule(ctx, conn, v, db.Module{CourseID: e.courseID, Name: "Basics"})
	require.NoError(t, err)
	skillID, err := db.CreateSkill(ctx, conn, v, db.Skill{ModuleID: moduleID, Name: "Animals", Image1: "dog1", Image2: "dog2", Image3: "dog3"})
	require.NoError(t, err)
	_, err = db.CreateLearnWord(ctx, conn, v, db.LearnWord{SkillID: skillID, FormInTargetLanguage: "perro", MeaningInSourceLanguage: "dog", Image1: "dog1", Image2: "dog2", Image3: "dog3"})
	require.NoError(t, err)
	return e
}

func (e *env) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	global := []string{
		"--db", e.dbPath,
		"--out", filepath.Join(e.dir, "courses"),
		"--manifest", filepath.Join(e.dir, "audios_to_fetch.csv"),
		"--images", e.images,
		"--log-level", "error",
	}
	code := run(context.Background(), append(global, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExportCommand(t *testing.T) {
	e := newEnv(t)
	code, stdout, stderr := e.run(t, "export", "1")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Exported spanish-from-english: 1 skills, 1 audios")

	_, err := os.Stat(filepath.Join(e.dir, "courses", "spanish-from-english", "challenges", "animals.json"))
	assert.NoError(t, err)
	manifest, err := os.ReadFile(filepath.Join(e.dir, "audios_to_fetch.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(manifest), "spanish|"), string(manifest))
	assert.True(t, strings.HasSuffix(string(manifest), "|perro"), string(manifest))
}

func TestExportCommandUnknownCourse(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "export", "42")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `course "42" does not exist`)
	_, err := os.Stat(filepath.Join(e.dir, "courses"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommandPublishWithoutEndpoint(t *testing.T) {
	t.Setenv("LIBRELINGO_S3_ENDPOINT", "")
	e := newEnv(t)
	code, _, stderr := e.run(t, "export", "1", "--publish")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "LIBRELINGO_S3_ENDPOINT")
}

func TestImportDictionaryCommand(t *testing.T) {
	e := newEnv(t)
	dict := filepath.Join(e.dir, "dict.json")
	require.NoError(t, os.WriteFile(dict, []byte(`[{"word":"perro","definition":"dog"},{"word":"dog","definition":"perro","reverse":true}]`), 0o644))

	code, stdout, stderr := e.run(t, "import-dictionary", "1", dict)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Imported 2 dictionary items")
}

func TestInitDBCommand(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	path := filepath.Join(dir, "new.db")
	code := run(context.Background(), []string{"--db", path, "init-db"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Database initialized at "+path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"nope"}, &stdout, &stderr)
	assert.NotEqual(t, 0, code)
}
