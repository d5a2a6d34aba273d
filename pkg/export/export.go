// Package export writes a course as a static JSON bundle for the client.
//
// A bundle is a directory named "<language>-from-<source language>" holding
// courseData.json and one challenges/<skill>.json per skill. A manifest of
// audio clips to fetch is written to a location shared by all courses.
package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iasonasma/LibreLingo/pkg/challenge"
	"github.com/iasonasma/LibreLingo/pkg/db"
	"github.com/iasonasma/LibreLingo/pkg/dictionary"
	"github.com/iasonasma/LibreLingo/pkg/text"
)

// Default locations, relative to the working directory.
const (
	DefaultOutputRoot   = "./src/courses"
	DefaultManifestPath = "./src/audios_to_fetch.csv"
)

const (
	courseDataFile = "courseData.json"
	challengesDir  = "challenges"
)

// Exporter exports courses from the content store.
type Exporter struct {
	DB db.DBExecutor
	// Clean normalises chip tokens. Defaults to text.CleanWord.
	Clean text.CleanFunc
	// OutputRoot holds one directory per exported course.
	OutputRoot string
	// ManifestPath is the shared audio manifest, overwritten on each run.
	ManifestPath string
	// CacheSize bounds the dictionary lookup cache of a run.
	CacheSize int
	// Validator, when set, rejects skills and words whose images are not
	// in its catalog before anything is written.
	Validator *db.Validator
	Logger    *slog.Logger
}

// NewExporter returns an Exporter with default paths.
func NewExporter(conn db.DBExecutor) *Exporter {
	return &Exporter{
		DB:           conn,
		Clean:        text.CleanWord,
		OutputRoot:   DefaultOutputRoot,
		ManifestPath: DefaultManifestPath,
		Logger:       slog.Default(),
	}
}

// Result summarises an export run.
type Result struct {
	CourseID      string
	Dir           string
	SkillFiles    []string
	ManifestPath  string
	ManifestLines int
}

// skillContent is a skill with its words and sentences in storage order.
type skillContent struct {
	db.Skill
	Words     []db.LearnWord
	Sentences []db.LearnSentence
}

type moduleContent struct {
	db.Module
	Skills []skillContent
}

// CourseID returns "<language>-from-<source language>", lower-cased.
func CourseID(c db.Course) string {
	return strings.ToLower(c.LanguageName) + "-from-" + strings.ToLower(c.SourceLanguageName)
}

// SkillFileName returns the challenge file name for a skill.
func SkillFileName(s db.Skill) string {
	return strings.ToLower(s.Name) + ".json"
}

// ExportCourseByID exports the course with the given id. Nothing is written
// when the course does not exist.
func (e *Exporter) ExportCourseByID(ctx context.Context, id int64) (*Result, error) {
	course, err := db.GetCourse(ctx, e.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Resource: "course", ID: strconv.FormatInt(id, 10), Err: ErrCourseNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", id, err)
	}
	return e.ExportCourse(ctx, course)
}

// ExportCourse writes courseData.json and every skill file of course, then
// the audio manifest.
func (e *Exporter) ExportCourse(ctx context.Context, course db.Course) (*Result, error) {
	log := e.logger()
	languageID := strings.ToLower(course.LanguageName)
	res := &Result{
		CourseID:     CourseID(course),
		Dir:          filepath.Join(e.OutputRoot, CourseID(course)),
		ManifestPath: e.ManifestPath,
	}
	log.Info("exporting course", "course", course.LanguageName+" from "+course.SourceLanguageName, "path", res.Dir)

	modules, err := e.loadTree(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(res.Dir, 0o755); err != nil {
		return nil, &IOError{Op: "create directory", Path: res.Dir, Err: err}
	}
	if err := writeJSON(filepath.Join(res.Dir, courseDataFile), courseData(course, modules)); err != nil {
		return nil, err
	}

	synth, err := e.synthesizer(course.ID, languageID)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	for _, m := range modules {
		for _, sk := range m.Skills {
			log.Info("exporting skill", "module", m.Name, "skill", sk.Name)
			path, err := e.writeSkill(ctx, res.Dir, synth, sk)
			if err != nil {
				return nil, err
			}
			res.SkillFiles = append(res.SkillFiles, path)

			for _, w := range sk.Words {
				manifest.Add(languageID, w.FormInTargetLanguage)
				if w.HasAlternate() {
					manifest.Add(languageID, w.FormInTargetLanguage2)
				}
			}
			for _, s := range sk.Sentences {
				manifest.Add(languageID, s.FormInTargetLanguage)
			}
		}
	}

	if err := manifest.WriteFile(e.ManifestPath); err != nil {
		return nil, err
	}
	res.ManifestLines = manifest.Len()
	log.Info("course exported", "skills", len(res.SkillFiles), "audios", res.ManifestLines, "manifest", e.ManifestPath)
	return res, nil
}

// ExportSkill writes the challenge file of one skill into the course
// directory dir and returns its path.
func (e *Exporter) ExportSkill(ctx context.Context, dir string, course db.Course, skill db.Skill) (string, error) {
	sk, err := e.loadSkill(ctx, skill)
	if err != nil {
		return "", err
	}
	synth, err := e.synthesizer(course.ID, strings.ToLower(course.LanguageName))
	if err != nil {
		return "", err
	}
	return e.writeSkill(ctx, dir, synth, sk)
}

func (e *Exporter) writeSkill(ctx context.Context, dir string, synth *challenge.Synthesizer, sk skillContent) (string, error) {
	challenges, err := SkillChallenges(ctx, synth, sk.Sentences, sk.Words)
	if err != nil {
		return "", fmt.Errorf("skill %q: %w", sk.Name, err)
	}
	target := filepath.Join(dir, challengesDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", &IOError{Op: "create directory", Path: target, Err: err}
	}
	path := filepath.Join(target, SkillFileName(sk.Skill))
	if err := writeJSON(path, challenges); err != nil {
		return "", err
	}
	return path, nil
}

// SkillChallenges concatenates the challenges of every sentence, then of
// every word, in the order given.
func SkillChallenges(ctx context.Context, synth *challenge.Synthesizer, sentences []db.LearnSentence, words []db.LearnWord) ([]challenge.Challenge, error) {
	out := make([]challenge.Challenge, 0, 4*len(sentences)+3*len(words))
	for _, s := range sentences {
		cs, err := synth.LearnSentence(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", s.ID, err)
		}
		out = append(out, cs...)
	}
	for _, w := range words {
		out = append(out, synth.LearnWord(w)...)
	}
	return out, nil
}

func (e *Exporter) synthesizer(courseID int64, languageID string) (*challenge.Synthesizer, error) {
	resolver, err := dictionary.NewResolver(e.DB, e.CacheSize)
	if err != nil {
		return nil, err
	}
	clean := e.Clean
	if clean == nil {
		clean = text.CleanWord
	}
	return &challenge.Synthesizer{
		CourseID:   courseID,
		LanguageID: languageID,
		Definer:    resolver,
		Clean:      clean,
	}, nil
}

func (e *Exporter) loadTree(ctx context.Context, courseID int64) ([]moduleContent, error) {
	modules, err := db.ListModules(ctx, e.DB, courseID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	out := make([]moduleContent, 0, len(modules))
	for _, m := range modules {
		skills, err := db.ListSkills(ctx, e.DB, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list skills of module %d: %w", m.ID, err)
		}
		mc := moduleContent{Module: m, Skills: make([]skillContent, 0, len(skills))}
		for _, s := range skills {
			sk, err := e.loadSkill(ctx, s)
			if err != nil {
				return nil, err
			}
			mc.Skills = append(mc.Skills, sk)
		}
		out = append(out, mc)
	}
	return out, nil
}

func (e *Exporter) loadSkill(ctx context.Context, s db.Skill) (skillContent, error) {
	words, err := db.ListLearnWords(ctx, e.DB, s.ID)
	if err != nil {
		return skillContent{}, fmt.Errorf("list words of skill %d: %w", s.ID, err)
	}
	sentences, err := db.ListLearnSentences(ctx, e.DB, s.ID)
	if err != nil {
		return skillContent{}, fmt.Errorf("list sentences of skill %d: %w", s.ID, err)
	}
	if e.Validator != nil {
		if err := e.Validator.Check(s); err != nil {
			return skillContent{}, fmt.Errorf("skill %q: %w", s.Name, err)
		}
		for _, w := range words {
			if err := e.Validator.Check(w); err != nil {
				return skillContent{}, fmt.Errorf("skill %q word %q: %w", s.Name, w.FormInTargetLanguage, err)
			}
		}
	}
	return skillContent{Skill: s, Words: words, Sentences: sentences}, nil
}

func (e *Exporter) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// writeJSON writes v indented by two spaces, keeping non-ASCII and HTML
// characters literal.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
