package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateCourse validates and inserts a course, returning its id.
func CreateCourse(ctx context.Context, db DBExecutor, v *Validator, c Course) (int64, error) {
	if err := v.Check(c); err != nil {
		return 0, fmt.Errorf("invalid course: %w", err)
	}
	return insert(ctx, db, `INSERT INTO courses (language_name, source_language_name, target_language_code, special_characters) VALUES (?, ?, ?, ?)`,
		c.LanguageName, c.SourceLanguageName, c.TargetLanguageCode, c.SpecialCharacters)
}

// CreateModule validates and inserts a module, returning its id.
func CreateModule(ctx context.Context, db DBExecutor, v *Validator, m Module) (int64, error) {
	if err := v.Check(m); err != nil {
		return 0, fmt.Errorf("invalid module: %w", err)
	}
	return insert(ctx, db, `INSERT INTO modules (course_id, name, "order") VALUES (?, ?, ?)`,
		m.CourseID, m.Name, m.Order)
}

// CreateSkill validates and inserts a skill, returning its id.
func CreateSkill(ctx context.Context, db DBExecutor, v *Validator, s Skill) (int64, error) {
	if err := v.Check(s); err != nil {
		return 0, fmt.Errorf("invalid skill: %w", err)
	}
	return insert(ctx, db, `INSERT INTO skills (module_id, name, "order", image1, image2, image3) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ModuleID, s.Name, s.Order, s.Image1, s.Image2, s.Image3)
}

// CreateLearnWord validates and inserts a word, returning its id.
func CreateLearnWord(ctx context.Context, db DBExecutor, v *Validator, w LearnWord) (int64, error) {
	if err := v.Check(w); err != nil {
		return 0, fmt.Errorf("invalid learn word: %w", err)
	}
	return insert(ctx, db, `INSERT INTO learn_words (skill_id, form_in_target_language, meaning_in_source_language, form_in_target_language2, meaning_in_source_language2, image1, image2, image3) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.SkillID, w.FormInTargetLanguage, w.MeaningInSourceLanguage,
		nullableString(w.FormInTargetLanguage2), nullableString(w.MeaningInSourceLanguage2),
		w.Image1, w.Image2, w.Image3)
}

// CreateLearnSentence validates and inserts a sentence, returning its id.
func CreateLearnSentence(ctx context.Context, db DBExecutor, v *Validator, s LearnSentence) (int64, error) {
	if err := v.Check(s); err != nil {
		return 0, fmt.Errorf("invalid learn sentence: %w", err)
	}
	return insert(ctx, db, `INSERT INTO learn_sentences (skill_id, form_in_target_language, meaning_in_source_language) VALUES (?, ?, ?)`,
		s.SkillID, s.FormInTargetLanguage, s.MeaningInSourceLanguage)
}

// UpsertDictionaryItem inserts a dictionary item or replaces the definition
// of the existing item for the same (course, word, reverse).
func UpsertDictionaryItem(ctx context.Context, db DBExecutor, item DictionaryItem) (int64, error) {
	word := strings.TrimSpace(item.Word)
	if word == "" {
		return 0, fmt.Errorf("word must be non-empty")
	}
	if item.CourseID <= 0 {
		return 0, fmt.Errorf("courseID must be positive")
	}
	var id int64
	err := db.QueryRowContext(ctx, `INSERT INTO dictionary_items (course_id, reverse, word, definition)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(course_id, word, reverse)
			  DO UPDATE SET definition = excluded.definition
			  RETURNING id`, item.CourseID, item.Reverse, word, item.Definition).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert dictionary item: %w", err)
	}
	return id, nil
}

// GetCourse returns the course with the given id, or sql.ErrNoRows.
func GetCourse(ctx context.Context, db DBExecutor, id int64) (Course, error) {
	var c Course
	err := db.QueryRowContext(ctx, `SELECT id, language_name, source_language_name, target_language_code, special_characters FROM courses WHERE id = ?`, id).
		Scan(&c.ID, &c.LanguageName, &c.SourceLanguageName, &c.TargetLanguageCode, &c.SpecialCharacters)
	if err != nil {
		return Course{}, err
	}
	return c, nil
}

// ListModules returns the modules of a course by explicit order. Ties keep
// insertion order.
func ListModules(ctx context.Context, db DBExecutor, courseID int64) ([]Module, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, course_id, name, "order" FROM modules WHERE course_id = ? ORDER BY "order", id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Name, &m.Order); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSkills returns the skills of a module by explicit order.
func ListSkills(ctx context.Context, db DBExecutor, moduleID int64) ([]Skill, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, module_id, name, "order", image1, image2, image3 FROM skills WHERE module_id = ? ORDER BY "order", id`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.ModuleID, &s.Name, &s.Order, &s.Image1, &s.Image2, &s.Image3); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLearnWords returns the words of a skill in storage order.
func ListLearnWords(ctx context.Context, db DBExecutor, skillID int64) ([]LearnWord, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, skill_id, form_in_target_language, meaning_in_source_language, form_in_target_language2, meaning_in_source_language2, image1, image2, image3 FROM learn_words WHERE skill_id = ? ORDER BY id`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LearnWord
	for rows.Next() {
		var w LearnWord
		var form2, meaning2 sql.NullString
		if err := rows.Scan(&w.ID, &w.SkillID, &w.FormInTargetLanguage, &w.MeaningInSourceLanguage, &form2, &meaning2, &w.Image1, &w.Image2, &w.Image3); err != nil {
			return nil, err
		}
		if form2.Valid {
			w.FormInTargetLanguage2 = form2.String
		}
		if meaning2.Valid {
			w.MeaningInSourceLanguage2 = meaning2.String
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLearnSentences returns the sentences of a skill in storage order.
func ListLearnSentences(ctx context.Context, db DBExecutor, skillID int64) ([]LearnSentence, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, skill_id, form_in_target_language, meaning_in_source_language FROM learn_sentences WHERE skill_id = ? ORDER BY id`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LearnSentence
	for rows.Next() {
		var s LearnSentence
		if err := rows.Scan(&s.ID, &s.SkillID, &s.FormInTargetLanguage, &s.MeaningInSourceLanguage); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDefinition returns the non-empty definition stored for word, or
// sql.ErrNoRows when there is none.
func GetDefinition(ctx context.Context, db DBExecutor, courseID int64, word string, reverse bool) (string, error) {
	var def string
	err := db.QueryRowContext(ctx, `SELECT definition FROM dictionary_items WHERE course_id = ? AND word = ? AND reverse = ? AND definition <> ''`,
		courseID, word, reverse).Scan(&def)
	if err != nil {
		return "", err
	}
	return def, nil
}

func insert(ctx context.Context, db DBExecutor, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// nullableString returns nil for "" so absent alternate forms are stored as NULL.
func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
