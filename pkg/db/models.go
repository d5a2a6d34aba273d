package db

// Course is a full curriculum for learning one language from another.
type Course struct {
	ID                 int64
	LanguageName       string `validate:"required"`
	SourceLanguageName string `validate:"required"`
	TargetLanguageCode string `validate:"required,bcp47_language_tag"`
	// SpecialCharacters is a space-separated list for the virtual keyboard.
	SpecialCharacters string
}

// Module groups skills inside a course.
type Module struct {
	ID       int64
	CourseID int64  `validate:"required"`
	Name     string `validate:"required"`
	Order    int    `validate:"gte=0"`
}

// Skill is the unit that maps to one exported challenge file.
type Skill struct {
	ID       int64
	ModuleID int64  `validate:"required"`
	Name     string `validate:"required"`
	Order    int    `validate:"gte=0"`
	Image1   string `validate:"required,image"`
	Image2   string `validate:"required,image"`
	Image3   string `validate:"required,image"`
}

// Images returns the skill's three image references in order.
func (s Skill) Images() []string {
	return []string{s.Image1, s.Image2, s.Image3}
}

// LearnWord introduces a vocabulary item. The alternate pair is either
// present in both languages or absent in both.
type LearnWord struct {
	ID                       int64
	SkillID                  int64  `validate:"required"`
	FormInTargetLanguage     string `validate:"required"`
	MeaningInSourceLanguage  string `validate:"required"`
	FormInTargetLanguage2    string `validate:"required_with=MeaningInSourceLanguage2"`
	MeaningInSourceLanguage2 string `validate:"required_with=FormInTargetLanguage2"`
	Image1                   string `validate:"required,image"`
	Image2                   string `validate:"required,image"`
	Image3                   string `validate:"required,image"`
}

// HasAlternate reports whether the word carries an alternate form pair.
func (w LearnWord) HasAlternate() bool {
	return w.FormInTargetLanguage2 != "" && w.MeaningInSourceLanguage2 != ""
}

// Images returns the word's three image references in order.
func (w LearnWord) Images() []string {
	return []string{w.Image1, w.Image2, w.Image3}
}

// LearnSentence introduces a full sentence.
type LearnSentence struct {
	ID                      int64
	SkillID                 int64  `validate:"required"`
	FormInTargetLanguage    string `validate:"required"`
	MeaningInSourceLanguage string `validate:"required"`
}

// DictionaryItem defines one token of a course. Reverse items are keyed by
// a source-language token, the others by a target-language token.
type DictionaryItem struct {
	ID         int64
	CourseID   int64  `validate:"required" json:"-"`
	Reverse    bool   `json:"reverse"`
	Word       string `validate:"required" json:"word"`
	Definition string `json:"definition"`
}
