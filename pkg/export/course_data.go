package export

import (
	"strings"

	"github.com/iasonasma/LibreLingo/pkg/db"
)

// CourseData is the content of courseData.json.
type CourseData struct {
	LanguageName      string       `json:"languageName"`
	LanguageCode      string       `json:"languageCode"`
	SpecialCharacters []string     `json:"specialCharacters"`
	Modules           []ModuleData `json:"modules"`
}

// ModuleData lists a module's skills.
type ModuleData struct {
	Title  string      `json:"title"`
	Skills []SkillData `json:"skills"`
}

// SkillData describes one skill card on the course page.
type SkillData struct {
	ImageSet     []string `json:"imageSet"`
	Summary      []string `json:"summary"`
	PracticeHref string   `json:"practiceHref"`
	Title        string   `json:"title"`
}

func courseData(c db.Course, modules []moduleContent) CourseData {
	data := CourseData{
		LanguageName:      c.LanguageName,
		LanguageCode:      c.TargetLanguageCode,
		SpecialCharacters: strings.Split(c.SpecialCharacters, " "),
		Modules:           make([]ModuleData, 0, len(modules)),
	}
	for _, m := range modules {
		md := ModuleData{Title: m.Name, Skills: make([]SkillData, 0, len(m.Skills))}
		for _, sk := range m.Skills {
			summary := make([]string, 0, len(sk.Words))
			for _, w := range sk.Words {
				summary = append(summary, w.FormInTargetLanguage)
			}
			md.Skills = append(md.Skills, SkillData{
				ImageSet:     sk.Images(),
				Summary:      summary,
				PracticeHref: strings.ToLower(sk.Name),
				Title:        sk.Name,
			})
		}
		data.Modules = append(data.Modules, md)
	}
	return data
}
