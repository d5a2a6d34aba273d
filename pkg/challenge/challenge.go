// Package challenge turns words and sentences into the exercise records
// ("challenges") consumed by the client.
//
// Every record carries a type, an id, a priority and a group. Records built
// from the same content item share a group so the client can keep variants
// of one item together when it orders a lesson.
package challenge

import "github.com/iasonasma/LibreLingo/pkg/dictionary"

// Challenge types as they appear in the exported JSON.
const (
	TypeCards      = "cards"
	TypeShortInput = "shortInput"
	TypeListening  = "listeningExercise"
	TypeOptions    = "options"
	TypeChips      = "chips"
)

// Challenge is implemented by every exercise record.
type Challenge interface {
	ChallengeType() string
	GroupID() string
}

// Cards is a flashcard introducing a word.
type Cards struct {
	Type                    string   `json:"type"`
	Pictures                []string `json:"pictures"`
	FormInTargetLanguage    string   `json:"formInTargetLanguage"`
	MeaningInSourceLanguage string   `json:"meaningInSourceLanguage"`
	ID                      string   `json:"id"`
	Priority                int      `json:"priority"`
	Group                   string   `json:"group"`
}

// ShortInput asks the learner to type the word. FormInTargetLanguage lists
// every accepted answer.
type ShortInput struct {
	Type                    string   `json:"type"`
	Pictures                []string `json:"pictures"`
	FormInTargetLanguage    []string `json:"formInTargetLanguage"`
	MeaningInSourceLanguage string   `json:"meaningInSourceLanguage"`
	ID                      string   `json:"id"`
	Priority                int      `json:"priority"`
	Group                   string   `json:"group"`
}

// Listening plays an audio clip and asks for what was heard.
type Listening struct {
	Type     string `json:"type"`
	Answer   string `json:"answer"`
	Meaning  string `json:"meaning"`
	Audio    string `json:"audio"`
	ID       string `json:"id"`
	Priority int    `json:"priority"`
	Group    string `json:"group"`
}

// Options is a multiple-choice sentence exercise.
type Options struct {
	Type                    string `json:"type"`
	FormInTargetLanguage    string `json:"formInTargetLanguage"`
	MeaningInSourceLanguage string `json:"meaningInSourceLanguage"`
	ID                      string `json:"id"`
	Priority                int    `json:"priority"`
	Group                   string `json:"group"`
}

// Chips asks the learner to assemble a translation from word chips.
type Chips struct {
	Type                       string                  `json:"type"`
	TranslatesToSourceLanguage bool                    `json:"translatesToSourceLanguage"`
	Phrase                     []dictionary.Definition `json:"phrase"`
	Chips                      []string                `json:"chips"`
	Solution                   []string                `json:"solution"`
	FormattedSolution          string                  `json:"formattedSolution"`
	ID                         string                  `json:"id"`
	Priority                   int                     `json:"priority"`
	Group                      string                  `json:"group"`
}

func (c Cards) ChallengeType() string      { return c.Type }
func (c ShortInput) ChallengeType() string { return c.Type }
func (c Listening) ChallengeType() string  { return c.Type }
func (c Options) ChallengeType() string    { return c.Type }
func (c Chips) ChallengeType() string      { return c.Type }

func (c Cards) GroupID() string      { return c.Group }
func (c ShortInput) GroupID() string { return c.Group }
func (c Listening) GroupID() string  { return c.Group }
func (c Options) GroupID() string    { return c.Group }
func (c Chips) GroupID() string      { return c.Group }
