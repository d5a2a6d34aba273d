package challenge

import (
	"context"

	"github.com/iasonasma/LibreLingo/pkg/db"
	"github.com/iasonasma/LibreLingo/pkg/dictionary"
	"github.com/iasonasma/LibreLingo/pkg/identity"
	"github.com/iasonasma/LibreLingo/pkg/text"
)

// Definer glosses sentences for chip exercises.
type Definer interface {
	DefineSentence(ctx context.Context, courseID int64, sentence string, reverse bool) ([]dictionary.Definition, error)
}

// minChips is the token count from which a sentence gets a chips exercise.
const minChips = 2

// Synthesizer builds the challenges of one course.
type Synthesizer struct {
	CourseID int64
	// LanguageID keys audio ids, e.g. "finnish".
	LanguageID string
	Definer    Definer
	Clean      text.CleanFunc
}

// LearnWord returns the challenges for w: three for the primary form pair,
// and three more for the alternate pair when present. All share one group.
func (s *Synthesizer) LearnWord(w db.LearnWord) []Challenge {
	out := s.wordForm(w, w.FormInTargetLanguage, w.MeaningInSourceLanguage)
	if w.HasAlternate() {
		out = append(out, s.wordForm(w, w.FormInTargetLanguage2, w.MeaningInSourceLanguage2)...)
	}
	return out
}

func (s *Synthesizer) wordForm(w db.LearnWord, form, meaning string) []Challenge {
	group := identity.OpaqueID(identity.KindLearnWord, w.ID, "")
	return []Challenge{
		Cards{
			Type:                    TypeCards,
			Pictures:                pictures(w.Images()),
			FormInTargetLanguage:    form,
			MeaningInSourceLanguage: meaning,
			ID:                      identity.OpaqueID(identity.KindLearnWord, w.ID, TypeCards),
			Priority:                0,
			Group:                   group,
		},
		ShortInput{
			Type:                    TypeShortInput,
			Pictures:                pictures(w.Images()),
			FormInTargetLanguage:    []string{form},
			MeaningInSourceLanguage: meaning,
			ID:                      identity.OpaqueID(identity.KindLearnWord, w.ID, TypeShortInput),
			Priority:                1,
			Group:                   group,
		},
		Listening{
			Type:     TypeListening,
			Answer:   form,
			Meaning:  meaning,
			Audio:    identity.AudioID(s.LanguageID, form),
			ID:       identity.OpaqueID(identity.KindLearnWord, w.ID, TypeListening),
			Priority: 1,
			Group:    group,
		},
	}
}

// LearnSentence returns options and listening challenges for ls, followed by
// a chips challenge for each direction whose cleaned sentence has at least
// two tokens. Both chips challenges carry the same id and group.
func (s *Synthesizer) LearnSentence(ctx context.Context, ls db.LearnSentence) ([]Challenge, error) {
	group := identity.OpaqueID(identity.KindLearnSentence, ls.ID, "")
	out := []Challenge{
		Options{
			Type:                    TypeOptions,
			FormInTargetLanguage:    ls.FormInTargetLanguage,
			MeaningInSourceLanguage: ls.MeaningInSourceLanguage,
			ID:                      identity.OpaqueID(identity.KindLearnSentence, ls.ID, TypeOptions),
			Priority:                0,
			Group:                   group,
		},
		Listening{
			Type:     TypeListening,
			Answer:   ls.FormInTargetLanguage,
			Meaning:  ls.MeaningInSourceLanguage,
			Audio:    identity.AudioID(s.LanguageID, ls.FormInTargetLanguage),
			ID:       identity.OpaqueID(identity.KindLearnSentence, ls.ID, TypeListening),
			Priority: 1,
			Group:    group,
		},
	}

	// Into the target language: gloss the source sentence.
	if c, ok, err := s.chips(ctx, ls, ls.FormInTargetLanguage, ls.MeaningInSourceLanguage, false); err != nil {
		return nil, err
	} else if ok {
		out = append(out, c)
	}
	// Into the source language: gloss the target sentence.
	if c, ok, err := s.chips(ctx, ls, ls.MeaningInSourceLanguage, ls.FormInTargetLanguage, true); err != nil {
		return nil, err
	} else if ok {
		out = append(out, c)
	}
	return out, nil
}

// chips builds the exercise whose answer is solution, glossing phrase. The
// phrase is looked up in the reverse dictionary when it is in the source
// language, i.e. when the answer is in the target language.
func (s *Synthesizer) chips(ctx context.Context, ls db.LearnSentence, solution, phrase string, toSource bool) (Chips, bool, error) {
	tokens := text.Chips(solution, s.Clean)
	if len(tokens) < minChips {
		return Chips{}, false, nil
	}
	glossed, err := s.Definer.DefineSentence(ctx, s.CourseID, phrase, !toSource)
	if err != nil {
		return Chips{}, false, err
	}
	return Chips{
		Type:                       TypeChips,
		TranslatesToSourceLanguage: toSource,
		Phrase:                     glossed,
		Chips:                      tokens,
		Solution:                   text.Chips(solution, s.Clean),
		FormattedSolution:          solution,
		ID:                         identity.OpaqueID(identity.KindLearnSentence, ls.ID, TypeChips),
		Priority:                   2,
		Group:                      identity.OpaqueID(identity.KindLearnSentence, ls.ID, ""),
	}, true, nil
}

// pictures renders image names as the file names shipped with the client.
func pictures(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + ".jpg"
	}
	return out
}
