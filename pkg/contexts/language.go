package contexts

import (
	"github.com/pemistahl/lingua-go"
)

// sampleRunes bounds how much of an article is fed to the detector.
const sampleRunes = 2000

// LanguageFilter decides whether an article is kept.
type LanguageFilter interface {
	Keep(text string) bool
}

type englishFilter struct {
	detector lingua.LanguageDetector
}

// NewEnglishFilter keeps articles detected as English among the languages
// most common in Western newspaper archives.
func NewEnglishFilter() LanguageFilter {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.French, lingua.German, lingua.Spanish,
			lingua.Italian, lingua.Dutch, lingua.Portuguese, lingua.Latin).
		Build()
	return &englishFilter{detector: detector}
}

func (f *englishFilter) Keep(text string) bool {
	if r := []rune(text); len(r) > sampleRunes {
		text = string(r[:sampleRunes])
	}
	lang, ok := f.detector.DetectLanguageOf(text)
	return ok && lang == lingua.English
}
