// Package lang implements the heuristic tier of English/Spanish language
// classification.
//
// The detector scores text against Spanish-specific characters and
// closed-class function words from both languages. When one language clearly
// dominates, the remote classification call is skipped entirely; ambiguous
// text falls through to the model tier in the translate package.
package lang

import (
	"strings"
	"unicode"
)

// Label is the outcome of language classification.
type Label string

const (
	// English means the text was classified as English.
	English Label = "ENGLISH"

	// Spanish means the text was classified as Spanish.
	Spanish Label = "SPANISH"

	// Unknown means the text could not be classified. Unknown is terminal
	// for a request: no translation is attempted.
	Unknown Label = "UNKNOWN"
)

// spanishChars are characters that essentially never occur in English text.
// Each occurrence anywhere in the lowered input scores DiacriticWeight.
var spanishChars = []rune{'ñ', 'é', 'á', 'í', 'ó', 'ú', 'ü', '¿', '¡'}

// spanishWords is a closed class of Spanish function words: articles,
// prepositions, conjunctions, and common adverbs. Ambiguous tokens shared
// with English ("a", "no") are deliberately excluded.
var spanishWords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {},
	"un": {}, "una": {}, "unos": {}, "unas": {},
	"de": {}, "del": {}, "al": {}, "en": {},
	"que": {}, "y": {}, "pero": {}, "con": {},
	"por": {}, "para": {}, "es": {}, "está": {},
	"son": {}, "como": {}, "más": {}, "muy": {},
	"donde": {}, "cuando": {}, "porque": {}, "también": {},
}

// englishWords is a closed class of English function words: articles,
// prepositions, auxiliary verbs, and demonstratives.
var englishWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"do": {}, "does": {}, "did": {},
	"have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "can": {}, "could": {}, "should": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "for": {}, "with": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// Detector scores text against lexical and diacritic signals.
// The weights and threshold are empirical tuning constants; they come from
// configuration rather than being hardcoded.
type Detector struct {
	diacriticWeight    int
	functionWordWeight int
	threshold          int
}

// NewDetector creates a Detector with the given tuning parameters.
// Non-positive weights fall back to the defaults (diacritic 2, word 1,
// threshold 2).
func NewDetector(diacriticWeight, functionWordWeight, threshold int) *Detector {
	if diacriticWeight <= 0 {
		diacriticWeight = 2
	}
	if functionWordWeight <= 0 {
		functionWordWeight = 1
	}
	if threshold <= 0 {
		threshold = 2
	}
	return &Detector{
		diacriticWeight:    diacriticWeight,
		functionWordWeight: functionWordWeight,
		threshold:          threshold,
	}
}

// Scores computes the Spanish and English heuristic scores for text.
func (d *Detector) Scores(text string) (spanish, english int) {
	lowered := strings.ToLower(text)

	for _, r := range lowered {
		for _, sc := range spanishChars {
			if r == sc {
				spanish += d.diacriticWeight
				break
			}
		}
	}

	for _, tok := range tokenize(lowered) {
		if _, ok := spanishWords[tok]; ok {
			spanish += d.functionWordWeight
		}
		if _, ok := englishWords[tok]; ok {
			english += d.functionWordWeight
		}
	}
	return spanish, english
}

// Classify runs the heuristic tier. The second return value reports whether
// the result is conclusive; when false, the label is Unknown and the caller
// should fall through to the model tier.
func (d *Detector) Classify(text string) (Label, bool) {
	spanish, english := d.Scores(text)
	switch {
	case spanish > english && spanish > d.threshold:
		return Spanish, true
	case english > spanish && english > d.threshold:
		return English, true
	default:
		return Unknown, false
	}
}

// tokenize splits lowered text into word tokens. Letters and apostrophes
// form tokens so contractions ("can't") survive as single words.
func tokenize(lowered string) []string {
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
