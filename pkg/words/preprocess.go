package words

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinLength is the shortest word kept by a default Preprocessor.
const DefaultMinLength = 3

// Preprocessor normalizes raw words and filters out noise.
type Preprocessor struct {
	// MinLength drops words with fewer runes. Zero keeps everything.
	MinLength int

	// StopWords are dropped after normalization. Entries must already be
	// case folded.
	StopWords map[string]struct{}

	// KeepCase disables case folding.
	KeepCase bool
}

// DefaultPreprocessor folds case, drops words shorter than
// [DefaultMinLength], and removes common English function words.
func DefaultPreprocessor() Preprocessor {
	return Preprocessor{MinLength: DefaultMinLength, StopWords: DefaultStopWords()}
}

// Process returns the normalized words that survive filtering, in input
// order. The input slice is not modified.
func (p Preprocessor) Process(raw []string) []string {
	fold := cases.Fold()
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = norm.NFC.String(strings.TrimFunc(w, isTrimmable))
		if w == "" {
			continue
		}
		if !p.KeepCase {
			w = fold.String(w)
		}
		if utf8.RuneCountInString(w) < p.MinLength {
			continue
		}
		if _, stop := p.StopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// isTrimmable matches runes stripped from both ends of a word: punctuation,
// symbols, and whitespace, including apostrophes and hyphens that survived
// tokenization ("'quoted'", "--").
func isTrimmable(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}

// StopWordSet builds a stop word set from words, case folding each entry.
func StopWordSet(words ...string) map[string]struct{} {
	fold := cases.Fold()
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[fold.String(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}

// DefaultStopWords returns a fresh set of common English function words.
func DefaultStopWords() map[string]struct{} {
	return StopWordSet(englishStopWords...)
}

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "we", "were",
	"what", "when", "where", "which", "while", "who", "whom", "why", "will", "with",
	"would", "you", "your", "yours", "yourself", "yourselves",
}
