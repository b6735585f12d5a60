package analysis

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// sentenceDelimiters is the fixed punctuation class that terminates a
// sentence fragment: CJK full stop, newline, and Latin terminators plus
// their full-width forms. Splitting is purely delimiter-based; no
// grammatical correctness is guaranteed.
const sentenceDelimiters = "。\n.!?！？"

// Sentences returns a lazy, finite, restartable sequence of trimmed
// sentence fragments of the text. Empty fragments are discarded. The
// sequence can be ranged over any number of times.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i, r := range text {
			if !strings.ContainsRune(sentenceDelimiters, r) {
				continue
			}
			if !yieldFragment(text[start:i], yield) {
				return
			}
			start = i + utf8.RuneLen(r)
		}
		yieldFragment(text[start:], yield)
	}
}

// yieldFragment trims and yields one fragment, skipping empty ones.
// It returns false when the consumer stopped the iteration.
func yieldFragment(fragment string, yield func(string) bool) bool {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return true
	}
	return yield(trimmed)
}

// SplitSentences collects the sentence sequence into a slice, for
// callers that need random access.
func SplitSentences(text string) []string {
	var sentences []string
	for s := range Sentences(text) {
		sentences = append(sentences, s)
	}
	return sentences
}
