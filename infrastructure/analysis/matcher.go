package analysis

import (
	"strings"

	"github.com/brandscope/brandscope/internal/domain"
)

// BrandMention records every occurrence of one brand within one answer.
type BrandMention struct {
	// FirstPosition is the smallest character offset of any alias
	// occurrence in the lower-cased answer text.
	FirstPosition int

	// Count is the number of non-overlapping occurrences summed over
	// all aliases of the brand.
	Count int
}

// AliasMatcher scans answer text for every alias of every brand in a
// dictionary. Matching is case-insensitive substring search; no word
// boundaries are applied, so an alias occurring inside another brand's
// alias produces matches for both. That overlap is a known heuristic
// limitation, kept as-is rather than silently changed.
//
// The matcher pre-lowers every alias at construction and is stateless
// afterwards, so it is safe for concurrent use across answers.
type AliasMatcher struct {
	// brands holds, per canonical name, the lower-cased aliases to scan
	// for, preserving dictionary order.
	brands map[string][]string

	// order is the deterministic canonical-name iteration order, also
	// the documented secondary sort key for positional ties.
	order []string
}

// NewAliasMatcher builds a matcher from the dictionary. It rejects
// empty dictionaries and empty aliases; the latter must be filtered out
// by the configuration loader before the engine runs.
func NewAliasMatcher(dict domain.BrandDictionary) (*AliasMatcher, error) {
	if len(dict) == 0 {
		return nil, ErrEmptyDictionary
	}
	if err := dict.Validate(); err != nil {
		return nil, err
	}

	brands := make(map[string][]string, len(dict))
	for brand, aliases := range dict {
		lowered := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			lowered = append(lowered, strings.ToLower(alias))
		}
		brands[brand] = lowered
	}

	return &AliasMatcher{brands: brands, order: dict.Canonicals()}, nil
}

// Order returns the matcher's deterministic canonical-name order.
func (m *AliasMatcher) Order() []string { return m.order }

// Aliases returns the lower-cased aliases of the brand, or nil when the
// brand is not in the dictionary.
func (m *AliasMatcher) Aliases(brand string) []string { return m.brands[brand] }

// Match finds all alias occurrences in the answer text and returns one
// BrandMention per mentioned brand. Brands with zero occurrences are
// absent from the map, never zero-valued entries.
//
// Offsets are computed in the lower-cased text. They are used only
// comparatively (earlier vs. later), so the occasional length change
// introduced by Unicode lower-casing does not affect ranking.
func (m *AliasMatcher) Match(answerText string) map[string]*BrandMention {
	if answerText == "" {
		return map[string]*BrandMention{}
	}
	lowered := strings.ToLower(answerText)

	mentions := make(map[string]*BrandMention)
	for brand, aliases := range m.brands {
		for _, alias := range aliases {
			for _, pos := range nonOverlappingOccurrences(lowered, alias) {
				mention, ok := mentions[brand]
				if !ok {
					mention = &BrandMention{FirstPosition: pos}
					mentions[brand] = mention
				}
				mention.Count++
				if pos < mention.FirstPosition {
					mention.FirstPosition = pos
				}
			}
		}
	}
	return mentions
}

// ContainsBrand reports whether any alias of the brand occurs in the
// sentence. The test uses Unicode case folding since no offsets are
// needed here.
func (m *AliasMatcher) ContainsBrand(brand, sentence string) bool {
	folded := foldCaser.String(sentence)
	for _, alias := range m.brands[brand] {
		if strings.Contains(folded, foldCaser.String(alias)) {
			return true
		}
	}
	return false
}

// nonOverlappingOccurrences returns the byte offsets of every
// non-overlapping occurrence of needle in haystack, scanning left to
// right.
func nonOverlappingOccurrences(haystack, needle string) []int {
	if needle == "" {
		return nil
	}
	var offsets []int
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return offsets
		}
		offsets = append(offsets, from+idx)
		from += idx + len(needle)
	}
}
