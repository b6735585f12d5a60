package domain

import (
	"fmt"
	"sort"
	"strings"
)

// BrandDictionary maps a canonical brand name to the ordered list of
// surface aliases that should be recognized as referring to it.
// Aliases may overlap across brands; disambiguation of overlapping
// alias substrings is deliberately not attempted.
//
// A dictionary is immutable for the duration of one scoring run and is
// loaded once from configuration.
type BrandDictionary map[string][]string

// Canonicals returns the canonical brand names in lexicographic order.
// The stable ordering doubles as the documented tie-breaking order for
// brands whose first occurrence positions are equal.
func (d BrandDictionary) Canonicals() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every brand has at least one alias and that no
// alias is empty or whitespace-only. Empty aliases would match at every
// offset and must be rejected at load time.
func (d BrandDictionary) Validate() error {
	for brand, aliases := range d {
		if brand == "" {
			return fmt.Errorf("brand dictionary: empty canonical name")
		}
		if len(aliases) == 0 {
			return fmt.Errorf("brand dictionary: brand %q has no aliases", brand)
		}
		for i, alias := range aliases {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("brand dictionary: brand %q alias %d is empty", brand, i)
			}
		}
	}
	return nil
}

// Whitelist is the set of canonical brand names that survive
// aggregation into the final leaderboard. Names outside the brand
// dictionary are harmless; they simply never match anything.
type Whitelist map[string]struct{}

// NewWhitelist builds a Whitelist from a list of canonical names.
func NewWhitelist(names []string) Whitelist {
	w := make(Whitelist, len(names))
	for _, name := range names {
		w[name] = struct{}{}
	}
	return w
}

// Contains reports whether the canonical name is whitelisted.
func (w Whitelist) Contains(brand string) bool {
	_, ok := w[brand]
	return ok
}

// Weights holds the per-dimension weights of the composite brand index.
// Weights are non-negative and conventionally sum to 100 so that the
// index lands near the 0-100 range; the sum is not enforced.
type Weights struct {
	BrandProminence   float64 `yaml:"brand_prominence" json:"brand_prominence" validate:"min=0"`
	ShareOfVoice      float64 `yaml:"share_of_voice" json:"share_of_voice" validate:"min=0"`
	Top10Visibility   float64 `yaml:"top10_visibility" json:"top10_visibility" validate:"min=0"`
	Competitiveness   float64 `yaml:"competitiveness" json:"competitiveness" validate:"min=0"`
	SentimentAnalysis float64 `yaml:"sentiment_analysis" json:"sentiment_analysis" validate:"min=0"`
}

// DefaultWeights returns the equal-weight configuration used when a
// task does not specify its own weights.
func DefaultWeights() Weights {
	return Weights{
		BrandProminence:   20,
		ShareOfVoice:      20,
		Top10Visibility:   20,
		Competitiveness:   20,
		SentimentAnalysis: 20,
	}
}
