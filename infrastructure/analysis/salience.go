package analysis

import (
	"iter"
	"regexp"
	"sort"
	"strings"

	"github.com/brandscope/brandscope/internal/domain"
)

// strongPatterns are the positive-recommendation phrase patterns, CJK
// and English. A sentence endorses a brand when the brand appears in it
// and at least one of these matches.
var strongPatterns = []*regexp.Regexp{
	// CJK
	regexp.MustCompile(`(强烈)?推荐`),
	regexp.MustCompile(`首选`),
	regexp.MustCompile(`最佳`),
	regexp.MustCompile(`值得.*?(尝试|购买|选择)`),
	regexp.MustCompile(`性价比.*?(高|很高)`),
	regexp.MustCompile(`(是|属)?(top|best)[^。]*?(品牌|选择|之一)`),
	regexp.MustCompile(`(我|我们)?(最|很)?常买`),
	regexp.MustCompile(`(个人|我)?觉得.*?(最好|最推荐)`),
	// English
	regexp.MustCompile(`highly\s+recommend`),
	regexp.MustCompile(`best\s+choice`),
	regexp.MustCompile(`top\s+pick`),
	regexp.MustCompile(`must\s+have`),
	regexp.MustCompile(`excellent`),
	regexp.MustCompile(`outstanding`),
	regexp.MustCompile(`superior`),
	regexp.MustCompile(`first\s+choice`),
	regexp.MustCompile(`strongly\s+recommend`),
	regexp.MustCompile(`worth\s+(buying|trying|considering)`),
}

// negationKeywords suppress a positive match: a sentence containing any
// of these never counts as a strong recommendation, even when a
// positive pattern also matches.
var negationKeywords = []string{
	// CJK
	"不推荐", "不太", "不喜欢", "不值得", "踩雷", "避坑", "最差", "不合适", "不如",
	// English
	"not recommend", "don't recommend", "wouldn't recommend", "avoid",
	"worst", "disappointing", "poor quality",
}

// StrongRecommendDetector flags brands that receive an unambiguous
// endorsement somewhere in an answer. Detection is idempotent: one
// matching sentence suffices, further matches change nothing.
type StrongRecommendDetector struct {
	matcher *AliasMatcher
}

// NewStrongRecommendDetector builds a detector sharing the given
// matcher's alias tables.
func NewStrongRecommendDetector(matcher *AliasMatcher) *StrongRecommendDetector {
	return &StrongRecommendDetector{matcher: matcher}
}

// Detect scans the sentence sequence and returns the set of brands,
// out of the already-mentioned ones, that are strongly recommended.
// A brand qualifies when some sentence contains one of its aliases,
// matches a positive pattern, and contains no negation keyword.
func (d *StrongRecommendDetector) Detect(sentences iter.Seq[string], mentioned map[string]*BrandMention) map[string]bool {
	recommended := make(map[string]bool)
	if len(mentioned) == 0 {
		return recommended
	}

	for sentence := range sentences {
		lowered := strings.ToLower(sentence)
		if !matchesStrongPattern(lowered) || containsNegation(lowered) {
			continue
		}
		for brand := range mentioned {
			if recommended[brand] {
				continue
			}
			if d.matcher.ContainsBrand(brand, sentence) {
				recommended[brand] = true
			}
		}
	}
	return recommended
}

func matchesStrongPattern(sentence string) bool {
	for _, pattern := range strongPatterns {
		if pattern.MatchString(sentence) {
			return true
		}
	}
	return false
}

func containsNegation(sentence string) bool {
	for _, keyword := range negationKeywords {
		if strings.Contains(sentence, keyword) {
			return true
		}
	}
	return false
}

// AssignTopNPoints distributes positional ranking points over the
// mentioned brands: brands are ordered by ascending first-occurrence
// offset and the first domain.TopNLimit distinct brands receive
// descending points (10 for the earliest, 1 for the tenth). Positional
// ties are broken by the matcher's canonical order; the stable
// secondary key is an explicit policy, not an accident of iteration.
func AssignTopNPoints(mentions map[string]*BrandMention, canonicalOrder []string) map[string]int {
	ranked := make([]string, 0, len(mentions))
	for _, brand := range canonicalOrder {
		if _, ok := mentions[brand]; ok {
			ranked = append(ranked, brand)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return mentions[ranked[i]].FirstPosition < mentions[ranked[j]].FirstPosition
	})

	points := make(map[string]int, len(ranked))
	for rank, brand := range ranked {
		if rank >= domain.TopNLimit {
			break
		}
		points[brand] = domain.TopNLimit - rank
	}
	return points
}
