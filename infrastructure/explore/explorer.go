// Package explore discovers candidate brand names in collected
// answers. It drives an LLM extraction prompt over each answer, merges
// near-duplicate spellings, and generates a scoring configuration
// template for an analyst to review.
package explore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// ExtractionPrompt instructs the model to pull brand names from one
// answer and return them as a JSON object.
const ExtractionPrompt = `你是一个专业的市场分析师。你的任务是从给定的文本中，提取所有清晰的品牌名称。
规则:
1. 只返回品牌名称，忽略品类通用词汇，例如: "扫地机器人", "智能手表"。
2. 忽略零售商/平台名称，例如: "Amazon", "Best Buy", "京东", "天猫"。
3. 同时识别中英文品牌名称，例如: "大疆" 和 "DJI" 都应该提取。
4. 返回一个 JSON 对象，格式为: {"brands": ["Brand1", "Brand2", ...]}；如果没有找到任何品牌，返回 {"brands": []}。`

// maxMergeDistance is the edit distance at which two candidate
// spellings are treated as the same brand.
const maxMergeDistance = 1

// Candidate is one discovered brand with its extraction frequency.
type Candidate struct {
	// Name is the most frequent spelling seen for the brand.
	Name string
	// Count is how many extractions produced this brand.
	Count int
}

// Explorer extracts candidate brands from answer text with an LLM.
type Explorer struct {
	client ports.LLMClient
	logger *slog.Logger
}

// NewExplorer creates an explorer backed by the given LLM client.
// A nil logger disables logging.
func NewExplorer(client ports.LLMClient, logger *slog.Logger) (*Explorer, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Explorer{client: client, logger: logger}, nil
}

// Explore runs brand extraction over every non-empty answer and
// returns discovered candidates sorted by descending frequency.
// Extraction failures on individual answers are logged and skipped so
// one bad response never loses a whole run.
func (e *Explorer) Explore(ctx context.Context, records []domain.AnswerRecord) ([]Candidate, error) {
	counts := make(map[string]int)

	for _, record := range records {
		answer := record.Response.Answer
		if strings.TrimSpace(answer) == "" {
			continue
		}

		brands, err := e.extractBrands(ctx, answer)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Warn("brand extraction failed for answer",
				"question_id", record.QuestionID, "error", err)
			continue
		}

		for _, brand := range brands {
			brand = strings.TrimSpace(brand)
			if brand != "" {
				counts[brand]++
			}
		}
	}

	return rankCandidates(mergeSimilar(counts)), nil
}

// extractBrands asks the model for the brands in one answer.
func (e *Explorer) extractBrands(ctx context.Context, answer string) ([]string, error) {
	response, err := e.client.Complete(ctx, answer, map[string]any{
		"system":      ExtractionPrompt,
		"temperature": 0.0,
	})
	if err != nil {
		return nil, err
	}
	return parseBrandList(response)
}

// parseBrandList decodes the {"brands": [...]} object from the model
// response, tolerating surrounding prose or fencing.
func parseBrandList(response string) ([]string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var payload struct {
		Brands []string `json:"brands"`
	}
	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decoding brand list: %w", err)
	}
	return payload.Brands, nil
}

// mergeSimilar folds near-duplicate spellings (edit distance at most
// maxMergeDistance, case-insensitive) into the most frequent spelling,
// so "RoboRock" and "Roborock" count as one candidate.
func mergeSimilar(counts map[string]int) map[string]int {
	// Process high-frequency spellings first so they absorb variants.
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	merged := make(map[string]int, len(counts))
	for _, name := range names {
		target := name
		for existing := range merged {
			if levenshtein.ComputeDistance(strings.ToLower(existing), strings.ToLower(name)) <= maxMergeDistance {
				target = existing
				break
			}
		}
		merged[target] += counts[name]
	}
	return merged
}

func rankCandidates(counts map[string]int) []Candidate {
	candidates := make([]Candidate, 0, len(counts))
	for name, count := range counts {
		candidates = append(candidates, Candidate{Name: name, Count: count})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates
}
