package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

func sampleRun() domain.ScoringRun {
	return domain.ScoringRun{
		ID:          "run-1",
		Task:        "oversea",
		GeneratedAt: time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
		Overall: map[string]domain.BrandScoreResult{
			"Roborock": {
				BrandIndex:           87.54,
				TotalMentions:        42,
				OccurrenceCount:      20,
				StrongRecommendCount: 8,
				Dimensions: domain.DimensionScores{
					BrandProminence:   95.0,
					ShareOfVoice:      90.2,
					Top10Visibility:   88.8,
					Competitiveness:   100.0,
					SentimentAnalysis: 63.7,
				},
			},
			"Xiaomi": {
				BrandIndex:      64.21,
				TotalMentions:   25,
				OccurrenceCount: 15,
			},
		},
		Subcategories: map[string]map[string]domain.BrandScoreResult{
			"vacuum": {
				"Roborock": {BrandIndex: 91.0, TotalMentions: 30, OccurrenceCount: 14},
			},
			"watch": {},
		},
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	var b strings.Builder
	renderer := NewMarkdownRenderer()

	require.NoError(t, renderer.Render(&b, "# 品牌AI认知指数", sampleRun()))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "# 品牌AI认知指数\n"))
	assert.Contains(t, out, "**分析任务**: oversea")
	assert.Contains(t, out, "2026-08-15 09:30:00")

	// Overall board, ranked by descending index.
	assert.Contains(t, out, "## 📊 品牌排名总榜单")
	assert.Contains(t, out, "| 1 | Roborock | **87.54** | 42 | 20 | 8 | 95.0 | 90.2 | 88.8 | 100.0 | 63.7 |")
	assert.Contains(t, out, "| 2 | Xiaomi | **64.21** |")
	assert.Less(t, strings.Index(out, "| 1 | Roborock"), strings.Index(out, "| 2 | Xiaomi"))

	// Subcategory boards: empty subcategories are skipped.
	assert.Contains(t, out, "### 📌 vacuum")
	assert.NotContains(t, out, "### 📌 watch")
	assert.Contains(t, out, "| 1 | Roborock | **91.00** | 30 | 14 |")

	// Statistics.
	assert.Contains(t, out, "**参与排名品牌数**: 2")
	assert.Contains(t, out, "**最高品牌指数**: 87.54 (Roborock)")
	assert.Contains(t, out, "**平均品牌指数**: 75.8")
	assert.Contains(t, out, "**总提及次数**: 67")
	assert.Contains(t, out, "**子品类数量**: 2")

	assert.Contains(t, out, "## 📝 评分说明")
}

func TestMarkdownRenderer_EmptyRun(t *testing.T) {
	var b strings.Builder
	renderer := NewMarkdownRenderer()

	run := domain.ScoringRun{Task: "empty", GeneratedAt: time.Now()}
	require.NoError(t, renderer.Render(&b, "# Title", run))

	out := b.String()
	assert.Contains(t, out, "未找到任何品牌得分数据")
	assert.NotContains(t, out, "总榜单")
}
