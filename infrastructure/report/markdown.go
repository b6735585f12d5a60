// Package report renders finished scoring runs into Markdown
// leaderboard reports: an overall ranking table, per-subcategory
// tables, and summary statistics.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// MarkdownRenderer writes scoring runs as Markdown documents.
type MarkdownRenderer struct{}

var _ ports.ReportRenderer = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer creates a Markdown report renderer.
func NewMarkdownRenderer() *MarkdownRenderer { return &MarkdownRenderer{} }

// Render writes the full report for the run: header, overall
// leaderboard, subcategory leaderboards, statistics, and a scoring
// methodology note.
func (r *MarkdownRenderer) Render(w io.Writer, title string, run domain.ScoringRun) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", title)
	fmt.Fprintf(&b, "**报告生成时间**: %s\n\n", run.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**分析任务**: %s\n\n", run.Task)
	b.WriteString("---\n\n")

	if len(run.Overall) == 0 {
		b.WriteString("⚠️ 未找到任何品牌得分数据。\n\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	writeOverallBoard(&b, run.Overall)
	writeSubcategoryBoards(&b, run.Subcategories)
	writeStatistics(&b, run)
	writeMethodology(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeOverallBoard(b *strings.Builder, scores map[string]domain.BrandScoreResult) {
	b.WriteString("## 📊 品牌排名总榜单\n\n")
	b.WriteString("| 排名 | 品牌名称 | 品牌指数 | 总提及次数 | 出现次数 | 强推荐次数 | 品牌显著度 | 声量占比 | 前10可见度 | 竞争力指数 | 情感分析 |\n")
	b.WriteString("|:---:|:---|:---:|:---:|:---:|:---:|:---:|:---:|:---:|:---:|:---:|\n")

	for rank, brand := range domain.Rank(scores) {
		dims := brand.Dimensions
		fmt.Fprintf(b, "| %d | %s | **%.2f** | %d | %d | %d | %.1f | %.1f | %.1f | %.1f | %.1f |\n",
			rank+1, brand.Brand, brand.BrandIndex,
			brand.TotalMentions, brand.OccurrenceCount, brand.StrongRecommendCount,
			dims.BrandProminence, dims.ShareOfVoice, dims.Top10Visibility,
			dims.Competitiveness, dims.SentimentAnalysis)
	}
	b.WriteString("\n")
}

func writeSubcategoryBoards(b *strings.Builder, subcategories map[string]map[string]domain.BrandScoreResult) {
	if len(subcategories) == 0 {
		return
	}

	b.WriteString("---\n\n")
	b.WriteString("## 📂 子品类榜单\n\n")
	b.WriteString("> 以下榜单按子品类分别计算，每个子品类的品牌指数基于该子品类下的数据独立计算。\n\n")

	names := make([]string, 0, len(subcategories))
	for name := range subcategories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		scores := subcategories[name]
		if len(scores) == 0 {
			continue
		}

		fmt.Fprintf(b, "### 📌 %s\n\n", name)
		b.WriteString("| 排名 | 品牌名称 | 品牌指数 | 总提及次数 | 出现次数 |\n")
		b.WriteString("|:---:|:---|:---:|:---:|:---:|\n")

		for rank, brand := range domain.Rank(scores) {
			fmt.Fprintf(b, "| %d | %s | **%.2f** | %d | %d |\n",
				rank+1, brand.Brand, brand.BrandIndex,
				brand.TotalMentions, brand.OccurrenceCount)
		}
		b.WriteString("\n")
	}
}

func writeStatistics(b *strings.Builder, run domain.ScoringRun) {
	ranked := domain.Rank(run.Overall)

	indexes := make([]float64, 0, len(ranked))
	totalMentions := 0
	for _, brand := range ranked {
		indexes = append(indexes, brand.BrandIndex)
		totalMentions += brand.TotalMentions
	}

	b.WriteString("---\n\n")
	b.WriteString("## 📈 统计信息\n\n")
	fmt.Fprintf(b, "- **参与排名品牌数**: %d\n", len(ranked))
	fmt.Fprintf(b, "- **最高品牌指数**: %.2f (%s)\n", ranked[0].BrandIndex, ranked[0].Brand)
	fmt.Fprintf(b, "- **平均品牌指数**: %.2f\n", stat.Mean(indexes, nil))
	fmt.Fprintf(b, "- **总提及次数**: %d\n", totalMentions)
	if len(run.Subcategories) > 0 {
		fmt.Fprintf(b, "- **子品类数量**: %d\n", len(run.Subcategories))
	}
	b.WriteString("\n")
}

func writeMethodology(b *strings.Builder) {
	b.WriteString("## 📝 评分说明\n\n")
	b.WriteString("本榜单采用五维度评分体系：\n\n")
	b.WriteString("1. **品牌显著度 (Brand Prominence)**: 品牌在AI回答中出现的位置，位置越靠前，分数越高\n")
	b.WriteString("2. **声量占比 (Share of Voice)**: 品牌提及次数与所有品牌提及次数的比率\n")
	b.WriteString("3. **前10可见度 (Top10 Visibility)**: 品牌在AI回答中前十名出现的效果，名次越高分数越高\n")
	b.WriteString("4. **竞争力指数 (Competitiveness)**: 品牌与提及率最高品牌的提及率之比\n")
	b.WriteString("5. **情感分析 (Sentiment Analysis)**: AI回答中关于品牌的正/负面内容分析\n")
	b.WriteString("\n")
}
