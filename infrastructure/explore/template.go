package explore

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// templateMinCount is the frequency below which a candidate is left
// out of the generated template; single sightings are mostly noise.
const templateMinCount = 2

// WriteConfigTemplate renders a commented scoring configuration
// template for the discovered candidates. The output is a starting
// point: an analyst still has to merge aliases and trim the whitelist
// to the brands under study.
func WriteConfigTemplate(w io.Writer, task string, candidates []Candidate, resultsFile string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s 品类分析配置文件\n", task)
	b.WriteString("# ========================================================\n")
	fmt.Fprintf(&b, "# 自动生成于: %s\n", time.Now().Format(time.DateTime))
	b.WriteString("# 请仔细审核和完善此文件，特别是 brand_dictionary 和 brands_whitelist。\n\n")

	fmt.Fprintf(&b, "task_name: %s\n", task)
	fmt.Fprintf(&b, "results_file: %s\n", resultsFile)
	fmt.Fprintf(&b, "ranking_output_file: ranking_report_%s.md\n", task)
	fmt.Fprintf(&b, "report_title: '# 品牌AI认知指数 -- %s'\n\n", task)

	b.WriteString("weights:\n")
	b.WriteString("  brand_prominence: 20\n")
	b.WriteString("  share_of_voice: 20\n")
	b.WriteString("  top10_visibility: 20\n")
	b.WriteString("  competitiveness: 20\n")
	b.WriteString("  sentiment_analysis: 20\n\n")

	b.WriteString("# 步骤一: 完善品牌词典 (包含所有品牌及其别名)\n")
	b.WriteString("brand_dictionary:\n")
	for _, candidate := range candidates {
		if candidate.Count < templateMinCount {
			continue
		}
		fmt.Fprintf(&b, "  %s: [%s] # (%d次)\n",
			standardName(candidate.Name), strings.ToLower(candidate.Name), candidate.Count)
	}
	b.WriteString("\n  # --- 请在此处手动添加或合并别名 ---\n")
	b.WriteString("  # Example: Anker: [anker, anker innovations, 安克]\n\n")

	b.WriteString("# 步骤二: 定义品牌白名单 (仅使用标准键名)\n")
	b.WriteString("brands_whitelist:\n")
	for _, candidate := range candidates {
		if candidate.Count < templateMinCount {
			continue
		}
		fmt.Fprintf(&b, "  - %s\n", standardName(candidate.Name))
	}
	b.WriteString("\n  # --- 请在此处审核，只保留研究对象品牌 ---\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// standardName normalizes a candidate spelling into a canonical key:
// title case with spaces removed.
func standardName(name string) string {
	return strings.ReplaceAll(titleCaser.String(strings.TrimSpace(name)), " ", "")
}
