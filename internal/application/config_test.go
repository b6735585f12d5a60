package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

const validConfigYAML = `
task_name: sh
results_file: results_sh.json
report_title: '# 智能硬件品牌AI认知指数'

weights:
  brand_prominence: 30
  share_of_voice: 20
  top10_visibility: 20
  competitiveness: 20
  sentiment_analysis: 10

brand_dictionary:
  Roborock: [roborock, 石头科技]
  Xiaomi: [xiaomi, 小米]

brands_whitelist:
  - Roborock
  - Xiaomi
`

func TestParseTaskConfig(t *testing.T) {
	config, err := ParseTaskConfig([]byte(validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "sh", config.TaskName)
	assert.Equal(t, "results_sh.json", config.ResultsFile)
	assert.Equal(t, "# 智能硬件品牌AI认知指数", config.ReportTitle)
	assert.Equal(t, "ranking_report_sh.md", config.RankingOutputFile, "output file defaults from task name")

	weights := config.ScoringWeights()
	assert.Equal(t, 30.0, weights.BrandProminence)
	assert.Equal(t, 10.0, weights.SentimentAnalysis)

	dictionary := config.Dictionary()
	assert.Equal(t, []string{"roborock", "石头科技"}, dictionary["Roborock"])

	assert.True(t, config.Whitelist().Contains("Xiaomi"))
	assert.False(t, config.Whitelist().Contains("Dyson"))
}

func TestParseTaskConfig_DefaultsWeightsAndTitle(t *testing.T) {
	config, err := ParseTaskConfig([]byte(`
task_name: ha
brand_dictionary:
  Midea: [midea, 美的]
brands_whitelist: [Midea]
`))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultWeights(), config.ScoringWeights())
	assert.Contains(t, config.ReportTitle, "HA")
}

func TestParseTaskConfig_PrunesEmptyAliases(t *testing.T) {
	config, err := ParseTaskConfig([]byte(`
task_name: t
brand_dictionary:
  Anker: [anker, "", "  ", 安克]
brands_whitelist: [Anker]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"anker", "安克"}, config.Dictionary()["Anker"])
}

func TestParseTaskConfig_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing task name",
			yaml: `
brand_dictionary:
  A: [a]
brands_whitelist: [A]
`,
		},
		{
			name: "empty dictionary",
			yaml: `
task_name: t
brand_dictionary: {}
brands_whitelist: [A]
`,
		},
		{
			name: "empty whitelist",
			yaml: `
task_name: t
brand_dictionary:
  A: [a]
brands_whitelist: []
`,
		},
		{
			name: "brand with only empty aliases",
			yaml: `
task_name: t
brand_dictionary:
  A: ["", "  "]
brands_whitelist: [A]
`,
		},
		{
			name: "negative weight",
			yaml: `
task_name: t
weights:
  brand_prominence: -5
  share_of_voice: 20
  top10_visibility: 20
  competitiveness: 20
  sentiment_analysis: 20
brand_dictionary:
  A: [a]
brands_whitelist: [A]
`,
		},
		{
			name: "malformed yaml",
			yaml: "task_name: [unclosed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadTaskConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0o644))

	config, err := LoadTaskConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sh", config.TaskName)

	_, err = LoadTaskConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
