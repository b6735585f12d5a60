package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandscope/brandscope/internal/domain"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	config, err := ParseTaskConfig([]byte(validConfigYAML))
	require.NoError(t, err)

	pipeline, err := NewPipeline(config, nil, nil)
	require.NoError(t, err)
	return pipeline
}

func TestNewPipeline_RejectsBadDictionary(t *testing.T) {
	config := &TaskConfig{
		TaskName:        "t",
		BrandDictionary: map[string][]string{"A": {}},
		BrandsWhitelist: []string{"A"},
	}

	_, err := NewPipeline(config, nil, nil)
	assert.Error(t, err)
}

func TestPipeline_Score(t *testing.T) {
	pipeline := newTestPipeline(t)

	records := []domain.AnswerRecord{
		{
			Category: "智能硬件-扫地机器人",
			Response: domain.Response{Answer: "Roborock是最佳扫地机器人首选。"},
		},
		{
			Category: "智能硬件-扫地机器人",
			Response: domain.Response{Answer: "Xiaomi 和 Roborock都不错。"},
		},
		{
			Category: "智能硬件-智能手表",
			Response: domain.Response{Answer: "小米手表性价比高。"},
		},
	}

	run, err := pipeline.Score(context.Background(), "sh", records)
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "sh", run.Task)
	assert.False(t, run.GeneratedAt.IsZero())

	require.Contains(t, run.Overall, "Roborock")
	require.Contains(t, run.Overall, "Xiaomi")
	assert.Greater(t, run.Overall["Roborock"].BrandIndex, run.Overall["Xiaomi"].BrandIndex)

	// Each subcategory scores independently over its own subset.
	require.Contains(t, run.Subcategories, "扫地机器人")
	require.Contains(t, run.Subcategories, "智能手表")

	vacuum := run.Subcategories["扫地机器人"]
	assert.Contains(t, vacuum, "Roborock")

	watch := run.Subcategories["智能手表"]
	assert.Contains(t, watch, "Xiaomi")
	assert.NotContains(t, watch, "Roborock", "brands unmentioned in the subset are absent")
}

func TestPipeline_ScoreEmptyResultSet(t *testing.T) {
	pipeline := newTestPipeline(t)

	run, err := pipeline.Score(context.Background(), "sh", nil)
	require.NoError(t, err)

	assert.Empty(t, run.Overall)
	assert.Empty(t, run.Subcategories)
	assert.NotEmpty(t, run.ID)
}

func TestPipeline_RunIDsAreUnique(t *testing.T) {
	pipeline := newTestPipeline(t)

	first, err := pipeline.Score(context.Background(), "sh", nil)
	require.NoError(t, err)
	second, err := pipeline.Score(context.Background(), "sh", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestPipeline_NoSubcategorySuffix(t *testing.T) {
	pipeline := newTestPipeline(t)

	records := []domain.AnswerRecord{
		{Category: "智能硬件", Response: domain.Response{Answer: "Roborock很好。"}},
	}

	run, err := pipeline.Score(context.Background(), "sh", records)
	require.NoError(t, err)

	assert.Contains(t, run.Overall, "Roborock")
	assert.Empty(t, run.Subcategories)
}
