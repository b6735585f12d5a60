package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResultFile(t *testing.T) {
	path := writeTempJSON(t, `[
		{
			"id": 17,
			"category": "oversea-vacuum",
			"question": "推荐几个扫地机器人品牌",
			"ai_model": "gemini-2.0-flash",
			"timestamp": "2026-08-01 12:30:00",
			"response": {
				"answer": "Roborock和Xiaomi都值得考虑。",
				"references": [
					{"url": "https://example.com/a", "title": "Review", "publisher": "example.com"}
				]
			}
		},
		{
			"id": "q-18",
			"category": "oversea-vacuum",
			"ai_model": "gpt-4o",
			"response": {"answer": "", "references": []}
		}
	]`)

	records, err := LoadResultFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "17", first.QuestionID, "numeric ids load as strings")
	assert.Equal(t, "oversea-vacuum", first.Category)
	assert.Equal(t, "gemini-2.0-flash", first.ModelName)
	assert.Equal(t, "Roborock和Xiaomi都值得考虑。", first.Response.Answer)
	require.Len(t, first.Response.References, 1)
	assert.Equal(t, "example.com", first.Response.References[0].Publisher)
	assert.False(t, first.CollectedAt.IsZero())

	second := records[1]
	assert.Equal(t, "q-18", second.QuestionID)
	assert.Empty(t, second.Response.Answer)
	assert.True(t, second.CollectedAt.IsZero())
}

func TestLoadResultFile_Malformed(t *testing.T) {
	path := writeTempJSON(t, `{"not": "an array"}`)

	_, err := LoadResultFile(path)
	assert.Error(t, err)
}

func TestLoadResultFile_Missing(t *testing.T) {
	_, err := LoadResultFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadQuestionFile(t *testing.T) {
	path := writeTempJSON(t, `[
		{"id": 1, "category": "oversea-vacuum", "question": "哪个品牌最好？"},
		{"id": 2, "category": "oversea-phone", "question": "which phone should I buy?"}
	]`)

	questions, err := LoadQuestionFile(path)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "1", questions[0].ID)
	assert.Equal(t, "oversea-vacuum", questions[0].Category)
	assert.Equal(t, "哪个品牌最好？", questions[0].Text)
}
