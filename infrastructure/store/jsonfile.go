package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/brandscope/brandscope/internal/domain"
)

// resultItem is the on-disk shape of one collected answer in legacy
// result files: an array of objects keyed by "id" and "ai_model"
// rather than the field names used by the SQLite store.
type resultItem struct {
	ID        json.Number     `json:"id"`
	Category  string          `json:"category"`
	Question  string          `json:"question"`
	AIModel   string          `json:"ai_model"`
	Timestamp string          `json:"timestamp"`
	Response  domain.Response `json:"response"`
}

// LoadResultFile reads a JSON result file into answer records. The
// file holds an array of objects with category, question, ai_model,
// and a response carrying the answer text and its references.
func LoadResultFile(path string) ([]domain.AnswerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}

	var items []resultItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding result file %s: %w", path, err)
	}

	records := make([]domain.AnswerRecord, 0, len(items))
	for _, item := range items {
		record := domain.AnswerRecord{
			Category:   item.Category,
			QuestionID: item.ID.String(),
			Question:   item.Question,
			ModelName:  item.AIModel,
			Response:   item.Response,
		}
		if item.Timestamp != "" {
			if ts, err := time.Parse(time.DateTime, item.Timestamp); err == nil {
				record.CollectedAt = ts
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// questionItem is the on-disk shape of one question in a question set
// file.
type questionItem struct {
	ID       json.Number `json:"id"`
	Category string      `json:"category"`
	Question string      `json:"question"`
}

// LoadQuestionFile reads a JSON question set file: an array of objects
// with id, category, and question text.
func LoadQuestionFile(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question file: %w", err)
	}

	var items []questionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding question file %s: %w", path, err)
	}

	questions := make([]domain.Question, 0, len(items))
	for _, item := range items {
		questions = append(questions, domain.Question{
			ID:       item.ID.String(),
			Category: item.Category,
			Text:     item.Question,
		})
	}
	return questions, nil
}
