// Package domain contains pure, dependency-free domain models and types
// for the brand-scoring engine.
package domain

import (
	"strings"
	"time"
)

// Reference is a single source attribution returned alongside an answer.
// Providers with grounding support populate all fields; the URL-scrape
// fallback fills only URL.
type Reference struct {
	// URL is the source location. It is the only field guaranteed
	// to be non-empty.
	URL string `json:"url"`

	// Title is the page or document title, when known.
	Title string `json:"title,omitempty"`

	// Publisher names the site or organization behind the source.
	Publisher string `json:"publisher,omitempty"`

	// Snippet is a short excerpt of the cited content.
	Snippet string `json:"snippet,omitempty"`
}

// Contains reports whether any textual field of the reference contains
// the given term, case-insensitively. It is used to count how many
// attributions back a brand's presence in an answer.
func (r Reference) Contains(term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{r.URL, r.Title, r.Publisher, r.Snippet} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Response holds the free-text answer of one model invocation together
// with its source references.
type Response struct {
	// Answer is the raw answer text. It may be empty when the provider
	// call failed; empty answers contribute nothing to scoring.
	Answer string `json:"answer"`

	// References lists source attributions for the answer, possibly empty.
	References []Reference `json:"references,omitempty"`
}

// AnswerRecord is one LLM-generated answer to one market-research
// question. Records are produced by the collection subsystem and
// consumed read-only by the scoring engine; they are immutable once
// written.
type AnswerRecord struct {
	// Category identifies the product category the question belongs to.
	// A "parent-sub" form carries an optional subcategory suffix.
	Category string `json:"category"`

	// QuestionID identifies the question within the task's question set.
	QuestionID string `json:"question_id"`

	// Question is the question text as sent to the model.
	Question string `json:"question,omitempty"`

	// ModelName names the model that produced this answer.
	ModelName string `json:"model_name"`

	// Response holds the answer text and its references.
	Response Response `json:"response"`

	// CollectedAt records when the answer was collected.
	CollectedAt time.Time `json:"collected_at,omitempty"`
}

// Subcategory returns the subcategory component of a "parent-sub"
// category and true, or "" and false when the category carries no
// subcategory suffix.
func (r AnswerRecord) Subcategory() (string, bool) {
	_, sub, found := strings.Cut(r.Category, "-")
	if !found || sub == "" {
		return "", false
	}
	return sub, true
}

// Question is one market-research question to be put to every
// configured model during collection.
type Question struct {
	// ID identifies the question within a task.
	ID string `json:"id" yaml:"id"`

	// Category is the product category the question probes.
	Category string `json:"category" yaml:"category"`

	// Text is the question itself.
	Text string `json:"text" yaml:"text"`
}
