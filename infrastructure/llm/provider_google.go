package llm

import (
	"context"
	"errors"
	"math"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"github.com/brandscope/brandscope/internal/domain"
)

const (
	// GoogleDefaultModel is the default model for the Google provider.
	GoogleDefaultModel = "gemini-2.0-flash"
)

func init() {
	RegisterProviderFactory("google", newGoogleProvider)
}

// googleProvider implements the CoreLLM interface for Google's Gemini
// API. It is the only provider with real grounding support: when web
// search is enabled, answers carry citations from grounding metadata
// instead of URLs scraped from the text.
type googleProvider struct {
	client          *genai.Client
	model           string
	estimator       TokenEstimator
	errorClassifier *ErrorClassifier
}

// newGoogleProvider creates a Google Gemini provider instance from the
// client configuration.
func newGoogleProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &googleProvider{
		client:          client,
		model:           model,
		estimator:       &SimpleTokenEstimator{},
		errorClassifier: &ErrorClassifier{Provider: "google"},
	}, nil
}

// DoRequest sends a generate-content request to the Gemini API.
// With web search enabled the completion's references come from
// grounding metadata; otherwise URLs in the answer are the fallback.
func (p *googleProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (Completion, error) {
	options := ParseRequestOptions(opts, p.model)

	contents := []*genai.Content{genai.NewContentFromText(p.buildPrompt(prompt, options), genai.RoleUser)}

	resp, err := p.client.Models.GenerateContent(ctx, options.Model, contents, p.buildConfig(options))
	if err != nil {
		return Completion{}, p.handleError(err)
	}

	text := resp.Text()
	if text == "" {
		return Completion{}, ErrEmptyResponse
	}

	references := groundingReferences(resp)
	if len(references) == 0 {
		references = ScrapeReferences(text)
	}

	return Completion{
		Text:       text,
		References: references,
		TokensIn:   p.tokenCount(resp.UsageMetadata, true, prompt),
		TokensOut:  p.tokenCount(resp.UsageMetadata, false, text),
	}, nil
}

// buildPrompt prepends the system prompt to the user prompt, as the
// content API has no separate system role.
func (p *googleProvider) buildPrompt(prompt string, options RequestOptions) string {
	if options.System == "" {
		return prompt
	}
	return "System: " + options.System + "\n\nUser: " + prompt
}

func (p *googleProvider) buildConfig(options RequestOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if options.Temperature != nil {
		temp := clampFloat64(*options.Temperature, 0.0, 2.0)
		config.Temperature = genai.Ptr(float32(temp))
	}
	if options.MaxTokens > 0 {
		if options.MaxTokens > math.MaxInt32 {
			config.MaxOutputTokens = math.MaxInt32
		} else {
			config.MaxOutputTokens = int32(options.MaxTokens)
		}
	}
	if options.WebSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return config
}

// groundingReferences extracts source citations from the first
// candidate's grounding metadata.
func groundingReferences(resp *genai.GenerateContentResponse) []domain.Reference {
	if len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil || len(meta.GroundingChunks) == 0 {
		return nil
	}

	refs := make([]domain.Reference, 0, len(meta.GroundingChunks))
	for _, chunk := range meta.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		refs = append(refs, domain.Reference{
			URL:       chunk.Web.URI,
			Title:     chunk.Web.Title,
			Publisher: chunk.Web.Domain,
		})
	}
	return refs
}

func (p *googleProvider) tokenCount(usage *genai.GenerateContentResponseUsageMetadata, isInput bool, text string) int {
	if usage != nil {
		if isInput && usage.PromptTokenCount > 0 {
			return int(usage.PromptTokenCount)
		}
		if !isInput && usage.CandidatesTokenCount > 0 {
			return int(usage.CandidatesTokenCount)
		}
	}
	return p.estimator.EstimateTokens(text)
}

// handleError classifies Google API errors into standardized types.
func (p *googleProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" && len(apiErr.Errors) > 0 {
			message = apiErr.Errors[0].Message
		}
		return p.errorClassifier.ClassifyHTTPError(apiErr.Code, message, err)
	}

	return NewProviderError("google", ErrorTypeUnknown, 0, "request failed", err)
}

// GetModel returns the currently configured Gemini model name.
func (p *googleProvider) GetModel() string { return p.model }

// SetModel updates the Gemini model for subsequent requests.
func (p *googleProvider) SetModel(m string) { p.model = m }
