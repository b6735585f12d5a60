package llm

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// OpenAIDefaultModel is the default model for the OpenAI provider.
	OpenAIDefaultModel = "gpt-4o-mini"
)

func init() {
	RegisterProviderFactory("openai", newOpenAIProvider)
}

// openAIProvider implements the CoreLLM interface for OpenAI's API.
// OpenAI chat completions carry no grounding metadata, so references
// are scraped from URLs in the answer text.
type openAIProvider struct {
	client          *openai.Client
	model           string
	estimator       TokenEstimator
	errorClassifier *ErrorClassifier
}

// newOpenAIProvider creates an OpenAI provider instance from the client
// configuration.
func newOpenAIProvider(config ClientConfig) (CoreLLM, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = OpenAIDefaultModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &openAIProvider{
		client:          openai.NewClientWithConfig(clientConfig),
		model:           model,
		estimator:       &SimpleTokenEstimator{},
		errorClassifier: &ErrorClassifier{Provider: "openai"},
	}, nil
}

// DoRequest sends a chat completion request and returns the answer with
// scraped references and token usage.
func (p *openAIProvider) DoRequest(ctx context.Context, prompt string, opts map[string]any) (Completion, error) {
	options := ParseRequestOptions(opts, p.model)

	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(prompt, options))
	if err != nil {
		return Completion{}, p.handleError(err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, ErrNoResponseChoice
	}
	content := resp.Choices[0].Message.Content

	return Completion{
		Text:       content,
		References: ScrapeReferences(content),
		TokensIn:   p.tokenCount(resp.Usage.PromptTokens, prompt),
		TokensOut:  p.tokenCount(resp.Usage.CompletionTokens, content),
	}, nil
}

func (p *openAIProvider) buildRequest(prompt string, options RequestOptions) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if options.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: options.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    options.Model,
		Messages: messages,
	}
	if options.Temperature != nil {
		req.Temperature = float32(clampFloat64(*options.Temperature, 0.0, 2.0))
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	return req
}

// tokenCount prefers the actual count from the API response, falling
// back to estimation when the count is zero.
func (p *openAIProvider) tokenCount(actualCount int, text string) int {
	if actualCount > 0 {
		return actualCount
	}
	return p.estimator.EstimateTokens(text)
}

// handleError classifies OpenAI API errors into standardized types.
func (p *openAIProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return p.errorClassifier.ClassifyContextError(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "unknown error"
		}
		return p.errorClassifier.ClassifyHTTPError(apiErr.HTTPStatusCode, message, err)
	}

	return NewProviderError("openai", ErrorTypeUnknown, 0, "request failed", err)
}

// GetModel returns the currently configured OpenAI model name.
func (p *openAIProvider) GetModel() string { return p.model }

// SetModel updates the OpenAI model for subsequent requests.
func (p *openAIProvider) SetModel(m string) { p.model = m }
