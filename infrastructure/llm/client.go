// Package llm provides a unified client for querying large language
// model providers about brand-related questions, with built-in support
// for rate limiting, retries, timeouts, and metrics.
//
// The package abstracts multiple providers (OpenAI, Anthropic, Google)
// behind a common interface while adding operational concerns through a
// middleware pattern. Answer collection needs more than generated text:
// every completion also carries the source references the provider
// grounded the answer on, because reference counts feed the scoring
// pipeline.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o",
//	})
//	answer, refs, err := client.CompleteWithReferences(ctx, "推荐扫地机器人品牌", nil)
//
// Usage with middleware:
//
//	client, err := llm.NewClient("google", llm.ClientConfig{
//	    APIKey: os.Getenv("GEMINI_API_KEY"),
//	    Model:  "gemini-2.0-flash",
//	    Middleware: []llm.Middleware{
//	        llm.RateLimitMiddleware(2, 4),
//	        llm.RetryMiddleware(3, time.Second, 30*time.Second),
//	    },
//	})
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

// Completion is the full result of a single provider request: the
// generated answer, the source references backing it, and token usage.
type Completion struct {
	// Text is the generated answer.
	Text string

	// References lists the sources the answer is attributed to. For
	// providers with grounding support these come from grounding
	// metadata; otherwise they are scraped from URLs in the answer.
	References []domain.Reference

	// TokensIn and TokensOut report token usage when the provider
	// returns it, or an estimate otherwise.
	TokensIn  int
	TokensOut int
}

// CoreLLM defines the minimal interface that LLM providers must
// implement. The middleware system wraps any conforming implementation,
// so cross-cutting behavior composes without touching provider logic.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the
	// completion. The opts parameter carries provider-specific
	// parameters such as temperature, max tokens, or web search.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (Completion, error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model to use for subsequent requests.
	SetModel(model string)
}

// TokenEstimator provides pluggable token estimation strategies for
// cost estimation when exact counts are not available before a request.
type TokenEstimator interface {
	// EstimateTokens returns an approximate token count for the text.
	EstimateTokens(text string) int
}

// ClientConfig holds all configuration options for creating an LLM
// client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model specifies which model to use for requests.
	Model string

	// BaseURL overrides the default API endpoint for the provider.
	// Leave empty to use the provider's default endpoint.
	BaseURL string

	// Timeout sets the maximum duration for individual requests.
	// Zero value means no timeout.
	Timeout time.Duration

	// TokenEstimator provides custom token counting logic.
	// If nil, a simple character-based estimator is used.
	TokenEstimator TokenEstimator

	// Middleware allows custom middleware insertion,
	// applied in the order specified.
	Middleware []Middleware
}

// Middleware wraps a CoreLLM implementation to add cross-cutting
// functionality such as rate limiting, retries, or metrics collection.
type Middleware func(CoreLLM) CoreLLM

// Client implements the ports.LLMClient interface. It wraps a
// provider-specific CoreLLM implementation with the configured
// middleware chain.
type Client struct {
	core      CoreLLM
	estimator TokenEstimator
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient creates an LLM client for the named provider. It assembles
// the middleware chain and validates configuration before returning a
// ready-to-use client.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply middleware in reverse order so the first middleware is the
	// outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	estimator := config.TokenEstimator
	if estimator == nil {
		estimator = &SimpleTokenEstimator{}
	}

	return &Client{core: core, estimator: estimator}, nil
}

// Complete sends a prompt and returns only the answer text.
// This is a convenience method for callers that do not need references.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	completion, err := c.core.DoRequest(ctx, prompt, options)
	if err != nil {
		return "", err
	}
	return completion.Text, nil
}

// CompleteWithReferences sends a prompt and returns the answer together
// with its source references. Reference availability depends on the
// provider: grounded providers attach real citations, others fall back
// to URLs found in the answer text.
func (c *Client) CompleteWithReferences(
	ctx context.Context,
	prompt string,
	options map[string]any,
) (string, []domain.Reference, error) {
	completion, err := c.core.DoRequest(ctx, prompt, options)
	if err != nil {
		return "", nil, err
	}
	return completion.Text, completion.References, nil
}

// EstimateTokens returns an approximate token count for the given text
// using the configured estimator.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.EstimateTokens(text), nil
}

// GetModel returns the model name from the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }

// SimpleTokenEstimator provides basic character-based token estimation,
// assuming roughly 4 characters per token. CJK-heavy answers tokenize
// denser than this, so treat estimates as lower bounds for cost.
type SimpleTokenEstimator struct{}

// EstimateTokens returns an approximate token count using a
// 4-characters-per-token heuristic.
func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ProviderFactory creates a CoreLLM implementation from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a custom provider factory,
// enabling extension with additional providers without modifying the
// core package.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}
