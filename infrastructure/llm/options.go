package llm

// options.go provides parsing and validation for the generic option
// maps passed through the client to providers.

// RequestOptions holds the parsed, validated request parameters common
// to all providers. Provider-specific knobs stay in Extra.
type RequestOptions struct {
	// Model overrides the provider's configured model for this request.
	Model string
	// System is an optional system prompt.
	System string
	// MaxTokens caps the generated output length. Zero means provider default.
	MaxTokens int
	// Temperature controls sampling randomness. Nil means provider default.
	Temperature *float64
	// WebSearch requests grounded answers with source citations for
	// providers that support it.
	WebSearch bool
	// Extra carries unrecognized options through to the provider.
	Extra map[string]any
}

// ParseRequestOptions extracts common parameters from a generic options
// map, falling back to defaultModel when no model override is present.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		Model:     extractString(opts, "model", defaultModel),
		System:    extractString(opts, "system", ""),
		MaxTokens: extractInt(opts, "max_tokens", 0),
		WebSearch: extractBool(opts, "web_search"),
		Extra:     opts,
	}

	if temp, ok := extractFloat64(opts, "temperature"); ok && temp >= 0 && temp <= 2 {
		options.Temperature = &temp
	}

	return options
}

func extractString(opts map[string]any, key, defaultVal string) string {
	if val, ok := opts[key].(string); ok && val != "" {
		return val
	}
	return defaultVal
}

func extractInt(opts map[string]any, key string, defaultVal int) int {
	if val, ok := opts[key].(int); ok && val > 0 {
		return val
	}
	return defaultVal
}

func extractFloat64(opts map[string]any, key string) (float64, bool) {
	val, ok := opts[key].(float64)
	return val, ok
}

func extractBool(opts map[string]any, key string) bool {
	val, ok := opts[key].(bool)
	return ok && val
}

func clampFloat64(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
