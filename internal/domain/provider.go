package domain

// Provider identifies one of the interchangeable text-generation backends.
type Provider string

// Supported providers. Gemini is the primary backend with a native calling
// convention; DeepSeek and Kimi are OpenAI-compatible chat backends.
const (
	ProviderGemini   Provider = "gemini"
	ProviderDeepSeek Provider = "deepseek"
	ProviderKimi     Provider = "kimi"
)

// OrDefault returns the provider itself, or ProviderGemini when unset.
// An absent provider selection always means the primary backend.
func (p Provider) OrDefault() Provider {
	if p == "" {
		return ProviderGemini
	}
	return p
}

// IsValid reports whether p is one of the supported providers.
// The empty string is valid and means "use the default".
func (p Provider) IsValid() bool {
	switch p {
	case "", ProviderGemini, ProviderDeepSeek, ProviderKimi:
		return true
	default:
		return false
	}
}
