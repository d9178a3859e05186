// Package openaicompat implements the alternate provider adapters over the
// uniform OpenAI-style chat-completion HTTP contract, using the official
// openai-go SDK pointed at each backend's fixed base URL. Both DeepSeek and
// Kimi (Moonshot) route through the same adapter type.
package openaicompat
