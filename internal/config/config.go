package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Extract  ExtractConfig  `mapstructure:"extract"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LLMConfig contains provider credentials, model names, and the tuning knobs
// shared by every provider call. The per-provider API keys here are the
// process-wide defaults; a user-supplied key on a request overrides them.
type LLMConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key" validate:"required"`
	DeepSeekAPIKey string `mapstructure:"deepseek_api_key"`
	KimiAPIKey     string `mapstructure:"kimi_api_key"`

	GeminiTextModel  string `mapstructure:"gemini_text_model"  validate:"required"`
	GeminiImageModel string `mapstructure:"gemini_image_model" validate:"required"`
	DeepSeekModel    string `mapstructure:"deepseek_model"     validate:"required"`
	KimiModel        string `mapstructure:"kimi_model"         validate:"required"`

	// ThinkingBudget tunes how much internal deliberation the Gemini model
	// performs before responding. Applied to copy generation only.
	ThinkingBudget int32 `mapstructure:"thinking_budget" validate:"gte=0"`

	// Per-call timeouts. No provider call is allowed to hang a cycle forever.
	TextTimeoutSeconds  int `mapstructure:"text_timeout_seconds"  validate:"required,gt=0"`
	ImageTimeoutSeconds int `mapstructure:"image_timeout_seconds" validate:"required,gt=0"`
}

// TaskConfig contains settings for the background task runner that handles
// asynchronous fragment tagging.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}

// ExtractConfig contains settings for the URL read-proxy collaborator.
type ExtractConfig struct {
	ProxyBaseURL   string `mapstructure:"proxy_base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
