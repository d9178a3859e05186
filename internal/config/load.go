package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the SPARK_
// prefix with underscores for nesting (e.g. SPARK_LLM_GEMINI_API_KEY) and
// take precedence over file values. Returns a populated Config or an error
// if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars alone can carry the config.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SPARK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for all optional settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.gemini_text_model", "gemini-2.5-flash")
	v.SetDefault("llm.gemini_image_model", "gemini-2.5-flash-image-preview")
	v.SetDefault("llm.deepseek_model", "deepseek-chat")
	v.SetDefault("llm.kimi_model", "moonshot-v1-8k")
	v.SetDefault("llm.thinking_budget", 2048)
	v.SetDefault("llm.text_timeout_seconds", 60)
	v.SetDefault("llm.image_timeout_seconds", 120)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)

	v.SetDefault("extract.proxy_base_url", "https://r.jina.ai")
	v.SetDefault("extract.timeout_seconds", 15)

	// Required values still need a key registered so AutomaticEnv picks
	// them up during Unmarshal.
	v.SetDefault("database.url", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.deepseek_api_key", "")
	v.SetDefault("llm.kimi_api_key", "")
}
