package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/phrazzld/spark-api/internal/config"
	"github.com/phrazzld/spark-api/internal/generation"
)

// Fixed base URLs for the supported alternate backends.
const (
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	KimiBaseURL     = "https://api.moonshot.cn/v1"
)

// ErrMissingAPIKey is returned when neither a per-call key nor a configured
// default key is available for a backend.
var ErrMissingAPIKey = errors.New("api key missing for chat backend")

// Backend adapts one OpenAI-compatible chat-completion endpoint to the
// generation.TextProvider contract. One instance per backend; the backends
// differ only in base URL, model, and default credential.
type Backend struct {
	name       string
	model      string
	baseURL    string
	defaultKey string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ generation.TextProvider = (*Backend)(nil)

// NewBackend creates a chat-completion adapter. An empty defaultKey is
// allowed; in that case every call must carry a user-supplied key.
func NewBackend(
	logger *slog.Logger,
	name, model, baseURL, defaultKey string,
	timeout time.Duration,
) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", generation.ErrInvalidConfig)
	}

	return &Backend{
		name:       name,
		model:      model,
		baseURL:    baseURL,
		defaultKey: defaultKey,
		timeout:    timeout,
		logger:     logger.With("component", "chat_backend", "backend", name),
	}, nil
}

// NewDeepSeek creates the DeepSeek adapter from the LLM configuration.
func NewDeepSeek(logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	return NewBackend(
		logger,
		"deepseek",
		cfg.DeepSeekModel,
		DeepSeekBaseURL,
		cfg.DeepSeekAPIKey,
		time.Duration(cfg.TextTimeoutSeconds)*time.Second,
	)
}

// NewKimi creates the Kimi (Moonshot) adapter from the LLM configuration.
func NewKimi(logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	return NewBackend(
		logger,
		"kimi",
		cfg.KimiModel,
		KimiBaseURL,
		cfg.KimiAPIKey,
		time.Duration(cfg.TextTimeoutSeconds)*time.Second,
	)
}

// GenerateText makes a single non-streaming chat-completion call with
// bearer-token auth. A non-2xx response is a hard failure carrying the raw
// response body as diagnostic text. A 2xx response with no choices or an
// empty message yields "" rather than an error. There is no retry.
func (b *Backend) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	key := req.APIKey
	if key == "" {
		key = b.defaultKey
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingAPIKey, b.name)
	}

	client := openai.NewClient(
		option.WithAPIKey(key),
		option.WithBaseURL(b.baseURL),
		option.WithRequestTimeout(b.timeout),
		option.WithMaxRetries(0),
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("%s chat completion failed (status %d): %s",
				b.name, apierr.StatusCode, apierr.RawJSON())
		}
		return "", fmt.Errorf("%s chat completion failed: %w", b.name, err)
	}

	if len(resp.Choices) == 0 {
		b.logger.DebugContext(ctx, "chat completion returned no choices")
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
