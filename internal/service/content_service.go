package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/phrazzld/spark-api/internal/domain"
	"github.com/phrazzld/spark-api/internal/events"
	"github.com/phrazzld/spark-api/internal/extract"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/store"
	"github.com/phrazzld/spark-api/internal/task"
)

// Generator sequences one generation cycle. Implemented by
// generation.Orchestrator.
type Generator interface {
	Generate(
		ctx context.Context,
		cfg domain.GenerationConfig,
		baseDraft string,
		fragments []*domain.Fragment,
	) (*domain.GeneratedCopy, error)

	ReAudit(ctx context.Context, content string, cfg domain.GenerationConfig) domain.AuditScore
}

// URLExtractor fetches readable text for a reference URL. Implemented by
// extract.Extractor.
type URLExtractor interface {
	Extract(ctx context.Context, targetURL string) extract.Result
}

// GenerateRequest carries the request-specific choices for one generation
// cycle; everything else comes from the stored settings snapshot.
type GenerateRequest struct {
	Platform            domain.Platform
	RefURL              string
	SelectedFragmentIDs []uuid.UUID
	StyleMode           domain.StyleMode
	WithImage           bool
}

// ContentService provides the application's content operations.
type ContentService interface {
	// CreateFragmentAndEnqueueTagging inserts a fragment with the pending
	// sentinel tag and fires the asynchronous tagging task. Tagging is
	// best-effort: a failed enqueue does not fail the insert.
	CreateFragmentAndEnqueueTagging(ctx context.Context, content string) (*domain.Fragment, error)

	// ListFragments retrieves all fragments, newest first.
	ListFragments(ctx context.Context) ([]*domain.Fragment, error)

	// DeleteFragment removes a fragment.
	DeleteFragment(ctx context.Context, id uuid.UUID) error

	// Generate runs one full generation cycle and persists the result.
	Generate(ctx context.Context, req GenerateRequest) (*domain.GeneratedCopy, error)

	// ListCopies retrieves all generated copies, newest first.
	ListCopies(ctx context.Context) ([]*domain.GeneratedCopy, error)

	// GetCopy retrieves a generated copy by ID.
	GetCopy(ctx context.Context, id uuid.UUID) (*domain.GeneratedCopy, error)

	// ReAudit re-scores user-edited content and atomically replaces the
	// record's content and audit, leaving everything else untouched.
	ReAudit(ctx context.Context, id uuid.UUID, content string) (*domain.GeneratedCopy, error)

	// AnalyzeStyle characterizes the writing style of an example text and
	// persists the description into the settings.
	AnalyzeStyle(ctx context.Context, example string) (string, error)

	// GetSettings retrieves the current settings.
	GetSettings(ctx context.Context) (domain.Settings, error)

	// UpdateSettings replaces the settings wholesale.
	UpdateSettings(ctx context.Context, settings domain.Settings) error
}

// contentServiceImpl implements the ContentService interface
type contentServiceImpl struct {
	fragments      store.FragmentStore
	copies         store.CopyStore
	settings       store.SettingsStore
	generator      Generator
	registry       *generation.Registry
	extractor      URLExtractor
	eventEmitter   events.EventEmitter
	thinkingBudget int32
	logger         *slog.Logger
}

// NewContentService creates a new ContentService.
// It returns an error if any of the required dependencies are nil.
func NewContentService(
	fragments store.FragmentStore,
	copies store.CopyStore,
	settings store.SettingsStore,
	generator Generator,
	registry *generation.Registry,
	extractor URLExtractor,
	eventEmitter events.EventEmitter,
	thinkingBudget int32,
	logger *slog.Logger,
) (ContentService, error) {
	if fragments == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "fragment store cannot be nil"}
	}
	if copies == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "copy store cannot be nil"}
	}
	if settings == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "settings store cannot be nil"}
	}
	if generator == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if registry == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "registry cannot be nil"}
	}
	if extractor == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "extractor cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ContentServiceError{Operation: "create_service", Message: "event emitter cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		fragments:      fragments,
		copies:         copies,
		settings:       settings,
		generator:      generator,
		registry:       registry,
		extractor:      extractor,
		eventEmitter:   eventEmitter,
		thinkingBudget: thinkingBudget,
		logger:         logger.With("component", "content_service"),
	}, nil
}

// CreateFragmentAndEnqueueTagging creates a fragment with the pending
// sentinel tag, then emits a tagging event. The insert is optimistic: the
// fragment is returned even when the event cannot be emitted, in which case
// it simply keeps the pending tag.
func (s *contentServiceImpl) CreateFragmentAndEnqueueTagging(
	ctx context.Context,
	content string,
) (*domain.Fragment, error) {
	fragment, err := domain.NewFragment(content)
	if err != nil {
		return nil, NewContentServiceError("create_fragment", "failed to create fragment object", err)
	}

	if err := s.fragments.Create(ctx, fragment); err != nil {
		s.logger.Error("failed to save fragment",
			"error", err,
			"fragment_id", fragment.ID)
		return nil, NewContentServiceError("create_fragment", "failed to save fragment", err)
	}

	payload := struct {
		FragmentID uuid.UUID `json:"fragment_id"`
	}{
		FragmentID: fragment.ID,
	}

	event, err := events.NewTaskRequestEvent(task.TaskTypeFragmentTagging, payload)
	if err != nil {
		s.logger.Warn("failed to create tagging event, fragment keeps pending tag",
			"error", err,
			"fragment_id", fragment.ID)
		return fragment, nil
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("failed to emit tagging event, fragment keeps pending tag",
			"error", err,
			"fragment_id", fragment.ID,
			"event_id", event.ID)
		return fragment, nil
	}

	s.logger.Info("fragment created, tagging enqueued",
		"fragment_id", fragment.ID,
		"event_id", event.ID)

	return fragment, nil
}

// ListFragments retrieves all fragments, newest first.
func (s *contentServiceImpl) ListFragments(ctx context.Context) ([]*domain.Fragment, error) {
	fragments, err := s.fragments.List(ctx)
	if err != nil {
		return nil, NewContentServiceError("list_fragments", "failed to list fragments", err)
	}
	return fragments, nil
}

// DeleteFragment removes a fragment.
func (s *contentServiceImpl) DeleteFragment(ctx context.Context, id uuid.UUID) error {
	if err := s.fragments.Delete(ctx, id); err != nil {
		return NewContentServiceError("delete_fragment", "failed to delete fragment", err)
	}
	return nil
}

// Generate snapshots the settings into an immutable config, builds the base
// draft (URL extraction, then consolidation when several fragments are
// selected), runs the generation cycle, and persists the result.
func (s *contentServiceImpl) Generate(
	ctx context.Context,
	req GenerateRequest,
) (*domain.GeneratedCopy, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, NewContentServiceError("generate", "failed to load settings", err)
	}

	cfg, err := domain.NewGenerationConfig(
		settings,
		req.Platform,
		req.RefURL,
		req.SelectedFragmentIDs,
		req.StyleMode,
		req.WithImage,
	)
	if err != nil {
		return nil, NewContentServiceError("generate", "invalid generation request", err)
	}

	fragments, err := s.fragments.GetByIDs(ctx, cfg.SelectedFragmentIDs)
	if err != nil {
		return nil, NewContentServiceError("generate", "failed to load selected fragments", err)
	}

	baseDraft := s.buildBaseDraft(ctx, cfg, fragments)

	record, err := s.generator.Generate(ctx, cfg, baseDraft, fragments)
	if err != nil {
		return nil, NewContentServiceError("generate", "generation cycle failed", err)
	}

	if err := s.copies.Create(ctx, record); err != nil {
		s.logger.Error("failed to persist generated copy",
			"error", err,
			"copy_id", record.ID)
		return nil, NewContentServiceError("generate", "failed to persist generated copy", err)
	}

	return record, nil
}

// buildBaseDraft produces the optional pre-generation draft. A reference URL
// takes priority; when several fragments are selected they are consolidated
// into one coherent draft. Both steps are best-effort: any failure means
// generation works from the raw fragment text instead.
func (s *contentServiceImpl) buildBaseDraft(
	ctx context.Context,
	cfg domain.GenerationConfig,
	fragments []*domain.Fragment,
) string {
	if cfg.RefURL != "" {
		result := s.extractor.Extract(ctx, cfg.RefURL)
		if !result.Empty() {
			return result.Text
		}
	}

	if len(fragments) < 2 {
		return ""
	}

	provider, err := s.registry.Get(cfg.Provider)
	if err != nil {
		s.logger.Warn("consolidation skipped, provider unavailable", "error", err)
		return ""
	}

	contents := make([]string, 0, len(fragments))
	for _, f := range fragments {
		contents = append(contents, f.Content)
	}

	systemPrompt, userPrompt := generation.BuildConsolidationPrompt(contents)
	textReq := generation.TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		APIKey:       cfg.CustomAPIKey,
	}
	if cfg.Provider.OrDefault() == domain.ProviderGemini {
		textReq.ThinkingBudget = s.thinkingBudget
	}

	draft, err := provider.GenerateText(ctx, textReq)
	if err != nil {
		s.logger.Warn("consolidation failed, using raw fragment text", "error", err)
		return ""
	}

	return strings.TrimSpace(draft)
}

// ListCopies retrieves all generated copies, newest first.
func (s *contentServiceImpl) ListCopies(ctx context.Context) ([]*domain.GeneratedCopy, error) {
	copies, err := s.copies.List(ctx)
	if err != nil {
		return nil, NewContentServiceError("list_copies", "failed to list copies", err)
	}
	return copies, nil
}

// GetCopy retrieves a generated copy by ID.
func (s *contentServiceImpl) GetCopy(ctx context.Context, id uuid.UUID) (*domain.GeneratedCopy, error) {
	copy, err := s.copies.GetByID(ctx, id)
	if err != nil {
		return nil, NewContentServiceError("get_copy", "failed to retrieve copy", err)
	}
	return copy, nil
}

// ReAudit re-scores edited content against the record's original config and
// replaces only content and audit. It never regenerates copy or image.
func (s *contentServiceImpl) ReAudit(
	ctx context.Context,
	id uuid.UUID,
	content string,
) (*domain.GeneratedCopy, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewContentServiceError("reaudit", "content cannot be empty", ErrEmptyInput)
	}

	copy, err := s.copies.GetByID(ctx, id)
	if err != nil {
		return nil, NewContentServiceError("reaudit", "failed to retrieve copy", err)
	}

	audit := s.generator.ReAudit(ctx, content, copy.Config)

	if err := s.copies.ReplaceContentAndAudit(ctx, id, content, audit); err != nil {
		return nil, NewContentServiceError("reaudit", "failed to replace content and audit", err)
	}

	if err := copy.ReplaceAudit(content, audit); err != nil {
		return nil, NewContentServiceError("reaudit", "failed to update copy record", err)
	}

	s.logger.Info("copy re-audited",
		"copy_id", id,
		"overall_score", audit.Overall)

	return copy, nil
}

// AnalyzeStyle asks the model for a one-sentence style characterization of
// the example text and saves it as the settings style description.
func (s *contentServiceImpl) AnalyzeStyle(ctx context.Context, example string) (string, error) {
	if strings.TrimSpace(example) == "" {
		return "", NewContentServiceError("analyze_style", "example text cannot be empty", ErrEmptyInput)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", NewContentServiceError("analyze_style", "failed to load settings", err)
	}

	provider, err := s.registry.Get(settings.ProviderOrDefault())
	if err != nil {
		return "", NewContentServiceError("analyze_style", "provider unavailable", err)
	}

	systemPrompt, userPrompt := generation.BuildStyleAnalysisPrompt(example)
	textReq := generation.TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		APIKey:       settings.CustomAPIKey,
	}
	if settings.ProviderOrDefault() == domain.ProviderGemini {
		textReq.ThinkingBudget = s.thinkingBudget
	}

	description, err := provider.GenerateText(ctx, textReq)
	if err != nil {
		return "", NewContentServiceError("analyze_style", "style analysis failed", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return "", NewContentServiceError("analyze_style", "style analysis returned no text", ErrEmptyInput)
	}

	settings.StyleDescription = description
	if err := s.settings.Save(ctx, settings); err != nil {
		return "", NewContentServiceError("analyze_style", "failed to save style description", err)
	}

	return description, nil
}

// GetSettings retrieves the current settings.
func (s *contentServiceImpl) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, NewContentServiceError("get_settings", "failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettings replaces the settings wholesale.
func (s *contentServiceImpl) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return NewContentServiceError("update_settings", "invalid settings", err)
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return NewContentServiceError("update_settings", "failed to save settings", err)
	}

	return nil
}
