package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/spark-api/internal/domain"
)

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"localized commas", "美食， 生活", []string{"美食", "生活"}},
		{"ascii commas", "fitness, travel", []string{"fitness", "travel"}},
		{"mixed commas", "美食,生活，旅行", []string{"美食", "生活", "旅行"}},
		{"capped at three", "a, b, c, d, e", []string{"a", "b", "c"}},
		{"empties dropped", "美食,, ，生活", []string{"美食", "生活"}},
		{"single label", "穿搭", []string{"穿搭"}},
		{"nothing usable", " ，, ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestTruncationBounds(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("字", TaggingExcerptRunes+100)
	_, userPrompt := BuildTaggingPrompt(long)
	assert.Equal(t, TaggingExcerptRunes, len([]rune(userPrompt)),
		"tagging prompt should carry at most the bounded prefix")

	longStyle := strings.Repeat("x", StyleExcerptRunes+1)
	_, userPrompt = BuildStyleAnalysisPrompt(longStyle)
	assert.Equal(t, StyleExcerptRunes, len([]rune(userPrompt)))

	short := "短文本"
	_, userPrompt = BuildTaggingPrompt(short)
	assert.Equal(t, short, userPrompt, "short input passes through untruncated")
}

func TestBuildCopyPromptSourcePrecedence(t *testing.T) {
	t.Parallel()

	cfg := domain.GenerationConfig{
		Platform:  domain.PlatformXiaohongshu,
		Niche:     domain.NicheFood,
		Provider:  domain.ProviderGemini,
		StyleMode: domain.StyleModePreset,
	}
	fragments := []*domain.Fragment{
		{Content: "fragment body", Tags: []string{"美食"}},
	}

	// Base draft takes priority when non-empty, fragments are ignored.
	_, userPrompt := BuildCopyPrompt(cfg, "the base draft", fragments)
	assert.Contains(t, userPrompt, "the base draft")
	assert.NotContains(t, userPrompt, "fragment body")

	// Without a base draft, the tag-annotated fragment text is the source.
	_, userPrompt = BuildCopyPrompt(cfg, "", fragments)
	assert.Contains(t, userPrompt, "【美食】fragment body")
}

func TestBuildCopyPromptLanguageByPlatform(t *testing.T) {
	t.Parallel()

	cfg := domain.GenerationConfig{
		Niche:     domain.NicheTravel,
		Provider:  domain.ProviderGemini,
		StyleMode: domain.StyleModePreset,
	}

	for _, platform := range []domain.Platform{
		domain.PlatformInstagram, domain.PlatformX, domain.PlatformTiktok, domain.PlatformYoutube,
	} {
		cfg.Platform = platform
		_, userPrompt := BuildCopyPrompt(cfg, "draft", nil)
		assert.Contains(t, userPrompt, "输出语言：English", "global platform %s should request English", platform)
	}

	for _, platform := range []domain.Platform{
		domain.PlatformXiaohongshu, domain.PlatformDouyin, domain.PlatformWeibo, domain.PlatformZhihu,
	} {
		cfg.Platform = platform
		_, userPrompt := BuildCopyPrompt(cfg, "draft", nil)
		assert.Contains(t, userPrompt, "输出语言：中文", "domestic platform %s should request Chinese", platform)
	}
}

func TestBuildCopyPromptContents(t *testing.T) {
	t.Parallel()

	cfg := domain.GenerationConfig{
		Platform:         domain.PlatformXiaohongshu,
		Niche:            domain.NicheFitness,
		StyleDescription: "短句密集，自嘲式幽默",
		Provider:         domain.ProviderDeepSeek,
		RefURL:           "https://example.com/article",
		StyleMode:        domain.StyleModeImitate,
	}

	systemPrompt, userPrompt := BuildCopyPrompt(cfg, "draft", nil)

	require.NotEmpty(t, systemPrompt)
	assert.Contains(t, systemPrompt, "不要用 markdown 代码块")
	assert.Contains(t, userPrompt, "目标平台：xiaohongshu")
	assert.Contains(t, userPrompt, "账号领域：健身")
	assert.Contains(t, userPrompt, "参考链接：https://example.com/article")
	assert.Contains(t, userPrompt, "短句密集，自嘲式幽默")
	assert.Contains(t, userPrompt, "小红书笔记风格")
	assert.Contains(t, userPrompt, "800 字以内")

	// Preset style mode omits the style description.
	cfg.StyleMode = domain.StyleModePreset
	_, userPrompt = BuildCopyPrompt(cfg, "draft", nil)
	assert.NotContains(t, userPrompt, "短句密集，自嘲式幽默")

	// Unrecognized platforms get the generic brief.
	cfg.Platform = domain.Platform("newplatform")
	_, userPrompt = BuildCopyPrompt(cfg, "draft", nil)
	assert.Contains(t, userPrompt, "通用社交平台风格")
}

func TestBuildAuditPrompt(t *testing.T) {
	t.Parallel()

	systemPrompt, userPrompt := BuildAuditPrompt("一段文案", domain.PlatformWeibo)
	for _, field := range []string{
		"headline", "quality", "emotion", "trending", "viralPotential",
		"overall", "suggestions", "pros", "sensitiveWords",
	} {
		assert.Contains(t, systemPrompt, field)
	}
	assert.Contains(t, userPrompt, "weibo")
	assert.Contains(t, userPrompt, "一段文案")
}

func TestImagePrompts(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("字", ImageExcerptRunes*2)
	_, userPrompt := BuildImageDerivationPrompt(long, domain.NicheFood)
	assert.Contains(t, userPrompt, "美食")
	assert.LessOrEqual(t, len([]rune(userPrompt)), ImageExcerptRunes+50,
		"copy excerpt should be bounded")

	fallback := FallbackImagePrompt(domain.NicheTravel)
	assert.Contains(t, fallback, "旅行", "fallback prompt embeds the niche")
}
