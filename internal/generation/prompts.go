package generation

import (
	"fmt"
	"strings"

	"github.com/phrazzld/spark-api/internal/domain"
)

// Truncation bounds for free-text inputs fed into prompts, in runes.
// These are contract constants, not tuning knobs.
const (
	// TaggingExcerptRunes bounds the fragment prefix used for tagging.
	TaggingExcerptRunes = 500

	// StyleExcerptRunes bounds the example text used for style analysis.
	StyleExcerptRunes = 1000

	// ImageExcerptRunes bounds the copy prefix used for image-prompt
	// derivation.
	ImageExcerptRunes = 300

	// CopyMaxChars is the length ceiling stated in the copy-generation
	// prompt.
	CopyMaxChars = 800
)

// truncateRunes returns at most n leading runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// BuildTaggingPrompt assembles the prompt pair asking the model to label one
// fragment with 1-3 comma-separated tags and nothing else.
func BuildTaggingPrompt(content string) (systemPrompt, userPrompt string) {
	systemPrompt = "你是一个内容分类助手。根据用户提供的灵感碎片，返回 1 到 3 个简短的中文标签，" +
		"用逗号分隔。只输出标签本身，不要任何解释或其他文字。"
	userPrompt = truncateRunes(content, TaggingExcerptRunes)
	return systemPrompt, userPrompt
}

// ParseTags defensively splits a tagging completion into labels: both the
// localized and ASCII comma glyphs are treated as separators, labels are
// trimmed, empties dropped, and the result capped at MaxFragmentTags.
// Returns nil when no usable label remains.
func ParseTags(raw string) []string {
	normalized := strings.ReplaceAll(raw, "，", ",")

	var tags []string
	for _, part := range strings.Split(normalized, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == domain.MaxFragmentTags {
			break
		}
	}

	return tags
}

// BuildStyleAnalysisPrompt assembles the prompt pair asking the model to
// characterize the writing style of an example text in one sentence.
func BuildStyleAnalysisPrompt(example string) (systemPrompt, userPrompt string) {
	systemPrompt = "你是一个写作风格分析师。阅读用户提供的示例文本，用一句话概括它的写作风格" +
		"（语气、节奏、用词习惯、标志性表达）。只输出这一句话。"
	userPrompt = truncateRunes(example, StyleExcerptRunes)
	return systemPrompt, userPrompt
}

// BuildConsolidationPrompt assembles the prompt pair asking the model to
// merge an ordered list of fragments into one coherent draft.
func BuildConsolidationPrompt(contents []string) (systemPrompt, userPrompt string) {
	systemPrompt = "你是一个内容编辑。下面是一组零散的灵感碎片，请找出其中最连贯的共同主题，" +
		"舍弃无关或重复的碎片，把保留的内容整合成一段通顺的初稿。只输出整合后的初稿文本，不要解释。"

	var sb strings.Builder
	for i, content := range contents {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, content))
	}
	return systemPrompt, sb.String()
}

// targetLanguage returns the natural language the copy should be written in
// for the given platform.
func targetLanguage(platform domain.Platform) string {
	if platform.IsGlobal() {
		return "English"
	}
	return "中文"
}

// platformBrief returns the platform-specific style and format brief:
// length feel, emoji density, headline/body structure, hashtag convention.
// Unrecognized platforms get a generic brief.
func platformBrief(platform domain.Platform) string {
	switch platform {
	case domain.PlatformXiaohongshu:
		return "小红书笔记风格：抓眼球的标题带 1-2 个 emoji，正文分短段落，口语化、有代入感，结尾带 3-5 个话题标签（#标签）。"
	case domain.PlatformDouyin:
		return "抖音口播文案风格：前 3 秒必须有钩子，句子极短，节奏快，适合口播朗读，少量 emoji，结尾引导互动。"
	case domain.PlatformWeibo:
		return "微博风格：开头直接抛观点，140 字以内最佳，可以犀利，带 1-2 个话题（#话题#）。"
	case domain.PlatformWechat:
		return "微信公众号风格：有清晰的标题和小标题结构，段落稍长，论述完整，语气专业但不生硬，不用话题标签。"
	case domain.PlatformZhihu:
		return "知乎回答风格：先给结论再展开，逻辑清晰，可以引用经验和数据，克制使用 emoji，不用话题标签。"
	case domain.PlatformBilibili:
		return "B站动态风格：轻松有梗，适度玩网络热词，emoji 适量，结尾可以求三连。"
	case domain.PlatformInstagram:
		return "Instagram caption style: a strong hook line,短段落, generous emoji, end with 5-8 hashtags."
	case domain.PlatformX:
		return "X (Twitter) style: punchy and under 280 characters, minimal emoji, at most 2 hashtags."
	case domain.PlatformTiktok:
		return "TikTok caption style: casual and high-energy, a hook in the first line, a few emoji, 3-5 hashtags."
	case domain.PlatformYoutube:
		return "YouTube description style: an engaging first line, a concise summary paragraph, light emoji, a few hashtags at the end."
	default:
		return "通用社交平台风格：标题抓人，正文简洁有网感，适量 emoji。"
	}
}

// FragmentSource renders the selected fragments as the tag-annotated content
// source used when no base draft is present.
func FragmentSource(fragments []*domain.Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(fmt.Sprintf("【%s】%s\n", strings.Join(f.Tags, "/"), f.Content))
	}
	return sb.String()
}

// BuildCopyPrompt assembles the prompt pair for generating the final copy.
// A non-empty base draft (from consolidation or URL extraction) takes
// priority over the selected fragments as the content source.
func BuildCopyPrompt(
	cfg domain.GenerationConfig,
	baseDraft string,
	fragments []*domain.Fragment,
) (systemPrompt, userPrompt string) {
	systemPrompt = "你是一个深谙各平台流量逻辑的爆款文案写手。根据用户给出的素材和要求，" +
		"直接输出一篇可以发布的完整文案。不要用 markdown 代码块包裹输出，不要任何额外解释。"

	source := baseDraft
	if source == "" {
		source = FragmentSource(fragments)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("目标平台：%s\n", cfg.Platform))
	sb.WriteString(fmt.Sprintf("账号领域：%s\n", cfg.Niche))
	sb.WriteString(fmt.Sprintf("内容素材：\n%s\n", source))
	if cfg.RefURL != "" {
		sb.WriteString(fmt.Sprintf("参考链接：%s\n", cfg.RefURL))
	}
	if cfg.StyleMode == domain.StyleModeImitate && cfg.StyleDescription != "" {
		sb.WriteString(fmt.Sprintf("模仿的写作风格：%s\n", cfg.StyleDescription))
	}
	sb.WriteString(fmt.Sprintf("输出语言：%s\n", targetLanguage(cfg.Platform)))
	sb.WriteString(fmt.Sprintf("平台格式要求：%s\n", platformBrief(cfg.Platform)))
	sb.WriteString(fmt.Sprintf("长度上限：%d 字以内。\n", CopyMaxChars))
	sb.WriteString("直接输出文案正文，不要 markdown 围栏。")

	return systemPrompt, sb.String()
}

// BuildAuditPrompt assembles the prompt pair asking the model to score a
// finished copy. The response must be strict JSON with exactly the nine
// audit fields: five dimension scores plus overall (integers 0-100),
// 3 suggestions, 3 pros, and any detected sensitive terms.
func BuildAuditPrompt(content string, platform domain.Platform) (systemPrompt, userPrompt string) {
	systemPrompt = "你是一个严格的爆款内容评审。对给定平台的文案从五个维度打分（0-100 的整数）：" +
		"headline（标题吸引力）、quality（内容质量）、emotion（情绪价值）、trending（热点契合度）、" +
		"viralPotential（传播潜力），再给出 overall 总分。另外给出 3 条具体的 suggestions（改进建议）、" +
		"3 条 pros（亮点）、以及检测到的 sensitiveWords（敏感或违禁词，没有则为空数组）。" +
		"只输出一个严格的 JSON 对象，字段为 headline、quality、emotion、trending、viralPotential、" +
		"overall、suggestions、pros、sensitiveWords，不要输出其他任何内容。"
	userPrompt = fmt.Sprintf("平台：%s\n文案：\n%s", platform, content)
	return systemPrompt, userPrompt
}

// BuildImageDerivationPrompt assembles the prompt pair asking the model to
// derive an English visual-description prompt for a cover image from the
// finished copy.
func BuildImageDerivationPrompt(content string, niche domain.Niche) (systemPrompt, userPrompt string) {
	systemPrompt = "You are a visual art director. Read the social media copy below and write one " +
		"English image-generation prompt describing an appealing lifestyle cover photo for it. " +
		"Describe the scene, subject, lighting, and mood. Output only the prompt."
	userPrompt = fmt.Sprintf("Niche: %s\nCopy:\n%s", niche, truncateRunes(content, ImageExcerptRunes))
	return systemPrompt, userPrompt
}

// FallbackImagePrompt is the generic templated prompt used when derivation
// returns no text.
func FallbackImagePrompt(niche domain.Niche) string {
	return fmt.Sprintf(
		"A bright, aesthetic lifestyle cover photo about %s, soft natural lighting, shallow depth of field, no text",
		niche,
	)
}
