package domain

// Platform identifies the social platform a copy is tailored for.
type Platform string

// Supported target platforms.
const (
	PlatformXiaohongshu Platform = "xiaohongshu"
	PlatformDouyin      Platform = "douyin"
	PlatformWeibo       Platform = "weibo"
	PlatformWechat      Platform = "wechat"
	PlatformZhihu       Platform = "zhihu"
	PlatformBilibili    Platform = "bilibili"
	PlatformInstagram   Platform = "instagram"
	PlatformX           Platform = "x"
	PlatformTiktok      Platform = "tiktok"
	PlatformYoutube     Platform = "youtube"
)

// IsGlobal reports whether the platform serves a non-Chinese audience.
// Copies for global platforms are generated in English; all others in Chinese.
func (p Platform) IsGlobal() bool {
	switch p {
	case PlatformInstagram, PlatformX, PlatformTiktok, PlatformYoutube:
		return true
	default:
		return false
	}
}

// Niche is the creator's declared topical persona (e.g. food, fitness,
// travel). It steers tone and cover-image style. Free-form, but a few common
// values are named for convenience.
type Niche string

const (
	NicheFood      Niche = "美食"
	NicheFitness   Niche = "健身"
	NicheTravel    Niche = "旅行"
	NicheFashion   Niche = "穿搭"
	NicheBeauty    Niche = "美妆"
	NicheLifestyle Niche = "生活方式"
)

// StyleMode selects how the personal writing style is applied to a copy.
type StyleMode string

const (
	// StyleModePreset uses the platform's default voice.
	StyleModePreset StyleMode = "preset"

	// StyleModeImitate applies the user's analyzed style description.
	StyleModeImitate StyleMode = "imitate"
)
