package domain

// AuditFailureSuggestion is the single suggestion carried by the fallback
// score when the audit provider call or response parsing fails.
const AuditFailureSuggestion = "评分服务暂时不可用，请稍后重试"

// AuditScore is the structured quality assessment of a generated copy: five
// dimension scores plus an overall score, each 0-100, with textual
// suggestions, strengths, and any detected sensitive terms. It is produced
// wholly by the audit engine in one shot; there is no partial construction.
type AuditScore struct {
	Headline       int      `json:"headline"`
	Quality        int      `json:"quality"`
	Emotion        int      `json:"emotion"`
	Trending       int      `json:"trending"`
	ViralPotential int      `json:"viralPotential"`
	Overall        int      `json:"overall"`
	Suggestions    []string `json:"suggestions"`
	Pros           []string `json:"pros"`
	SensitiveWords []string `json:"sensitiveWords"`
}

// FallbackAuditScore returns the defined degraded score used when auditing
// fails: all dimensions zero, a single failure suggestion, and empty (but
// non-nil) lists. It is shaped exactly like a successful score so rendering
// never has to special-case it.
func FallbackAuditScore() AuditScore {
	return AuditScore{
		Suggestions:    []string{AuditFailureSuggestion},
		Pros:           []string{},
		SensitiveWords: []string{},
	}
}

// InRange reports whether every score sits within the 0-100 contract.
func (a AuditScore) InRange() bool {
	for _, v := range []int{a.Headline, a.Quality, a.Emotion, a.Trending, a.ViralPotential, a.Overall} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
